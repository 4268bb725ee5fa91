// Package texconv is a pure Go image compositing engine for converting
// PBR material maps into Source engine texture sets.
//
// # Overview
//
// The root package defines the data model shared by every stage:
//
//   - [Buffer]: an RGB or RGBA float32 image, values in [0, 1]
//   - [Mask]: a single-channel float32 image used as a blend weight
//   - [Resize] and [ResizeMask]: deterministic bilinear resampling
//
// Operators live in sub-packages:
//
//   - filter: brightness/contrast, levels, curves, exposure, vibrance,
//     hue/saturation, colour balance, invert, posterize, threshold, desaturate
//   - blend: add, subtract, multiply, divide, screen, overlay with opacity
//   - mask: luminosity, channel and range masks, masked application
//   - synth: the PBR and Phong texture synthesizers built on the above
//
// Every operator is a pure function. Inputs are never modified, outputs are
// new buffers, and nothing in these packages performs I/O, so conversions of
// different materials can run concurrently without coordination. Decoding
// and encoding image files is the job of the imageio package.
//
// # Coordinate System
//
// Row 0 of a Buffer is the bottom row of the image. This matches the
// host application's texture coordinates; imageio flips rows when it
// converts to or from top-down formats such as PNG.
//
// # Quick Start
//
//	maps := synth.Maps{"albedo": diffuse, "nrm": normal, "orm": orm}
//	item := synth.NewItem("crate", "albedo", "nrm")
//	item.Roughness = synth.MapRef{Name: "orm", Channel: synth.ChannelG}
//	item.Metal = synth.MapRef{Name: "orm", Channel: synth.ChannelB}
//	res, err := synth.Convert(synth.ModePBR, item, maps)
//	if err != nil {
//	    return err
//	}
//	mrao := res.Get(synth.OutputMRAO)
package texconv

// Version information
const (
	// Version is the current version of the library
	Version = "0.3.0"
)

// Package synth builds engine texture sets from PBR material maps.
//
// Two pipelines are available:
//
//   - [ModePBR] packs the inputs into color, mrao (metal, roughness and
//     ambient occlusion in R, G and B) and normal outputs, plus emissive
//     when an emissive map is configured.
//   - [ModePhong] derives the diffuse, normal (specular mask in alpha),
//     exponent and optional emissive textures used by the legacy Phong
//     shader.
//
// A conversion is a pure function of an [Item] and a [Source] that resolves
// map names to decoded buffers. Nothing here reads or writes files; see the
// imageio package for a file-backed Source and output encoding.
//
// Diffuse and normal maps are mandatory. Every other map is optional and
// falls back to a constant: roughness 1, metal 0, ambient occlusion 1,
// alpha 1. A map that is configured but cannot be resolved is an error.
//
// Conversions share no state and can run concurrently; [Batch] does so
// with a bounded worker pool and keeps going past failing items.
package synth

// Package filter provides the colour and tone operators used to build
// texture sets:
//   - Brightness/contrast (legacy additive and multiplicative models)
//   - Levels, curves and exposure
//   - Vibrance, hue/saturation and colour balance
//   - Invert, posterize, threshold and desaturate
//   - Affine colour matrices
//
// Every operator takes a *texconv.Buffer and scalar parameters and returns
// a new buffer of identical shape. Only R, G and B are adjusted; an alpha
// channel is copied through unchanged. Results are clamped to [0, 1].
//
// Parameters follow the usual image-editor ranges: brightness, contrast,
// saturation and similar knobs are percentages in [-100, 100], levels and
// curve points are in the 0-255 scale.
package filter

package filter

import (
	"github.com/gogpu/texconv"
	"github.com/gogpu/texconv/internal/color"
)

// mapChannels applies fn to R, G and B of every pixel independently and
// clamps the result. Alpha is left as is.
func mapChannels(src *texconv.Buffer, fn func(v float32) float32) *texconv.Buffer {
	out := src.Clone()
	d := out.Data()
	ch := out.Channels()
	for i := 0; i < len(d); i += ch {
		d[i] = color.Clamp01(fn(d[i]))
		d[i+1] = color.Clamp01(fn(d[i+1]))
		d[i+2] = color.Clamp01(fn(d[i+2]))
	}
	return out
}

// mapPixels applies fn to the RGB triple of every pixel and clamps the result.
func mapPixels(src *texconv.Buffer, fn func(r, g, b float32) (float32, float32, float32)) *texconv.Buffer {
	out := src.Clone()
	d := out.Data()
	ch := out.Channels()
	for i := 0; i < len(d); i += ch {
		r, g, b := fn(d[i], d[i+1], d[i+2])
		d[i] = color.Clamp01(r)
		d[i+1] = color.Clamp01(g)
		d[i+2] = color.Clamp01(b)
	}
	return out
}

// clampRange limits a percentage knob to [lo, hi].
func clampRange(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

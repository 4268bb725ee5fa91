package filter

import (
	"github.com/gogpu/texconv"
	"github.com/gogpu/texconv/internal/color"
)

// ColorMatrix is a 3x4 affine transform applied to the RGB channels:
//
//	[R']   [m0 m1  m2  m3 ]   [R]
//	[G'] = [m4 m5  m6  m7 ] * [G]
//	[B']   [m8 m9  m10 m11]   [B]
//	                          [1]
//
// The fourth column is an offset in [0, 1] units. Alpha is never read or
// written.
type ColorMatrix [12]float32

// IdentityMatrix returns the matrix that leaves colours unchanged.
func IdentityMatrix() ColorMatrix {
	return ColorMatrix{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
	}
}

// SaturationMatrix blends each pixel between its Rec. 601 luma (factor 0)
// and itself (factor 1). Factors above 1 oversaturate.
func SaturationMatrix(factor float32) ColorMatrix {
	inv := 1 - factor
	r, g, b := float32(color.LumaR)*inv, float32(color.LumaG)*inv, float32(color.LumaB)*inv
	return ColorMatrix{
		r + factor, g, b, 0,
		r, g + factor, b, 0,
		r, g, b + factor, 0,
	}
}

// GrayscaleMatrix replaces every channel with the pixel luma.
func GrayscaleMatrix() ColorMatrix {
	return SaturationMatrix(0)
}

// InvertMatrix maps every channel v to 1-v.
func InvertMatrix() ColorMatrix {
	return ColorMatrix{
		-1, 0, 0, 1,
		0, -1, 0, 1,
		0, 0, -1, 1,
	}
}

// Then returns the matrix that applies m first and n second.
func (m ColorMatrix) Then(n ColorMatrix) ColorMatrix {
	var out ColorMatrix
	for row := range 3 {
		for col := range 3 {
			var sum float32
			for k := range 3 {
				sum += n[row*4+k] * m[k*4+col]
			}
			out[row*4+col] = sum
		}
		out[row*4+3] = n[row*4+0]*m[3] + n[row*4+1]*m[7] + n[row*4+2]*m[11] + n[row*4+3]
	}
	return out
}

// Apply transforms the RGB channels of src and returns a new buffer.
func (m ColorMatrix) Apply(src *texconv.Buffer) *texconv.Buffer {
	return mapPixels(src, func(r, g, b float32) (float32, float32, float32) {
		return m[0]*r + m[1]*g + m[2]*b + m[3],
			m[4]*r + m[5]*g + m[6]*b + m[7],
			m[8]*r + m[9]*g + m[10]*b + m[11]
	})
}

// EnhanceSaturation scales colourfulness: 0 gives greyscale, 1 leaves the
// image unchanged.
func EnhanceSaturation(src *texconv.Buffer, factor float32) *texconv.Buffer {
	if factor == 1 {
		return src.Clone()
	}
	return SaturationMatrix(factor).Apply(src)
}

// EnhanceContrast scales each channel's distance from the mean luma of the
// whole image: 0 gives a flat grey, 1 leaves the image unchanged.
func EnhanceContrast(src *texconv.Buffer, factor float32) *texconv.Buffer {
	if factor == 1 {
		return src.Clone()
	}
	d := src.Data()
	ch := src.Channels()
	var sum float64
	for i := 0; i < len(d); i += ch {
		sum += float64(color.Luma(d[i], d[i+1], d[i+2]))
	}
	var mean float32
	if n := len(d) / ch; n > 0 {
		mean = float32(sum / float64(n))
	}
	return mapChannels(src, func(v float32) float32 {
		return mean + (v-mean)*factor
	})
}

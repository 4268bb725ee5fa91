package filter

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/texconv"
)

// Invert maps every RGB value v to 1-v. Alpha is untouched.
func Invert(src *texconv.Buffer) *texconv.Buffer {
	return InvertMatrix().Apply(src)
}

// Desaturate replaces RGB with the pixel luma.
func Desaturate(src *texconv.Buffer) *texconv.Buffer {
	return GrayscaleMatrix().Apply(src)
}

// Posterize reduces each channel to a power-of-two number of steps,
// 2^floor(log2(levels)), with at least two. Values are quantised as
// floor(v*steps)/(steps-1) and clamped, so 1.0 stays 1.0.
func Posterize(src *texconv.Buffer, levels int) *texconv.Buffer {
	bits := 1
	if levels > 2 {
		bits = int(math32.Floor(math32.Log2(float32(levels))))
	}
	steps := float32(int(1) << bits)
	return mapChannels(src, func(v float32) float32 {
		return math32.Floor(v*steps) / (steps - 1)
	})
}

// Threshold sets each channel to 1 where it exceeds threshold/255 and to 0
// elsewhere.
func Threshold(src *texconv.Buffer, threshold float32) *texconv.Buffer {
	t := threshold / 255
	return mapChannels(src, func(v float32) float32 {
		if v > t {
			return 1
		}
		return 0
	})
}

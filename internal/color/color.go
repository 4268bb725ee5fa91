// Package color provides the colour math shared by the texconv operators:
// perceptual luma, RGB<->HSV conversion and unit<->integer quantisation.
//
// All functions work on straight (non-premultiplied) float32 components in
// [0, 1]. Source maps are treated as non-colour data, so no sRGB transfer
// function is applied anywhere.
package color

// Rec. 601 luma weights. Masks, desaturation, vibrance and colour balance
// all use these so that "luma" means the same thing across operators.
const (
	LumaR = 0.299
	LumaG = 0.587
	LumaB = 0.114
)

// Luma returns the Rec. 601 weighted brightness of an RGB triple.
func Luma(r, g, b float32) float32 {
	return LumaR*r + LumaG*g + LumaB*b
}

// Average returns the unweighted mean of an RGB triple.
func Average(r, g, b float32) float32 {
	return (r + g + b) / 3
}

// Max3 returns the largest of three values.
func Max3(a, b, c float32) float32 {
	if b > a {
		a = b
	}
	if c > a {
		a = c
	}
	return a
}

// Min3 returns the smallest of three values.
func Min3(a, b, c float32) float32 {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// Clamp01 clamps v to [0, 1]. NaN maps to 0.
func Clamp01(v float32) float32 {
	if v > 0 {
		if v > 1 {
			return 1
		}
		return v
	}
	return 0
}

package filter

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/texconv"
	"github.com/gogpu/texconv/internal/color"
)

// colorBalanceEpsilon guards the luminosity-preserving rescale against
// black pixels.
const colorBalanceEpsilon = 1e-7

// Vibrance boosts saturation with a bias toward muted colours.
//
// A non-zero saturation first scales each channel's distance from the
// pixel luma by (saturation+100)/100. A non-zero vibrance then pushes each
// channel away from the mean channel value of the input pixel by
// (max-mean)*vibrance/50, where max and mean are taken after the
// saturation step, so already saturated pixels move further than grey ones.
//
// Saturation alone is EnhanceSaturation with the factor clamped at 0.
func Vibrance(src *texconv.Buffer, vibrance, saturation float32) *texconv.Buffer {
	if vibrance == 0 && saturation == 0 {
		return src.Clone()
	}
	satScale := (saturation + 100) / 100
	if vibrance == 0 {
		return EnhanceSaturation(src, max(satScale, 0))
	}
	vib := vibrance / 100 * 2

	return mapPixels(src, func(r, g, b float32) (float32, float32, float32) {
		mean := color.Average(r, g, b)
		if saturation != 0 {
			l := color.Luma(r, g, b)
			r = l + (r-l)*satScale
			g = l + (g-l)*satScale
			b = l + (b-l)*satScale
		}
		amt := (color.Max3(r, g, b) - color.Average(r, g, b)) * vib
		r += (r - mean) * amt
		g += (g - mean) * amt
		b += (b - mean) * amt
		return r, g, b
	})
}

// HueSaturation works in HSV space: the hue is rotated by hue degrees and
// wraps around, saturation is scaled by (saturation+100)/100 and lightness
// is added to the value as lightness/100.
func HueSaturation(src *texconv.Buffer, hue, saturation, lightness float32) *texconv.Buffer {
	if hue == 0 && saturation == 0 && lightness == 0 {
		return src.Clone()
	}
	shift := hue / 360
	satScale := (saturation + 100) / 100
	lift := lightness / 100

	return mapPixels(src, func(r, g, b float32) (float32, float32, float32) {
		h, s, v := color.RGBToHSV(r, g, b)
		h = math32.Mod(h+shift, 1)
		if h < 0 {
			h++
		}
		s = color.Clamp01(s * satScale)
		v = color.Clamp01(v + lift)
		return color.HSVToRGB(h, s, v)
	})
}

// ColorBalance shifts the colour of shadows, midtones and highlights
// separately. Each triple holds R, G and B adjustments in [-100, 100].
//
// Pixels are weighted by luma l: shadows by 1-clamp(2l), highlights by
// clamp(2(l-0.5)) and midtones by whatever remains. With preserve set, the
// adjusted pixel is rescaled so its luma matches the original.
func ColorBalance(src *texconv.Buffer, shadows, midtones, highlights [3]float32, preserve bool) *texconv.Buffer {
	return mapPixels(src, func(r, g, b float32) (float32, float32, float32) {
		l := color.Luma(r, g, b)
		sw := 1 - color.Clamp01(l*2)
		hw := color.Clamp01((l - 0.5) * 2)
		mw := 1 - sw - hw

		rgb := [3]float32{r, g, b}
		for c := range rgb {
			rgb[c] += (sw*shadows[c] + mw*midtones[c] + hw*highlights[c]) / 100
		}
		if preserve {
			k := l / (color.Luma(rgb[0], rgb[1], rgb[2]) + colorBalanceEpsilon)
			for c := range rgb {
				rgb[c] *= k
			}
		}
		return rgb[0], rgb[1], rgb[2]
	})
}

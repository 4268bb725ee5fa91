package filter

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/interp"

	"github.com/gogpu/texconv"
	"github.com/gogpu/texconv/internal/color"
)

// levelsEpsilon keeps Levels from dividing by zero when the input black and
// white points coincide.
const levelsEpsilon = 1e-6

// ErrInvalidCurve is returned by Curves for fewer than two points or x
// values that are not strictly increasing.
var ErrInvalidCurve = errors.New("filter: invalid curve")

// BrightnessContrast adjusts brightness and contrast.
//
// With legacy set, brightness is additive (brightness/255 is added to each
// channel) and contrast follows the classic curve
//
//	c = contrast*2.55
//	factor = 259*(c+255) / (255*(259-c))
//	v' = (v-0.5)*factor + 0.5
//
// Without legacy, brightness is multiplicative (v*(1+brightness/100)) and
// positive contrast scales around mid-grey by 1+tan(contrast/100*pi/4),
// negative contrast by 1+contrast/100. Each stage clamps to [0, 1].
//
// contrast is limited to [-100, 100].
func BrightnessContrast(src *texconv.Buffer, brightness, contrast float32, legacy bool) *texconv.Buffer {
	if brightness == 0 && contrast == 0 {
		return src.Clone()
	}
	contrast = clampRange(contrast, -100, 100)

	var bright func(float32) float32
	if brightness != 0 {
		if legacy {
			offset := brightness / 255
			bright = func(v float32) float32 { return color.Clamp01(v + offset) }
		} else {
			scale := 1 + brightness/100
			bright = func(v float32) float32 { return color.Clamp01(v * scale) }
		}
	}

	var factor float32 = 1
	if contrast != 0 {
		switch {
		case legacy:
			c := contrast * 2.55
			factor = 259 * (c + 255) / (255 * (259 - c))
		case contrast > 0:
			factor = 1 + math32.Tan(contrast/100*math32.Pi/4)
		default:
			factor = 1 + contrast/100
		}
	}

	return mapChannels(src, func(v float32) float32 {
		if bright != nil {
			v = bright(v)
		}
		if contrast != 0 {
			v = (v-0.5)*factor + 0.5
		}
		return v
	})
}

// Levels remaps the input range [inputBlack, inputWhite] to [0, 1], applies
// the gamma as v^(1/gamma) and maps the result onto
// [outputBlack, outputWhite]. Black and white points are on the 0-255 scale.
// A gamma of 1, or a non-positive gamma, leaves midtones alone.
func Levels(src *texconv.Buffer, inputBlack, inputWhite, gamma, outputBlack, outputWhite float32) *texconv.Buffer {
	inBlack := inputBlack / 255
	outBlack := outputBlack / 255
	outRange := (outputWhite - outputBlack) / 255
	inRange := (inputWhite - inputBlack) / 255
	if math32.Abs(inRange) < levelsEpsilon {
		inRange = levelsEpsilon
	}
	applyGamma := gamma > 0 && gamma != 1
	invGamma := float32(1)
	if applyGamma {
		invGamma = 1 / gamma
	}

	return mapChannels(src, func(v float32) float32 {
		v = color.Clamp01((v - inBlack) / inRange)
		if applyGamma {
			v = math32.Pow(v, invGamma)
		}
		return v*outRange + outBlack
	})
}

// CurvePoint is one control point of a tone curve, both coordinates on the
// 0-255 scale.
type CurvePoint struct {
	X, Y float32
}

// Curves maps R, G and B through the piecewise-linear curve defined by
// points. Inputs below the first point or above the last take the value of
// that end point. Points must be ordered by strictly increasing X.
func Curves(src *texconv.Buffer, points []CurvePoint) (*texconv.Buffer, error) {
	curve, err := fitCurve(points)
	if err != nil {
		return nil, err
	}
	return mapChannels(src, func(v float32) float32 {
		return float32(curve.Predict(float64(v)))
	}), nil
}

// fitCurve validates the control points and fits them on the unit scale.
func fitCurve(points []CurvePoint) (*interp.PiecewiseLinear, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 points, got %d", ErrInvalidCurve, len(points))
	}
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		if i > 0 && p.X <= points[i-1].X {
			return nil, fmt.Errorf("%w: x not increasing at point %d", ErrInvalidCurve, i)
		}
		xs[i] = float64(p.X) / 255
		ys[i] = float64(p.Y) / 255
	}
	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCurve, err)
	}
	return &pl, nil
}

// Exposure scales RGB by 2^stops, adds offset and, when gamma is not 1,
// applies v^(1/gamma) to the clamped result. Non-positive gamma is ignored.
func Exposure(src *texconv.Buffer, stops, offset, gamma float32) *texconv.Buffer {
	scale := math32.Pow(2, stops)
	applyGamma := gamma > 0 && gamma != 1
	invGamma := float32(1)
	if applyGamma {
		invGamma = 1 / gamma
	}
	return mapChannels(src, func(v float32) float32 {
		v = v*scale + offset
		if applyGamma {
			v = math32.Pow(color.Clamp01(v), invGamma)
		}
		return v
	})
}

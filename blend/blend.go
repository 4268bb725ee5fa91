// Package blend implements the layer blend modes used to combine texture
// maps: add, subtract, multiply, divide, screen and overlay.
//
// All modes are separable: each RGB channel of the result depends only on
// the same channel of the source and blend layers. The blended value is
// mixed with the source by opacity,
//
//	out = src*(1-opacity) + B(src, blend)*opacity
//
// and clamped to [0, 1]. The alpha channel of src passes through unchanged
// and the alpha of the blend layer is ignored.
package blend

import (
	"fmt"
	"strings"

	"github.com/gogpu/texconv"
	"github.com/gogpu/texconv/internal/color"
)

// divideEpsilon keeps Divide finite where the blend layer is black.
const divideEpsilon = 1e-7

// Mode represents a blending mode.
type Mode int

const (
	// ModeAdd sums the layers. Result: S + B
	ModeAdd Mode = iota
	// ModeSubtract removes the blend layer from the source. Result: S - B
	ModeSubtract
	// ModeMultiply darkens. Result: S * B
	ModeMultiply
	// ModeDivide brightens. Result: S / (B + 1e-7)
	ModeDivide
	// ModeScreen lightens. Result: 1 - (1-S)*(1-B)
	ModeScreen
	// ModeOverlay multiplies dark source values and screens light ones.
	ModeOverlay
)

var modeNames = [...]string{
	ModeAdd:      "add",
	ModeSubtract: "subtract",
	ModeMultiply: "multiply",
	ModeDivide:   "divide",
	ModeScreen:   "screen",
	ModeOverlay:  "overlay",
}

// String returns the lower-case mode name.
func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode returns the mode with the given name, ignoring case.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(s, name) {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("blend: unknown mode %q", s)
}

// channelFunc is a per-channel blend function B(s, b).
type channelFunc func(s, b float32) float32

func (m Mode) channelFunc() channelFunc {
	switch m {
	case ModeAdd:
		return blendAdd
	case ModeSubtract:
		return blendSubtract
	case ModeMultiply:
		return blendMultiply
	case ModeDivide:
		return blendDivide
	case ModeScreen:
		return blendScreen
	case ModeOverlay:
		return blendOverlay
	default:
		return nil
	}
}

// Blend combines src and layer with the given mode. Both buffers must have
// the same width and height; their channel counts may differ. opacity is
// clamped to [0, 1].
func Blend(mode Mode, src, layer *texconv.Buffer, opacity float32) (*texconv.Buffer, error) {
	fn := mode.channelFunc()
	if fn == nil {
		return nil, fmt.Errorf("blend: unknown mode %v", mode)
	}
	if err := texconv.CheckSameSize("blend "+mode.String(), src, layer); err != nil {
		return nil, err
	}
	return separable(src, layer, color.Clamp01(opacity), fn), nil
}

// Add blends with ModeAdd.
func Add(src, layer *texconv.Buffer, opacity float32) (*texconv.Buffer, error) {
	return Blend(ModeAdd, src, layer, opacity)
}

// Subtract blends with ModeSubtract.
func Subtract(src, layer *texconv.Buffer, opacity float32) (*texconv.Buffer, error) {
	return Blend(ModeSubtract, src, layer, opacity)
}

// Multiply blends with ModeMultiply.
func Multiply(src, layer *texconv.Buffer, opacity float32) (*texconv.Buffer, error) {
	return Blend(ModeMultiply, src, layer, opacity)
}

// Divide blends with ModeDivide.
func Divide(src, layer *texconv.Buffer, opacity float32) (*texconv.Buffer, error) {
	return Blend(ModeDivide, src, layer, opacity)
}

// Screen blends with ModeScreen.
func Screen(src, layer *texconv.Buffer, opacity float32) (*texconv.Buffer, error) {
	return Blend(ModeScreen, src, layer, opacity)
}

// Overlay blends with ModeOverlay.
func Overlay(src, layer *texconv.Buffer, opacity float32) (*texconv.Buffer, error) {
	return Blend(ModeOverlay, src, layer, opacity)
}

// separable applies fn to every RGB channel and mixes by opacity.
// At full opacity the mix is skipped; both paths agree to within rounding.
func separable(src, layer *texconv.Buffer, opacity float32, fn channelFunc) *texconv.Buffer {
	out := src.Clone()
	d := out.Data()
	ld := layer.Data()
	sch := out.Channels()
	lch := layer.Channels()
	inv := 1 - opacity

	for p := range out.Pixels() {
		si := p * sch
		li := p * lch
		for c := range 3 {
			s := d[si+c]
			v := color.Clamp01(fn(s, ld[li+c]))
			if opacity != 1 {
				v = s*inv + v*opacity
			}
			d[si+c] = color.Clamp01(v)
		}
	}
	return out
}

// Separable blend functions

// blendAdd sums source and blend.
// Formula: B(Cs, Cb) = Cs + Cb
func blendAdd(s, b float32) float32 { return s + b }

// blendSubtract removes blend from source.
// Formula: B(Cs, Cb) = Cs - Cb
func blendSubtract(s, b float32) float32 { return s - b }

// blendMultiply multiplies source and blend colours.
// Formula: B(Cs, Cb) = Cs * Cb
func blendMultiply(s, b float32) float32 { return s * b }

// blendDivide divides source by blend.
// Formula: B(Cs, Cb) = Cs / (Cb + 1e-7)
func blendDivide(s, b float32) float32 { return s / (b + divideEpsilon) }

// blendScreen produces a lighter result than multiply.
// Formula: B(Cs, Cb) = 1 - (1 - Cs) * (1 - Cb)
func blendScreen(s, b float32) float32 { return 1 - (1-s)*(1-b) }

// blendOverlay multiplies or screens depending on the source.
// Formula: Cs < 0.5 ? 2*Cs*Cb : 1 - 2*(1-Cs)*(1-Cb)
func blendOverlay(s, b float32) float32 {
	if s < 0.5 {
		return 2 * s * b
	}
	return 1 - 2*(1-s)*(1-b)
}

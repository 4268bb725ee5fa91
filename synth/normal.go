package synth

import "github.com/gogpu/texconv"

// redNormalFallback stands in for the X component of a RED-type normal map
// that has no alpha channel.
const redNormalFallback = 0.5

// RemapNormal converts a normal map of the given layout into the engine's
// layout. The result is RGBA with alpha 1.
//
//   - NormalRed: blue takes the old red, red takes the old alpha (0.5 when
//     the source has no alpha), green is kept.
//   - NormalYellow, NormalOpenGL: green is inverted.
//   - NormalDefault: channels are copied.
//
// With forceWhiteBlue the blue channel is then set to 1.
func RemapNormal(normal *texconv.Buffer, typ NormalType, forceWhiteBlue bool) *texconv.Buffer {
	out := opaque(normal)
	d := out.Data()
	src := normal.Data()
	ch := normal.Channels()

	for p := range out.Pixels() {
		i := p * ch
		o := p * 4
		r, g, b := src[i], src[i+1], src[i+2]

		switch typ {
		case NormalRed:
			a := float32(redNormalFallback)
			if ch == 4 {
				a = src[i+3]
			}
			r, b = a, r
		case NormalYellow, NormalOpenGL:
			g = 1 - g
		}
		if forceWhiteBlue {
			b = 1
		}
		d[o], d[o+1], d[o+2] = r, g, b
	}
	return out
}

// Package mask builds single-channel masks from colour buffers and uses
// them to apply an adjustment selectively.
//
// A mask value of 1 selects the adjusted image fully, 0 keeps the original.
package mask

import (
	"github.com/gogpu/texconv"
	"github.com/gogpu/texconv/internal/color"
)

// FromLuminosity returns the Rec. 601 luma of every pixel, or 1-luma when
// invert is set.
func FromLuminosity(buf *texconv.Buffer, invert bool) *texconv.Mask {
	m := texconv.NewMask(buf.Width(), buf.Height())
	md := m.Data()
	d := buf.Data()
	ch := buf.Channels()
	for p := range md {
		i := p * ch
		l := color.Luma(d[i], d[i+1], d[i+2])
		if invert {
			l = 1 - l
		}
		md[p] = l
	}
	return m
}

// FromChannel copies one channel of buf. An index the buffer does not have
// (alpha of an RGB buffer, for instance) yields a mask of ones.
func FromChannel(buf *texconv.Buffer, index int) *texconv.Mask {
	m, err := buf.Channel(index)
	if err != nil {
		return texconv.NewMaskFilled(buf.Width(), buf.Height(), 1)
	}
	return m
}

// FromRange selects pixels whose luma lies in [lo, hi].
//
// With feather > 0 the mask is 1 inside [lo+feather, hi-feather] and ramps
// linearly to 0 across the feather bands at either end; luma at or beyond
// hi is 0. With feather <= 0 the mask is a hard indicator of [lo, hi].
func FromRange(buf *texconv.Buffer, lo, hi, feather float32) *texconv.Mask {
	m := FromLuminosity(buf, false)
	md := m.Data()
	if feather <= 0 {
		for i, l := range md {
			if l >= lo && l <= hi {
				md[i] = 1
			} else {
				md[i] = 0
			}
		}
		return m
	}

	lower := lo + feather
	upper := hi - feather
	for i, l := range md {
		switch {
		case l < lo:
			md[i] = 0
		case l < lower:
			md[i] = (l - lo) / feather
		case l < upper:
			md[i] = 1
		case l < hi:
			md[i] = (hi - l) / feather
		default:
			md[i] = 0
		}
	}
	return m
}

// Apply mixes the RGB of original and adjusted by m:
//
//	out = original*(1-m) + adjusted*m
//
// The result keeps original's channel count and alpha. All three inputs
// must share width and height.
func Apply(original, adjusted *texconv.Buffer, m *texconv.Mask) (*texconv.Buffer, error) {
	if err := texconv.CheckSameSize("apply mask", original, adjusted); err != nil {
		return nil, err
	}
	if err := texconv.CheckMaskSize("apply mask", original, m); err != nil {
		return nil, err
	}

	out := original.Clone()
	d := out.Data()
	ad := adjusted.Data()
	och := out.Channels()
	ach := adjusted.Channels()
	for p, w := range m.Data() {
		oi := p * och
		ai := p * ach
		for c := range 3 {
			d[oi+c] = d[oi+c]*(1-w) + ad[ai+c]*w
		}
	}
	return out, nil
}

// ApplyBuffer is Apply with a colour buffer as the weight; each pixel's
// weight is its luma.
func ApplyBuffer(original, adjusted, weights *texconv.Buffer) (*texconv.Buffer, error) {
	if err := texconv.CheckSameSize("apply mask", original, weights); err != nil {
		return nil, err
	}
	return Apply(original, adjusted, FromLuminosity(weights, false))
}

package color

import "github.com/chewxy/math32"

// RGBToHSV converts an RGB triple to hue, saturation and value, all in [0, 1].
// Grey pixels get hue 0 and black gets saturation 0.
func RGBToHSV(r, g, b float32) (h, s, v float32) {
	maxc := Max3(r, g, b)
	minc := Min3(r, g, b)
	v = maxc

	delta := maxc - minc
	if maxc != 0 {
		s = delta / maxc
	}
	if delta == 0 {
		return 0, s, v
	}

	switch maxc {
	case r:
		h = math32.Mod((g-b)/delta, 6)
		if h < 0 {
			h += 6
		}
	case g:
		h = (b-r)/delta + 2
	default:
		h = (r-g)/delta + 4
	}
	return h / 6, s, v
}

// HSVToRGB converts hue, saturation and value back to RGB. The hue wraps,
// so values outside [0, 1) are accepted. The result is clamped to [0, 1].
func HSVToRGB(h, s, v float32) (r, g, b float32) {
	h *= 6
	i := math32.Floor(h)
	f := h - i

	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	sector := int(i) % 6
	if sector < 0 {
		sector += 6
	}

	switch sector {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return Clamp01(r), Clamp01(g), Clamp01(b)
}

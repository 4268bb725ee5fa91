package synth

import (
	"fmt"

	"github.com/gogpu/texconv"
)

// loader resolves the maps of one item.
type loader struct {
	item *Item
	src  Source
}

// required looks up a mandatory map.
func (l loader) required(kind, name string) (*texconv.Buffer, error) {
	if name == "" {
		return nil, &MissingRequiredMapError{Item: l.item.Name, Map: kind}
	}
	buf, err := l.src.Lookup(name)
	if err != nil {
		return nil, &MissingRequiredMapError{Item: l.item.Name, Map: kind, Name: name, Err: err}
	}
	return buf, nil
}

// image looks up an optional map as a whole image. It returns nil for an
// unset reference.
func (l loader) image(kind string, ref MapRef) (*texconv.Buffer, error) {
	if !ref.IsSet() {
		return nil, nil
	}
	buf, err := l.src.Lookup(ref.Name)
	if err != nil {
		return nil, fmt.Errorf("synth: %s map %q: %w", kind, ref.Name, err)
	}
	return buf, nil
}

// channel extracts the referenced channel of an optional map at its native
// size, without inversion. It returns nil for an unset reference.
func (l loader) channel(kind string, ref MapRef) (*texconv.Mask, error) {
	buf, err := l.image(kind, ref)
	if buf == nil || err != nil {
		return nil, err
	}
	m, err := extractChannel(buf, ref.Channel)
	if err != nil {
		return nil, fmt.Errorf("synth: %s map %q: %w", kind, ref.Name, err)
	}
	return m, nil
}

// resolved resamples a native channel to w x h and applies the reference's
// inversion. A nil mask becomes a constant def, which is never inverted.
func resolved(m *texconv.Mask, ref MapRef, w, h int, def float32) (*texconv.Mask, error) {
	if m == nil {
		return texconv.NewMaskFilled(w, h, def), nil
	}
	out, err := texconv.ResizeMask(m, h, w)
	if err != nil {
		return nil, err
	}
	if ref.Invert {
		out = out.Inverted()
	}
	return out, nil
}

// extractChannel reads one channel of buf as a mask.
func extractChannel(buf *texconv.Buffer, ch Channel) (*texconv.Mask, error) {
	switch ch {
	case ChannelR, ChannelG, ChannelB:
		return buf.Channel(int(ch))
	case ChannelA:
		return buf.AlphaMask(), nil
	case ChannelAverage:
		m := texconv.NewMask(buf.Width(), buf.Height())
		d := buf.Data()
		n := buf.Channels()
		for p := range m.Data() {
			i := p * n
			m.Data()[p] = (d[i] + d[i+1] + d[i+2]) / 3
		}
		return m, nil
	default:
		return nil, &texconv.UnsupportedChannelError{Channel: int(ch), Channels: buf.Channels()}
	}
}

// plane is one channel of a packed output: a mask, or a constant where the
// mask is nil.
type plane struct {
	m *texconv.Mask
	v float32
}

func fromMask(m *texconv.Mask) plane { return plane{m: m} }
func constant(v float32) plane       { return plane{v: v} }

// pack interleaves four planes into a w x h RGBA buffer. Masks must be w x h.
func pack(w, h int, planes [4]plane) (*texconv.Buffer, error) {
	out, err := texconv.NewBuffer(w, h, 4)
	if err != nil {
		return nil, err
	}
	d := out.Data()
	for c, pl := range planes {
		if pl.m == nil {
			for i := c; i < len(d); i += 4 {
				d[i] = pl.v
			}
			continue
		}
		if pl.m.Width() != w || pl.m.Height() != h {
			return nil, &texconv.InvalidDimensionsError{
				Op: "pack", Width: pl.m.Width(), Height: pl.m.Height(), WantWidth: w, WantHeight: h,
			}
		}
		for p, v := range pl.m.Data() {
			d[p*4+c] = v
		}
	}
	return out, nil
}

// opaque returns an RGBA copy of b with alpha forced to 1.
func opaque(b *texconv.Buffer) *texconv.Buffer {
	out := b.WithAlpha()
	d := out.Data()
	for i := 3; i < len(d); i += 4 {
		d[i] = 1
	}
	return out
}

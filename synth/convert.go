package synth

import (
	"fmt"

	"github.com/gogpu/texconv"
)

// Convert runs the pipeline selected by mode.
func Convert(mode Mode, item Item, src Source) (*Result, error) {
	switch mode {
	case ModePBR:
		return ConvertPBR(item, src)
	case ModePhong:
		return ConvertPhong(item, src)
	default:
		return nil, fmt.Errorf("synth: unknown mode %v", mode)
	}
}

// ConvertPBR builds the PBR texture set.
//
// Roughness, metal and ambient occlusion are resampled to the diffuse
// resolution and packed into mrao as R=metal, G=roughness, B=ao, A=1. The
// color output is a copy of the diffuse map. The normal output is the
// normal map remapped to the engine layout at its own resolution.
func ConvertPBR(item Item, src Source) (*Result, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}
	log := texconv.Logger().With("item", item.Name, "mode", ModePBR)
	l := loader{item: &item, src: src}

	diffuse, err := l.required("diffuse", item.Diffuse)
	if err != nil {
		return nil, err
	}
	normal, err := l.required("normal", item.Normal.Name)
	if err != nil {
		return nil, err
	}
	w, h := diffuse.Width(), diffuse.Height()
	log.Debug("resolving maps", "width", w, "height", h)

	metal, err := l.resolve("metal", item.Metal, w, h, 0)
	if err != nil {
		return nil, err
	}
	rough, err := l.resolve("roughness", item.Roughness, w, h, 1)
	if err != nil {
		return nil, err
	}
	ao, err := l.resolve("ambient occlusion", item.AO, w, h, 1)
	if err != nil {
		return nil, err
	}

	res := newResult(&item, ModePBR)
	res.set(OutputColor, diffuse.Clone())

	mrao, err := pack(w, h, [4]plane{fromMask(metal), fromMask(rough), fromMask(ao), constant(1)})
	if err != nil {
		return nil, err
	}
	res.set(OutputMRAO, mrao)
	res.set(OutputNormal, RemapNormal(normal, item.Normal.Type, item.Normal.ForceWhiteBlue))

	if item.Emissive.IsSet() {
		em, err := l.pbrEmissive(w, h)
		if err != nil {
			return nil, err
		}
		res.set(OutputEmissive, em)
	}

	log.Debug("conversion done", "outputs", res.Names())
	return res, nil
}

// resolve loads an optional channel and brings it to w x h.
func (l loader) resolve(kind string, ref MapRef, w, h int, def float32) (*texconv.Mask, error) {
	m, err := l.channel(kind, ref)
	if err != nil {
		return nil, err
	}
	return resolved(m, ref, w, h, def)
}

// emissiveColor returns a COLOR emissive map resized to w x h with alpha 1.
func (l loader) emissiveColor(w, h int) (*texconv.Buffer, error) {
	buf, err := l.image("emissive", l.item.Emissive)
	if err != nil {
		return nil, err
	}
	buf, err = texconv.Resize(buf, h, w)
	if err != nil {
		return nil, err
	}
	return opaque(buf), nil
}

// pbrEmissive packs a single-channel emissive map as grey, or passes a
// COLOR map through.
func (l loader) pbrEmissive(w, h int) (*texconv.Buffer, error) {
	if l.item.Emissive.Channel == ChannelColor {
		return l.emissiveColor(w, h)
	}
	e, err := l.resolve("emissive", l.item.Emissive, w, h, 0)
	if err != nil {
		return nil, err
	}
	return e.Triplicate(), nil
}

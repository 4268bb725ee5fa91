package synth

import (
	"github.com/gogpu/texconv"
	"github.com/gogpu/texconv/blend"
	"github.com/gogpu/texconv/filter"
	"github.com/gogpu/texconv/internal/color"
	"github.com/gogpu/texconv/mask"
)

// defaultExponentSize is the exponent map size used when neither roughness
// nor metal is configured.
const defaultExponentSize = 32

// Phong diffuse treatment of metal areas.
const (
	rgbAlphaDarken     = -55 // brightness per unit of MetalDiffuseMix
	rgbAlphaContrast   = 6
	rgbAlphaSaturation = 20
	alphaContrast      = 10
	alphaSaturation    = 25
)

// Specular mask packed into the normal alpha.
const (
	specMetalOpacity = 0.8
	specBoost        = 150
)

// ConvertPhong builds the Phong texture set.
//
// Outputs use different working resolutions. The diffuse and emissive
// outputs follow the diffuse map. When both roughness and metal are
// configured, the exponent and normal outputs share the largest of the
// roughness, metal and normal sizes; otherwise the exponent follows
// whichever of the two is configured (32x32 for neither) and the normal
// output keeps the normal map size.
func ConvertPhong(item Item, src Source) (*Result, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}
	log := texconv.Logger().With("item", item.Name, "mode", ModePhong)
	l := loader{item: &item, src: src}

	diffuse, err := l.required("diffuse", item.Diffuse)
	if err != nil {
		return nil, err
	}
	normal, err := l.required("normal", item.Normal.Name)
	if err != nil {
		return nil, err
	}
	roughRaw, err := l.channel("roughness", item.Roughness)
	if err != nil {
		return nil, err
	}
	metalRaw, err := l.channel("metal", item.Metal)
	if err != nil {
		return nil, err
	}

	dw, dh := diffuse.Width(), diffuse.Height()
	sz := phongSizes(roughRaw, metalRaw, normal)
	log.Debug("working sizes",
		"diffuse", [2]int{dw, dh}, "exponent", [2]int{sz.ew, sz.eh}, "normal", [2]int{sz.nw, sz.nh})

	res := newResult(&item, ModePhong)

	// Exponent.
	rough, err := resolved(roughRaw, item.Roughness, sz.ew, sz.eh, 1)
	if err != nil {
		return nil, err
	}
	metal, err := resolved(metalRaw, item.Metal, sz.ew, sz.eh, 0)
	if err != nil {
		return nil, err
	}
	exponent, err := exponentMap(rough, metal, item.ColorAlphaMode)
	if err != nil {
		return nil, err
	}
	res.set(OutputExponent, exponent)

	// Diffuse.
	metalD, err := resolved(metalRaw, item.Metal, dw, dh, 0)
	if err != nil {
		return nil, err
	}
	ao, err := l.resolve("ambient occlusion", item.AO, dw, dh, 1)
	if err != nil {
		return nil, err
	}
	alpha, err := l.resolve("alpha", item.Alpha, dw, dh, 1)
	if err != nil {
		return nil, err
	}
	var skin *texconv.Mask
	if item.Skin.IsSet() {
		if skin, err = l.resolve("skin", item.Skin, dw, dh, 0); err != nil {
			return nil, err
		}
	}
	diffuseOut, err := diffuseMap(&item, diffuse, metalD, ao, alpha, skin)
	if err != nil {
		return nil, err
	}
	res.set(OutputDiffuse, diffuseOut)

	// Normal.
	normalN, err := texconv.Resize(normal, sz.nh, sz.nw)
	if err != nil {
		return nil, err
	}
	roughN, err := resolved(roughRaw, item.Roughness, sz.nw, sz.nh, 1)
	if err != nil {
		return nil, err
	}
	metalN, err := resolved(metalRaw, item.Metal, sz.nw, sz.nh, 0)
	if err != nil {
		return nil, err
	}
	normalOut, err := normalMap(&item, normalN, roughN, metalN, diffuse)
	if err != nil {
		return nil, err
	}
	res.set(OutputNormal, normalOut)

	// Emissive.
	if item.Emissive.IsSet() {
		em, err := l.phongEmissive(diffuse)
		if err != nil {
			return nil, err
		}
		res.set(OutputEmissive, em)
	}

	log.Debug("conversion done", "outputs", res.Names())
	return res, nil
}

type workingSizes struct {
	ew, eh int // exponent
	nw, nh int // normal
}

func phongSizes(rough, metal *texconv.Mask, normal *texconv.Buffer) workingSizes {
	nw, nh := normal.Width(), normal.Height()
	switch {
	case rough != nil && metal != nil:
		w := max(rough.Width(), metal.Width(), nw)
		h := max(rough.Height(), metal.Height(), nh)
		return workingSizes{ew: w, eh: h, nw: w, nh: h}
	case rough != nil:
		return workingSizes{ew: rough.Width(), eh: rough.Height(), nw: nw, nh: nh}
	case metal != nil:
		return workingSizes{ew: metal.Width(), eh: metal.Height(), nw: nw, nh: nh}
	default:
		return workingSizes{ew: defaultExponentSize, eh: defaultExponentSize, nw: nw, nh: nh}
	}
}

// glossiness returns the legacy-darkened inverse roughness used by both the
// exponent red channel and the specular mask.
func glossiness(rough *texconv.Mask) *texconv.Buffer {
	return filter.BrightnessContrast(rough.Inverted().Triplicate(), -100, 0, true)
}

// exponentMap packs R=glossiness, G=metal (halved in RGB_ALPHA mode), B=0, A=1.
func exponentMap(rough, metal *texconv.Mask, mode ColorAlphaMode) (*texconv.Buffer, error) {
	gloss, err := glossiness(rough).Channel(0)
	if err != nil {
		return nil, err
	}
	tint := metal
	if mode == ColorAlphaRGBAlpha {
		tint = metal.Scaled(0.5)
	}
	return pack(rough.Width(), rough.Height(), [4]plane{fromMask(gloss), fromMask(tint), constant(0), constant(1)})
}

// diffuseMap darkens the diffuse by ambient occlusion, bakes metal according
// to the colour alpha mode and restores skin areas.
func diffuseMap(item *Item, diffuse *texconv.Buffer, metal, ao, alpha, skin *texconv.Mask) (*texconv.Buffer, error) {
	out, err := blend.Multiply(diffuse.WithAlpha(), ao.Triplicate(), item.AOStrength/100)
	if err != nil {
		return nil, err
	}

	switch item.ColorAlphaMode {
	case ColorAlphaRGBAlpha:
		darkened := filter.BrightnessContrast(out, rgbAlphaDarken*item.MetalDiffuseMix, rgbAlphaContrast, false)
		if out, err = mask.Apply(out, darkened, metal); err != nil {
			return nil, err
		}
		if out, err = mask.Apply(out, filter.HueSaturation(out, 0, rgbAlphaSaturation, 0), metal); err != nil {
			return nil, err
		}
	case ColorAlphaAlpha:
		if err := out.SetChannel(3, metal); err != nil {
			return nil, err
		}
		if out, err = mask.Apply(out, filter.BrightnessContrast(out, 0, alphaContrast, true), metal); err != nil {
			return nil, err
		}
		if out, err = mask.Apply(out, filter.HueSaturation(out, 0, alphaSaturation, 0), metal); err != nil {
			return nil, err
		}
	}

	if skin != nil {
		if out, err = mask.Apply(out, diffuse, skin); err != nil {
			return nil, err
		}
		if item.SkinGamma != 0 {
			if out, err = mask.Apply(out, filter.Exposure(out, 0, 0, item.SkinGamma), skin); err != nil {
				return nil, err
			}
		}
		if item.SkinContrast != 0 {
			if out, err = mask.Apply(out, filter.BrightnessContrast(out, 0, item.SkinContrast, false), skin); err != nil {
				return nil, err
			}
		}
	}

	if item.ColorAlphaMode != ColorAlphaAlpha {
		if err := out.SetChannel(3, alpha); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// normalMap remaps the normal and packs the specular mask into alpha:
//
//	specular = R of brightness(multiply(glossiness, metal, 0.8), +150)
//
// The final boost is skipped for NPR materials. With albedo boost
// adjustment the mask is attenuated by 1 - clamp(luma(diffuse)*metal*factor).
func normalMap(item *Item, normal *texconv.Buffer, rough, metal *texconv.Mask, diffuse *texconv.Buffer) (*texconv.Buffer, error) {
	out := RemapNormal(normal, item.Normal.Type, item.Normal.ForceWhiteBlue)

	specular, err := blend.Multiply(glossiness(rough), metal.Triplicate(), specMetalOpacity)
	if err != nil {
		return nil, err
	}
	if !item.IsNPR {
		specular = filter.BrightnessContrast(specular, specBoost, 0, false)
	}
	alpha, err := specular.Channel(0)
	if err != nil {
		return nil, err
	}

	if item.AdjustForAlbedoBoost && item.AlbedoBoostFactor > 0 {
		gray, err := texconv.ResizeMask(mask.FromLuminosity(diffuse, false), out.Height(), out.Width())
		if err != nil {
			return nil, err
		}
		a, g, m := alpha.Data(), gray.Data(), metal.Data()
		for i := range a {
			a[i] *= color.Clamp01(1 - g[i]*m[i]*item.AlbedoBoostFactor)
		}
	}

	if err := out.SetChannel(3, alpha); err != nil {
		return nil, err
	}
	return out, nil
}

// phongEmissive multiplies the diffuse by a single-channel emissive map, or
// passes a COLOR map through. Alpha is 1 either way.
func (l loader) phongEmissive(diffuse *texconv.Buffer) (*texconv.Buffer, error) {
	w, h := diffuse.Width(), diffuse.Height()
	if l.item.Emissive.Channel == ChannelColor {
		return l.emissiveColor(w, h)
	}
	e, err := l.resolve("emissive", l.item.Emissive, w, h, 0)
	if err != nil {
		return nil, err
	}
	out, err := blend.Multiply(diffuse, e.Triplicate(), 1)
	if err != nil {
		return nil, err
	}
	return opaque(out), nil
}

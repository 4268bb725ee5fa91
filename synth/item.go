package synth

import (
	"errors"
	"fmt"

	"github.com/gogpu/texconv"
)

// MapRef names a source map and the channel read from it.
// An empty Name means the map is not configured.
type MapRef struct {
	Name    string
	Channel Channel
	// Invert replaces every value v with 1-v after resampling.
	Invert bool
}

// IsSet reports whether the map is configured.
func (r MapRef) IsSet() bool { return r.Name != "" }

// NormalRef names the source normal map and its layout.
type NormalRef struct {
	Name string
	Type NormalType
	// ForceWhiteBlue sets the output blue channel to 1 after remapping.
	ForceWhiteBlue bool
}

// Item is the configuration of one material conversion.
type Item struct {
	// Name identifies the item in logs and errors.
	Name string

	// Diffuse and Normal are required.
	Diffuse string
	Normal  NormalRef

	Roughness MapRef
	Metal     MapRef
	AO        MapRef
	// AOStrength is the opacity of the ambient occlusion multiply, 0-100.
	AOStrength float32

	// Skin marks areas that keep the untreated diffuse colour (Phong only).
	Skin         MapRef
	SkinGamma    float32
	SkinContrast float32

	Emissive MapRef
	Alpha    MapRef

	ColorAlphaMode ColorAlphaMode
	// MetalDiffuseMix scales the darkening of metal areas in RGB_ALPHA mode, 0-1.
	MetalDiffuseMix float32
	// IsNPR skips the final boost of the specular mask for stylised materials.
	IsNPR bool
	// AdjustForAlbedoBoost attenuates the specular mask on bright metal so
	// the material can be used with $phongalbedoboost.
	AdjustForAlbedoBoost bool
	AlbedoBoostFactor    float32

	// OutputDir and BaseName are used by callers to name output files.
	OutputDir string
	BaseName  string
}

// NewItem returns an item with the given required maps and the usual
// defaults: full-strength ambient occlusion and metal mix, and an albedo
// boost factor of 1.
func NewItem(name, diffuse, normal string) Item {
	return Item{
		Name:              name,
		Diffuse:           diffuse,
		Normal:            NormalRef{Name: normal},
		AOStrength:        100,
		MetalDiffuseMix:   1,
		AlbedoBoostFactor: 1,
	}
}

// OutputBase returns BaseName, or Name when BaseName is empty.
func (it *Item) OutputBase() string {
	if it.BaseName != "" {
		return it.BaseName
	}
	return it.Name
}

// Validate checks that the required maps are configured and that every
// setting is in range.
func (it *Item) Validate() error {
	if it.Diffuse == "" {
		return &MissingRequiredMapError{Item: it.Name, Map: "diffuse"}
	}
	if it.Normal.Name == "" {
		return &MissingRequiredMapError{Item: it.Name, Map: "normal"}
	}

	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: item %q: "+format, append([]any{ErrInvalidItem, it.Name}, args...)...))
		}
	}
	check(validEnum(int(it.Normal.Type), len(normalTypeNames)), "normal type %v", it.Normal.Type)
	check(validEnum(int(it.ColorAlphaMode), len(colorAlphaModeNames)), "color alpha mode %v", it.ColorAlphaMode)
	for _, m := range []struct {
		kind string
		ref  MapRef
	}{
		{"roughness", it.Roughness},
		{"metal", it.Metal},
		{"ambient occlusion", it.AO},
		{"skin", it.Skin},
		{"alpha", it.Alpha},
	} {
		check(validEnum(int(m.ref.Channel), int(ChannelColor)), "%s channel %v", m.kind, m.ref.Channel)
	}
	check(validEnum(int(it.Emissive.Channel), len(channelNames)), "emissive channel %v", it.Emissive.Channel)
	check(it.AOStrength >= 0 && it.AOStrength <= 100, "ao strength %v outside [0, 100]", it.AOStrength)
	check(it.SkinContrast >= -100 && it.SkinContrast <= 100, "skin contrast %v outside [-100, 100]", it.SkinContrast)
	check(it.SkinGamma >= 0, "skin gamma %v is negative", it.SkinGamma)
	check(it.MetalDiffuseMix >= 0 && it.MetalDiffuseMix <= 1, "metal diffuse mix %v outside [0, 1]", it.MetalDiffuseMix)
	check(it.AlbedoBoostFactor >= 0, "albedo boost factor %v is negative", it.AlbedoBoostFactor)
	return errors.Join(errs...)
}

// Source resolves map names to decoded buffers. A Source shared by Batch
// must be safe for concurrent use, and must not hand out buffers that are
// modified afterwards.
type Source interface {
	Lookup(name string) (*texconv.Buffer, error)
}

// Maps is an in-memory Source.
type Maps map[string]*texconv.Buffer

// Lookup returns the buffer stored under name.
func (m Maps) Lookup(name string) (*texconv.Buffer, error) {
	b, ok := m[name]
	if !ok || b == nil {
		return nil, fmt.Errorf("%w: %q", ErrMapNotFound, name)
	}
	return b, nil
}

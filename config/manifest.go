package config

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"

	"github.com/gogpu/texconv/imageio"
	"github.com/gogpu/texconv/synth"
)

// Manifest is a decoded batch manifest.
type Manifest struct {
	Version   string `toml:"version" yaml:"version"`
	Mode      string `toml:"mode" yaml:"mode"`
	SourceDir string `toml:"source_dir" yaml:"source_dir"`
	OutputDir string `toml:"output_dir" yaml:"output_dir"`
	Format    string `toml:"format" yaml:"format"`
	Workers   int    `toml:"workers" yaml:"workers"`

	// CacheMB bounds the memory used by decoded source maps; 0 is unlimited.
	CacheMB int `toml:"cache_mb" yaml:"cache_mb"`

	Defaults ItemConfig   `toml:"defaults" yaml:"defaults"`
	Entries  []ItemConfig `toml:"items" yaml:"items"`
}

// MapConfig selects a map and the channel to read from it.
type MapConfig struct {
	Name    string `toml:"name" yaml:"name"`
	Channel string `toml:"channel" yaml:"channel"`
	Invert  *bool  `toml:"invert" yaml:"invert"`
}

// NormalConfig selects the normal map and its convention.
type NormalConfig struct {
	Name           string `toml:"name" yaml:"name"`
	Type           string `toml:"type" yaml:"type"`
	ForceWhiteBlue *bool  `toml:"force_white_blue" yaml:"force_white_blue"`
}

// ItemConfig is one material as written in a manifest. Numeric and boolean
// settings are pointers so that an explicit zero overrides the defaults.
// The map tables are merged key by key, so they are skipped by the
// top-level copy.
type ItemConfig struct {
	Name     string       `toml:"name" yaml:"name"`
	Diffuse  string       `toml:"diffuse" yaml:"diffuse"`
	Normal   NormalConfig `toml:"normal" yaml:"normal" copier:"-"`
	Rough    MapConfig    `toml:"roughness" yaml:"roughness" copier:"-"`
	Metal    MapConfig    `toml:"metal" yaml:"metal" copier:"-"`
	AO       MapConfig    `toml:"ao" yaml:"ao" copier:"-"`
	Skin     MapConfig    `toml:"skin" yaml:"skin" copier:"-"`
	Emissive MapConfig    `toml:"emissive" yaml:"emissive" copier:"-"`
	Alpha    MapConfig    `toml:"alpha" yaml:"alpha" copier:"-"`

	AOStrength           *float32 `toml:"ao_strength" yaml:"ao_strength"`
	SkinGamma            *float32 `toml:"skin_gamma" yaml:"skin_gamma"`
	SkinContrast         *float32 `toml:"skin_contrast" yaml:"skin_contrast"`
	ColorAlphaMode       string   `toml:"color_alpha_mode" yaml:"color_alpha_mode"`
	MetalDiffuseMix      *float32 `toml:"metal_diffuse_mix" yaml:"metal_diffuse_mix"`
	IsNPR                *bool    `toml:"npr" yaml:"npr"`
	AdjustForAlbedoBoost *bool    `toml:"adjust_for_albedo_boost" yaml:"adjust_for_albedo_boost"`
	AlbedoBoostFactor    *float32 `toml:"albedo_boost_factor" yaml:"albedo_boost_factor"`

	OutputDir string `toml:"output_dir" yaml:"output_dir"`
	BaseName  string `toml:"base_name" yaml:"base_name"`
}

// RunMode returns the conversion mode, PBR when unset.
func (m *Manifest) RunMode() (synth.Mode, error) {
	if m.Mode == "" {
		return synth.ModePBR, nil
	}
	return synth.ParseMode(m.Mode)
}

// OutputFormat returns the output file format, TGA when unset.
func (m *Manifest) OutputFormat() (imageio.Format, error) {
	if m.Format == "" {
		return imageio.FormatTGA, nil
	}
	return imageio.ParseFormat(m.Format)
}

// Items merges the defaults into every entry and converts the result to
// validated synth items. All invalid entries are reported together.
func (m *Manifest) Items() ([]synth.Item, error) {
	items := make([]synth.Item, 0, len(m.Entries))
	var errs []error
	for i := range m.Entries {
		merged, err := m.merge(&m.Entries[i])
		if err != nil {
			return nil, err
		}
		item, err := merged.item()
		if err == nil {
			err = item.Validate()
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("config: items[%d]: %w", i, err))
			continue
		}
		items = append(items, item)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return items, nil
}

// merge overlays the non-empty fields of entry on a copy of the defaults.
// Tables such as normal or roughness are merged key by key. The result
// shares no pointers with m.
func (m *Manifest) merge(entry *ItemConfig) (ItemConfig, error) {
	var merged ItemConfig
	for _, src := range []*ItemConfig{&m.Defaults, entry} {
		if err := merged.overlay(src); err != nil {
			return ItemConfig{}, fmt.Errorf("config: merge defaults: %w", err)
		}
	}
	return merged, nil
}

func (c *ItemConfig) overlay(src *ItemConfig) error {
	opt := copier.Option{IgnoreEmpty: true, DeepCopy: true}
	if err := copier.CopyWithOption(c, src, opt); err != nil {
		return err
	}
	if err := copier.CopyWithOption(&c.Normal, &src.Normal, opt); err != nil {
		return fmt.Errorf("normal: %w", err)
	}
	for _, t := range []struct {
		dst, src *MapConfig
	}{
		{&c.Rough, &src.Rough},
		{&c.Metal, &src.Metal},
		{&c.AO, &src.AO},
		{&c.Skin, &src.Skin},
		{&c.Emissive, &src.Emissive},
		{&c.Alpha, &src.Alpha},
	} {
		if err := copier.CopyWithOption(t.dst, t.src, opt); err != nil {
			return err
		}
	}
	return nil
}

func (c *ItemConfig) item() (synth.Item, error) {
	name := c.Name
	if name == "" {
		name = c.Diffuse
	}
	item := synth.NewItem(name, c.Diffuse, c.Normal.Name)
	item.OutputDir = c.OutputDir
	item.BaseName = c.BaseName

	var err error
	if c.Normal.Type != "" {
		if item.Normal.Type, err = synth.ParseNormalType(c.Normal.Type); err != nil {
			return item, err
		}
	}
	setBool(&item.Normal.ForceWhiteBlue, c.Normal.ForceWhiteBlue)

	for _, ref := range []struct {
		dst *synth.MapRef
		src MapConfig
	}{
		{&item.Roughness, c.Rough},
		{&item.Metal, c.Metal},
		{&item.AO, c.AO},
		{&item.Skin, c.Skin},
		{&item.Emissive, c.Emissive},
		{&item.Alpha, c.Alpha},
	} {
		if *ref.dst, err = ref.src.ref(); err != nil {
			return item, err
		}
	}

	if c.ColorAlphaMode != "" {
		if item.ColorAlphaMode, err = synth.ParseColorAlphaMode(c.ColorAlphaMode); err != nil {
			return item, err
		}
	}
	setFloat(&item.AOStrength, c.AOStrength)
	setFloat(&item.SkinGamma, c.SkinGamma)
	setFloat(&item.SkinContrast, c.SkinContrast)
	setFloat(&item.MetalDiffuseMix, c.MetalDiffuseMix)
	setFloat(&item.AlbedoBoostFactor, c.AlbedoBoostFactor)
	setBool(&item.IsNPR, c.IsNPR)
	setBool(&item.AdjustForAlbedoBoost, c.AdjustForAlbedoBoost)
	return item, nil
}

func (c MapConfig) ref() (synth.MapRef, error) {
	ch, err := synth.ParseChannel(c.Channel)
	if err != nil {
		return synth.MapRef{}, err
	}
	return synth.MapRef{Name: c.Name, Channel: ch, Invert: c.Invert != nil && *c.Invert}, nil
}

func setFloat(dst *float32, v *float32) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// SourceNames returns every map name referenced by the manifest's items,
// without duplicates, in order of first use.
func SourceNames(items []synth.Item) []string {
	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for i := range items {
		it := &items[i]
		add(it.Diffuse)
		add(it.Normal.Name)
		for _, ref := range []synth.MapRef{it.Roughness, it.Metal, it.AO, it.Skin, it.Emissive, it.Alpha} {
			add(ref.Name)
		}
	}
	return names
}

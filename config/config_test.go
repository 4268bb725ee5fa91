package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/texconv/imageio"
	"github.com/gogpu/texconv/synth"
)

const tomlManifest = `
version = "1.2"
mode = "phong"
source_dir = "maps"
output_dir = "out"
format = "png"
workers = 3

[defaults]
ao_strength = 80.0
color_alpha_mode = "rgb_alpha"
npr = true

[[items]]
name = "crate"
diffuse = "crate_albedo"
normal = { name = "crate_nrm", type = "opengl" }
roughness = { name = "crate_orm", channel = "g" }
metal = { name = "crate_orm", channel = "b", invert = true }

[[items]]
diffuse = "barrel_d"
normal = { name = "barrel_n" }
ao_strength = 0.0
color_alpha_mode = "none"
base_name = "barrel_v2"
`

const yamlManifest = `
version: "1.2"
mode: phong
source_dir: maps
output_dir: out
format: png
workers: 3
defaults:
  ao_strength: 80
  color_alpha_mode: rgb_alpha
  npr: true
items:
  - name: crate
    diffuse: crate_albedo
    normal: {name: crate_nrm, type: opengl}
    roughness: {name: crate_orm, channel: g}
    metal: {name: crate_orm, channel: b, invert: true}
  - diffuse: barrel_d
    normal: {name: barrel_n}
    ao_strength: 0
    color_alpha_mode: none
    base_name: barrel_v2
`

func TestParse(t *testing.T) {
	for _, tt := range []struct {
		format Format
		data   string
	}{
		{FormatTOML, tomlManifest},
		{FormatYAML, yamlManifest},
	} {
		t.Run(tt.format.String(), func(t *testing.T) {
			m, err := Parse([]byte(tt.data), tt.format)
			require.NoError(t, err)

			assert.Equal(t, "maps", m.SourceDir)
			assert.Equal(t, "out", m.OutputDir)
			assert.Equal(t, 3, m.Workers)

			mode, err := m.RunMode()
			require.NoError(t, err)
			assert.Equal(t, synth.ModePhong, mode)

			format, err := m.OutputFormat()
			require.NoError(t, err)
			assert.Equal(t, imageio.FormatPNG, format)

			items, err := m.Items()
			require.NoError(t, err)
			require.Len(t, items, 2)

			crate := items[0]
			assert.Equal(t, "crate", crate.Name)
			assert.Equal(t, "crate_albedo", crate.Diffuse)
			assert.Equal(t, synth.NormalRef{Name: "crate_nrm", Type: synth.NormalOpenGL}, crate.Normal)
			assert.Equal(t, synth.MapRef{Name: "crate_orm", Channel: synth.ChannelG}, crate.Roughness)
			assert.Equal(t, synth.MapRef{Name: "crate_orm", Channel: synth.ChannelB, Invert: true}, crate.Metal)
			assert.False(t, crate.AO.IsSet())
			assert.InDelta(t, 80, crate.AOStrength, 1e-6, "inherited from defaults")
			assert.Equal(t, synth.ColorAlphaRGBAlpha, crate.ColorAlphaMode)
			assert.True(t, crate.IsNPR)
			assert.InDelta(t, 1, crate.MetalDiffuseMix, 1e-6, "item default")

			barrel := items[1]
			assert.Equal(t, "barrel_d", barrel.Name, "name falls back to the diffuse map")
			assert.Equal(t, "barrel_v2", barrel.OutputBase())
			assert.InDelta(t, 0, barrel.AOStrength, 1e-6, "explicit zero overrides defaults")
			assert.Equal(t, synth.ColorAlphaNone, barrel.ColorAlphaMode)
			assert.True(t, barrel.IsNPR)
		})
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("version = \"1\"\ncolour = \"red\"\n"), FormatTOML)
	require.Error(t, err)

	_, err = Parse([]byte("version: \"1\"\ncolour: red\n"), FormatYAML)
	require.Error(t, err)
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		version string
		ok      bool
	}{
		{"", true},
		{"1", true},
		{"1.0.0", true},
		{"1.9", true},
		{"0.9", false},
		{"2.0.0", false},
		{"latest", false},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			_, err := Parse([]byte("version = \""+tt.version+"\"\n"), FormatTOML)
			if tt.ok {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrUnsupportedVersion)
		})
	}
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse([]byte("  \n"), FormatTOML)
	require.ErrorIs(t, err, ErrEmpty)

	_, err = Parse([]byte("# nothing\n"), FormatYAML)
	require.ErrorIs(t, err, ErrEmpty)
}

func TestParseExpandsHome(t *testing.T) {
	m, err := Parse([]byte("source_dir = \"~/materials\"\n"), FormatTOML)
	require.NoError(t, err)

	want, err := homedir.Expand("~/materials")
	require.NoError(t, err)
	assert.Equal(t, want, m.SourceDir)
}

func TestItemsErrors(t *testing.T) {
	data := `
[[items]]
name = "no normal"
diffuse = "d"

[[items]]
name = "bad channel"
diffuse = "d"
normal = { name = "n" }
metal = { name = "m", channel = "q" }

[[items]]
name = "bad range"
diffuse = "d"
normal = { name = "n" }
ao_strength = 150.0

[[items]]
name = "fine"
diffuse = "d"
normal = { name = "n" }
`
	m, err := Parse([]byte(data), FormatTOML)
	require.NoError(t, err)

	_, err = m.Items()
	require.Error(t, err)
	assert.ErrorIs(t, err, synth.ErrMissingRequiredMap)
	assert.ErrorIs(t, err, synth.ErrInvalidItem)
	assert.Contains(t, err.Error(), "items[1]")
	assert.NotContains(t, err.Error(), "items[3]")
}

const nestedDefaults = `
version = "1"

[defaults]
ao_strength = 80.0
normal = { type = "opengl", force_white_blue = true }
roughness = { channel = "g", invert = true }

[[items]]
diffuse = "crate_d"
normal = { name = "crate_n" }
roughness = { name = "crate_orm" }
ao_strength = 50.0

[[items]]
diffuse = "barrel_d"
normal = { name = "barrel_n", type = "yellow", force_white_blue = false }
roughness = { name = "barrel_orm", channel = "b", invert = false }
`

func TestItemsMergeTablesKeyByKey(t *testing.T) {
	m, err := Parse([]byte(nestedDefaults), FormatTOML)
	require.NoError(t, err)

	items, err := m.Items()
	require.NoError(t, err)
	require.Len(t, items, 2)

	crate := items[0]
	assert.Equal(t, synth.NormalRef{Name: "crate_n", Type: synth.NormalOpenGL, ForceWhiteBlue: true}, crate.Normal)
	assert.Equal(t, synth.MapRef{Name: "crate_orm", Channel: synth.ChannelG, Invert: true}, crate.Roughness)
	assert.InDelta(t, 50, crate.AOStrength, 1e-6)

	barrel := items[1]
	assert.Equal(t, synth.NormalRef{Name: "barrel_n", Type: synth.NormalYellow}, barrel.Normal,
		"explicit false overrides the defaults")
	assert.Equal(t, synth.MapRef{Name: "barrel_orm", Channel: synth.ChannelB}, barrel.Roughness)
	assert.InDelta(t, 80, barrel.AOStrength, 1e-6, "an earlier item must not leak into the defaults")

	require.NotNil(t, m.Defaults.AOStrength)
	assert.InDelta(t, 80, *m.Defaults.AOStrength, 1e-6)
	assert.Empty(t, m.Defaults.Normal.Name)
}

func TestDefaultsWhenUnset(t *testing.T) {
	m, err := Parse([]byte("version = \"1\"\n"), FormatTOML)
	require.NoError(t, err)

	mode, err := m.RunMode()
	require.NoError(t, err)
	assert.Equal(t, synth.ModePBR, mode)

	format, err := m.OutputFormat()
	require.NoError(t, err)
	assert.Equal(t, imageio.FormatTGA, format)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "batch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlManifest), 0o600))

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "maps"), m.SourceDir)
	assert.Equal(t, filepath.Join(dir, "out"), m.OutputDir)

	_, err = Load(filepath.Join(dir, "batch.json"))
	require.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	require.Error(t, err)
}

func TestSourceNames(t *testing.T) {
	m, err := Parse([]byte(tomlManifest), FormatTOML)
	require.NoError(t, err)
	items, err := m.Items()
	require.NoError(t, err)

	assert.Equal(t, []string{"crate_albedo", "crate_nrm", "crate_orm", "barrel_d", "barrel_n"}, SourceNames(items))
}

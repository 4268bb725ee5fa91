// Package config loads batch manifests for the texconv command.
//
// A manifest lists the materials to convert together with run options.
// It is written in TOML or YAML; unknown keys are rejected in both.
//
//	version = "1"
//	mode = "phong"
//	source_dir = "~/materials/crate"
//	output_dir = "out"
//
//	[defaults]
//	ao_strength = 80.0
//
//	[[items]]
//	name = "crate"
//	diffuse = "crate_albedo"
//	normal = { name = "crate_nrm", type = "opengl" }
//	roughness = { name = "crate_orm", channel = "g" }
//	metal = { name = "crate_orm", channel = "b" }
//
// Every item inherits the settings of the defaults table that it does not
// set itself.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// SupportedVersions is the manifest version constraint this package reads.
const SupportedVersions = "^1"

// Format is a manifest encoding.
type Format int

const (
	// FormatTOML is TOML.
	FormatTOML Format = iota

	// FormatYAML is YAML.
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Common errors for manifest loading.
var (
	// ErrUnknownFormat is returned for a manifest file extension other
	// than .toml, .yaml or .yml.
	ErrUnknownFormat = errors.New("config: unknown manifest format")

	// ErrUnsupportedVersion is returned when the manifest version does not
	// satisfy SupportedVersions.
	ErrUnsupportedVersion = errors.New("config: unsupported manifest version")

	// ErrEmpty is returned for a manifest without content.
	ErrEmpty = errors.New("config: empty manifest")
)

// FormatOf returns the manifest format implied by the extension of path.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
}

// Load reads the manifest at path. Relative source and output directories
// are resolved against the directory holding the manifest.
func Load(path string) (*Manifest, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("config: read manifest: %w", err)
	}
	m, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}

	base := filepath.Dir(path)
	if !filepath.IsAbs(m.SourceDir) {
		m.SourceDir = filepath.Join(base, m.SourceDir)
	}
	if !filepath.IsAbs(m.OutputDir) {
		m.OutputDir = filepath.Join(base, m.OutputDir)
	}
	return m, nil
}

// Parse decodes a manifest, checks its version and expands a leading ~ in
// its directories.
func Parse(data []byte, format Format) (*Manifest, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmpty
	}

	var m Manifest
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&m); err != nil {
			return nil, fmt.Errorf("config: decode toml: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&m); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, ErrEmpty
			}
			return nil, fmt.Errorf("config: decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}

	if err := checkVersion(m.Version); err != nil {
		return nil, err
	}

	var err error
	if m.SourceDir, err = homedir.Expand(m.SourceDir); err != nil {
		return nil, fmt.Errorf("config: source_dir: %w", err)
	}
	if m.OutputDir, err = homedir.Expand(m.OutputDir); err != nil {
		return nil, fmt.Errorf("config: output_dir: %w", err)
	}
	return &m, nil
}

// checkVersion accepts an empty version as the current one.
func checkVersion(v string) error {
	if v == "" {
		return nil
	}
	version, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrUnsupportedVersion, v, err)
	}
	constraint, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return err
	}
	if !constraint.Check(version) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrUnsupportedVersion, version, SupportedVersions)
	}
	return nil
}

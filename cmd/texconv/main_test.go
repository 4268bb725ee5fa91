package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/texconv"
	"github.com/gogpu/texconv/imageio"
)

func writeSource(t *testing.T, path string) {
	t.Helper()
	buf, err := texconv.NewFilled(8, 8, 0.5, 0.5, 1, 1)
	require.NoError(t, err)
	require.NoError(t, imageio.WriteFile(path, buf, imageio.FormatPNG))
}

func setup(t *testing.T, manifest string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "maps"), 0o750))
	writeSource(t, filepath.Join(dir, "maps", "crate_d.png"))
	writeSource(t, filepath.Join(dir, "maps", "crate_n.png"))
	path := filepath.Join(dir, "batch.toml")
	require.NoError(t, os.WriteFile(path, []byte(manifest), 0o600))
	return path
}

const manifest = `
version = "1"
source_dir = "maps"
output_dir = "out"

[[items]]
name = "crate"
diffuse = "crate_d"
normal = { name = "crate_n" }
`

func TestRunConvertsManifest(t *testing.T) {
	path := setup(t, manifest)
	var stdout, stderr bytes.Buffer

	err := run(context.Background(), []string{"-manifest", path, "-mode", "phong"}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())
	assert.Contains(t, stdout.String(), "Converted 1/1 items")

	out := filepath.Join(filepath.Dir(path), "out")
	for _, name := range []string{"crate_d.tga", "crate_n.tga", "crate_e.tga"} {
		_, err := os.Stat(filepath.Join(out, name))
		assert.NoError(t, err, name)
	}
}

func TestRunOverrides(t *testing.T) {
	path := setup(t, manifest)
	out := t.TempDir()
	var stdout, stderr bytes.Buffer

	err := run(context.Background(),
		[]string{"-manifest", path, "-out", out, "-format", "png", "-workers", "2"}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	_, err = os.Stat(filepath.Join(out, "crate_mrao.png"))
	assert.NoError(t, err)
}

func TestRunReportsFailures(t *testing.T) {
	path := setup(t, manifest+`
[[items]]
name = "barrel"
diffuse = "barrel_d"
normal = { name = "crate_n" }
`)
	var stdout, stderr bytes.Buffer

	err := run(context.Background(), []string{"-manifest", path}, &stdout, &stderr)
	require.ErrorIs(t, err, errFailed)
	assert.Contains(t, stdout.String(), "Converted 1/2 items")
	assert.Contains(t, stdout.String(), "barrel")
}

func TestRunRecipe(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-recipe", "-mode", "phong"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "$phong")

	err := run(context.Background(), []string{"-recipe", "-mode", "flat"}, &stdout, &stderr)
	require.Error(t, err)
}

func TestRunRequiresManifest(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), nil, &stdout, &stderr)
	require.Error(t, err)
	assert.Contains(t, stderr.String(), "-manifest")
}

func TestJobUses(t *testing.T) {
	path := setup(t, manifest)
	j, err := loadJob(options{manifest: path})
	require.NoError(t, err)

	maps := filepath.Join(filepath.Dir(path), "maps")
	assert.True(t, j.uses(filepath.Join(maps, "crate_d.png")))
	assert.True(t, j.uses(filepath.Join(maps, "crate_n.tga")))
	assert.False(t, j.uses(filepath.Join(maps, "crate_d_d.tga")))
	assert.Equal(t, []string{maps}, j.sourceDirs())
}

package imageio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"unicode"

	"github.com/gogpu/texconv"
	"github.com/gogpu/texconv/synth"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fallbackBase is used when a name has no usable characters.
const fallbackBase = "texture"

// BaseName turns a material name into a portable file base name. Accents
// are stripped and every character outside [A-Za-z0-9._-] becomes '_'.
func BaseName(name string) string {
	// Transformers carry state, so the chain is built per call.
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Map(portableRune),
		norm.NFC,
	)
	s, _, err := transform.String(t, name)
	if err != nil || s == "" || s == "." || s == ".." {
		return fallbackBase
	}
	return s
}

func portableRune(r rune) rune {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return r
	case r == '.', r == '-', r == '_':
		return r
	}
	return '_'
}

// OutputDir returns the directory outputs of item are written to: the
// item's own OutputDir, resolved against root when it is relative.
func OutputDir(root string, item *synth.Item) string {
	switch {
	case item.OutputDir == "":
		return root
	case filepath.IsAbs(item.OutputDir):
		return item.OutputDir
	}
	return filepath.Join(root, item.OutputDir)
}

// OutputPath returns the file path of one output of res.
func OutputPath(root string, res *synth.Result, output string, format Format) string {
	name := BaseName(res.Item.OutputBase()) + synth.Suffix(res.Mode, output) + format.Ext()
	return filepath.Join(OutputDir(root, res.Item), name)
}

// WriteResult writes every output of res under root and returns the paths
// written, in output order.
func WriteResult(root string, res *synth.Result, format Format) ([]string, error) {
	if err := os.MkdirAll(OutputDir(root, res.Item), 0o750); err != nil {
		return nil, fmt.Errorf("imageio: create output dir: %w", err)
	}

	paths := make([]string, 0, res.Len())
	for _, output := range res.Names() {
		path := OutputPath(root, res, output, format)
		if err := WriteFile(path, res.Get(output), format); err != nil {
			return paths, fmt.Errorf("imageio: write %s: %w", output, err)
		}
		paths = append(paths, path)
	}

	texconv.Logger().Debug("imageio: wrote outputs",
		"item", res.Item.Name, "count", len(paths), "dir", OutputDir(root, res.Item))
	return paths, nil
}

// Sink returns a synth.Sink that writes each result with WriteResult.
func Sink(root string, format Format) synth.Sink {
	return func(ctx context.Context, res *synth.Result) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, err := WriteResult(root, res, format)
		return err
	}
}

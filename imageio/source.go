package imageio

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/gogpu/texconv"
	"github.com/gogpu/texconv/internal/cache"
	"github.com/gogpu/texconv/synth"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// sourceExts are tried, in order, for map names given without an extension.
var sourceExts = []string{".png", ".tga", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff", ".webp"}

// suggestThreshold is the minimum similarity for a "did you mean" hint.
const suggestThreshold = 0.5

// FileSource is a synth.Source that decodes map files relative to a root
// directory. Decoded buffers are cached until Reset or until the cache
// budget forces them out, and concurrent lookups of the same name decode
// the file once.
type FileSource struct {
	root  string
	cache *cache.Cache[string, *texconv.Buffer]
	group singleflight.Group
}

var _ synth.Source = (*FileSource)(nil)

// SourceOption configures a FileSource.
type SourceOption func(*sourceOptions)

type sourceOptions struct {
	budget int64
}

// WithCacheBudget bounds the memory held by decoded maps, in bytes.
// Zero, the default, keeps every decoded map.
func WithCacheBudget(bytes int64) SourceOption {
	return func(o *sourceOptions) {
		o.budget = bytes
	}
}

// NewFileSource creates a source rooted at dir.
func NewFileSource(dir string, opts ...SourceOption) *FileSource {
	var o sourceOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &FileSource{root: dir, cache: cache.New[string, *texconv.Buffer](o.budget)}
}

// Root returns the directory names are resolved against.
func (s *FileSource) Root() string { return s.root }

// Lookup decodes the named map, or returns it from the cache.
//
// A name without an extension matches the first existing file with one of
// the supported source extensions. When nothing matches, the error wraps
// synth.ErrMapNotFound and suggests the closest file name in the directory.
func (s *FileSource) Lookup(name string) (*texconv.Buffer, error) {
	if buf, ok := s.cache.Get(name); ok {
		return buf, nil
	}

	v, err, _ := s.group.Do(name, func() (any, error) {
		if buf, ok := s.cache.Get(name); ok {
			return buf, nil
		}
		path, err := s.resolve(name)
		if err != nil {
			return nil, err
		}
		buf, err := DecodeFile(path)
		if err != nil {
			return nil, fmt.Errorf("imageio: map %q: %w", name, err)
		}
		texconv.Logger().Debug("imageio: decoded map",
			"name", name, "path", path, "size", fmt.Sprintf("%dx%d", buf.Width(), buf.Height()))
		s.cache.Set(name, buf, bufferBytes(buf))
		return buf, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*texconv.Buffer), nil
}

func bufferBytes(b *texconv.Buffer) int64 {
	return int64(len(b.Data())) * 4
}

// Preload decodes names concurrently with at most workers decodes in
// flight, filling the cache. It returns the first error; the remaining
// decodes are cancelled.
func (s *FileSource) Preload(ctx context.Context, names []string, workers int) error {
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for _, name := range names {
		if name == "" {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := s.Lookup(name)
			return err
		})
	}
	return g.Wait()
}

// Reset drops every cached buffer.
func (s *FileSource) Reset() { s.cache.Clear() }

// Len returns the number of cached buffers.
func (s *FileSource) Len() int { return s.cache.Len() }

// CachedBytes returns the memory held by cached buffers.
func (s *FileSource) CachedBytes() int64 { return s.cache.Stats().Cost }

func (s *FileSource) path(name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(s.root, name)
}

func (s *FileSource) resolve(name string) (string, error) {
	path := s.path(name)
	if isFile(path) {
		return path, nil
	}
	if filepath.Ext(name) == "" {
		for _, ext := range sourceExts {
			if isFile(path + ext) {
				return path + ext, nil
			}
		}
	}

	if hint := suggest(filepath.Dir(path), filepath.Base(name)); hint != "" {
		return "", fmt.Errorf("%w: %q (did you mean %q?)", synth.ErrMapNotFound, name, hint)
	}
	return "", fmt.Errorf("%w: %q", synth.ErrMapNotFound, name)
}

func isFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

// suggest returns the file in dir whose name is most similar to name, or ""
// when nothing is similar enough.
func suggest(dir, name string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			texconv.Logger().Debug("imageio: list source dir", "dir", dir, "err", err)
		}
		return ""
	}

	metric := metrics.NewLevenshtein()
	want := strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name)))
	best, bestScore := "", suggestThreshold
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		stem := strings.ToLower(strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
		if score := strutil.Similarity(want, stem, metric); score >= bestScore {
			best, bestScore = e.Name(), score
		}
	}
	return best
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/texconv"
	"github.com/gogpu/texconv/config"
	"github.com/gogpu/texconv/imageio"
)

// watchDebounce collapses the burst of events an editor produces when it
// saves a file.
const watchDebounce = 300 * time.Millisecond

// watch runs the batch once, then again whenever the manifest or one of
// the source maps it names changes, until ctx is cancelled. A manifest
// change reloads the manifest; a source change only clears the cache.
func watch(ctx context.Context, o options, stdout io.Writer) error {
	log := texconv.Logger()

	manifest, err := filepath.Abs(o.manifest)
	if err != nil {
		return err
	}
	o.manifest = manifest

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer func() { _ = w.Close() }()

	watched := make(map[string]bool)
	add := func(dir string) {
		if watched[dir] {
			return
		}
		if err := w.Add(dir); err != nil {
			log.Warn("watch: cannot watch directory", "dir", dir, "err", err)
			return
		}
		watched[dir] = true
	}
	add(filepath.Dir(manifest))

	var (
		j   *job
		src *imageio.FileSource
	)
	rerun := func(reload bool) {
		if reload || j == nil {
			nj, err := loadJob(o)
			if err != nil {
				_, _ = fmt.Fprintln(stdout, "texconv:", err)
				return
			}
			j, src = nj, nj.source()
			for _, dir := range j.sourceDirs() {
				add(dir)
			}
		} else {
			src.Reset()
		}
		if err := j.run(ctx, src, stdout); err != nil && !errors.Is(err, errFailed) && ctx.Err() == nil {
			_, _ = fmt.Fprintln(stdout, "texconv:", err)
		}
	}

	rerun(true)
	_, _ = fmt.Fprintf(stdout, "watching %s for changes\n", filepath.Dir(manifest))

	var pending <-chan time.Time
	reload := false
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove) {
				continue
			}
			switch {
			case ev.Name == manifest:
				reload = true
			case j != nil && j.uses(ev.Name):
			default:
				continue
			}
			log.Debug("watch: change", "path", ev.Name, "op", ev.Op.String())
			pending = time.After(watchDebounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch: error", "err", err)

		case <-pending:
			pending = nil
			rerun(reload)
			reload = false
		}
	}
}

// sourceDirs returns the directories holding the job's source maps.
func (j *job) sourceDirs() []string {
	dirs := []string{j.manifest.SourceDir}
	for _, name := range config.SourceNames(j.items) {
		dir := filepath.Dir(j.sourcePath(name))
		if dir != j.manifest.SourceDir {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

func (j *job) sourcePath(name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(j.manifest.SourceDir, name)
}

// uses reports whether path is one of the job's source maps, matching
// names given without an extension by their stem.
func (j *job) uses(path string) bool {
	stem := strings.TrimSuffix(path, filepath.Ext(path))
	for _, name := range config.SourceNames(j.items) {
		p := j.sourcePath(name)
		if p == path || p == stem {
			return true
		}
	}
	return false
}

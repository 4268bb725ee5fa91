// Command texconv converts PBR material maps into engine texture sets.
//
// Usage:
//
//	texconv -manifest batch.toml [-mode phong] [-out dir] [-format tga] [-watch]
//	texconv -recipe -mode phong
//
// The manifest lists the materials to convert; see package config for its
// format. Flags override the matching manifest settings.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/gogpu/texconv"
	"github.com/gogpu/texconv/config"
	"github.com/gogpu/texconv/imageio"
	"github.com/gogpu/texconv/synth"
)

// errFailed reports that at least one item failed; the details have been
// printed already.
var errFailed = errors.New("conversion failed")

type options struct {
	manifest string
	mode     string
	out      string
	format   string
	workers  int
	cacheMB  int
	watch    bool
	recipe   bool
	verbose  bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, "texconv:", err)
		}
		stop()
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("texconv", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.manifest, "manifest", "", "batch manifest (.toml, .yaml or .yml)")
	fs.StringVar(&o.mode, "mode", "", "conversion mode: pbr or phong (overrides the manifest)")
	fs.StringVar(&o.out, "out", "", "output directory (overrides the manifest)")
	fs.StringVar(&o.format, "format", "", "output format: tga, tga-raw, png, bmp, tiff or jpeg")
	fs.IntVar(&o.workers, "workers", 0, "items converted in parallel (default: manifest, then CPU count)")
	fs.IntVar(&o.cacheMB, "cache-mb", 0, "memory for decoded source maps in MiB (default: manifest, then unlimited)")
	fs.BoolVar(&o.watch, "watch", false, "re-run the batch when sources or the manifest change")
	fs.BoolVar(&o.recipe, "recipe", false, "print the material settings for -mode and exit")
	fs.BoolVar(&o.verbose, "v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.manifest == "" && !o.recipe {
		fs.Usage()
		return o, errors.New("-manifest is required")
	}
	return o, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	texconv.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	if o.recipe {
		return printRecipe(stdout, o.mode)
	}

	if o.watch {
		return watch(ctx, o, stdout)
	}
	_, err = convert(ctx, o, stdout)
	return err
}

func printRecipe(w io.Writer, modeName string) error {
	mode := synth.ModePBR
	if modeName != "" {
		var err error
		if mode, err = synth.ParseMode(modeName); err != nil {
			return err
		}
	}
	for _, line := range synth.Recipe(mode) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// job is a loaded manifest with the command-line overrides applied.
type job struct {
	manifest *config.Manifest
	mode     synth.Mode
	format   imageio.Format
	workers  int
	cacheMB  int
	outDir   string
	items    []synth.Item
}

func loadJob(o options) (*job, error) {
	m, err := config.Load(o.manifest)
	if err != nil {
		return nil, err
	}
	if o.mode != "" {
		m.Mode = o.mode
	}
	if o.format != "" {
		m.Format = o.format
	}

	j := &job{manifest: m, outDir: m.OutputDir, workers: m.Workers, cacheMB: m.CacheMB}
	if o.cacheMB > 0 {
		j.cacheMB = o.cacheMB
	}
	if o.out != "" {
		j.outDir = o.out
	}
	if o.workers > 0 {
		j.workers = o.workers
	}
	if j.workers <= 0 {
		j.workers = runtime.NumCPU()
	}
	if j.mode, err = m.RunMode(); err != nil {
		return nil, err
	}
	if j.format, err = m.OutputFormat(); err != nil {
		return nil, err
	}
	if j.items, err = m.Items(); err != nil {
		return nil, err
	}
	return j, nil
}

// convert loads the manifest and runs one batch. The returned job is nil
// when the manifest could not be loaded.
func convert(ctx context.Context, o options, stdout io.Writer) (*job, error) {
	j, err := loadJob(o)
	if err != nil {
		return nil, err
	}
	return j, j.run(ctx, j.source(), stdout)
}

func (j *job) source() *imageio.FileSource {
	return imageio.NewFileSource(j.manifest.SourceDir, imageio.WithCacheBudget(int64(j.cacheMB)<<20))
}

func (j *job) run(ctx context.Context, src *imageio.FileSource, stdout io.Writer) error {
	log := texconv.Logger()
	if err := src.Preload(ctx, config.SourceNames(j.items), j.workers); err != nil {
		// Missing maps are reported again, per item, by the batch.
		log.Debug("texconv: preload incomplete", "err", err)
	}

	res := synth.Batch(ctx, j.mode, j.items, src, synth.BatchOptions{
		Workers: j.workers,
		Sink:    imageio.Sink(j.outDir, j.format),
	})
	report(stdout, res)
	if len(res.Failed) > 0 {
		return errFailed
	}
	return ctx.Err()
}

package synth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/texconv"
	"github.com/gogpu/texconv/internal/parallel"
)

// Sink receives the outputs of each successful conversion. It is called
// from worker goroutines and must be safe for concurrent use. An error from
// the sink marks the item as failed.
type Sink func(ctx context.Context, res *Result) error

// BatchOptions configures Batch.
type BatchOptions struct {
	// Workers bounds the number of concurrent conversions.
	// Zero or negative uses GOMAXPROCS.
	Workers int

	// Sink, when set, receives every result as soon as it is ready and
	// results are not kept in the BatchResult.
	Sink Sink
}

// BatchResult summarises a batch run.
type BatchResult struct {
	Total     int
	Converted []string
	Failed    []*ItemError
	// Results holds the outputs of converted items when no Sink was given,
	// in item order.
	Results  []*Result
	Duration time.Duration
}

// Err joins the failures of every item, or returns nil.
func (r *BatchResult) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}
	errs := make([]error, len(r.Failed))
	for i, f := range r.Failed {
		errs[i] = f
	}
	return errors.Join(errs...)
}

// Summary returns a one-line report such as "Converted 3/4 items".
func (r *BatchResult) Summary() string {
	return fmt.Sprintf("Converted %d/%d items", len(r.Converted), r.Total)
}

// Batch converts every item with the given mode. A failing item does not
// stop the others; its error is reported in BatchResult.Failed with the
// item name attached. src is shared by all workers.
func Batch(ctx context.Context, mode Mode, items []Item, src Source, opts BatchOptions) *BatchResult {
	start := time.Now()
	log := texconv.Logger()

	pool := parallel.NewWorkerPool(min(opts.Workers, len(items)))
	defer pool.Close()

	results := make([]*Result, len(items))
	errs := pool.Run(ctx, len(items), func(ctx context.Context, i int) error {
		res, err := Convert(mode, items[i], src)
		if err != nil {
			return err
		}
		if opts.Sink != nil {
			return opts.Sink(ctx, res)
		}
		results[i] = res
		return nil
	})

	br := &BatchResult{Total: len(items)}
	for i, err := range errs {
		name := items[i].Name
		if err != nil {
			log.Warn("conversion failed", "item", name, "mode", mode, "err", err)
			br.Failed = append(br.Failed, &ItemError{Item: name, Err: err})
			continue
		}
		br.Converted = append(br.Converted, name)
		if results[i] != nil {
			br.Results = append(br.Results, results[i])
		}
	}
	br.Duration = time.Since(start)
	log.Info(br.Summary(), "mode", mode, "failed", len(br.Failed), "duration", br.Duration)
	return br
}

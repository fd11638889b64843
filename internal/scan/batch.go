package scan

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pixeltally/pixeltally/internal/classify"
	"github.com/pixeltally/pixeltally/internal/imgio"
	"github.com/pixeltally/pixeltally/internal/model"
)

// Loader decodes one image file. It exists as a type so tests can substitute
// an in-memory loader for the real decoder.
type Loader func(path string) (*model.Pixels, error)

// Outcome is the per-file unit of work: either a result or a failure.
// Exactly one of Result and Err is set.
type Outcome struct {
	// Index is the position of the file in the discovered list.
	Index int

	// Path is the file the outcome belongs to.
	Path string

	// Result is the counting result on success.
	Result *model.FileResult

	// Err is the load or decode failure on failure.
	Err error
}

// Batch runs the load-classify-accumulate loop over a list of files.
//
// Design decision: Workers only decode and classify; accumulation and the
// outcome callback always happen on a single goroutine in discovery order.
// With the default of one worker the batch is strictly sequential, and with
// more workers the emitted output and the grand totals are identical to the
// sequential run.
type Batch struct {
	// threshold is the 8-bit whiteness threshold.
	threshold int

	// jobs is the number of concurrent decode workers.
	jobs int

	// loader decodes a file into a raster.
	loader Loader

	// logger is used for per-file structured logging.
	logger *slog.Logger
}

// Option configures a Batch.
type Option func(*Batch)

// WithJobs sets the number of concurrent decode workers. Values below one
// are ignored; the default of one processes files strictly sequentially.
func WithJobs(n int) Option {
	return func(b *Batch) {
		if n > 0 {
			b.jobs = n
		}
	}
}

// WithLogger sets a custom logger for the batch.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Batch) {
		b.logger = logger
	}
}

// WithLoader replaces the image loader. Tests use this to feed in-memory
// rasters through the batch without touching the filesystem.
func WithLoader(loader Loader) Option {
	return func(b *Batch) {
		b.loader = loader
	}
}

// New creates a Batch for the given threshold.
func New(threshold int, opts ...Option) *Batch {
	b := &Batch{
		threshold: threshold,
		jobs:      1,
		loader:    imgio.Load,
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.logger == nil {
		b.logger = slog.Default()
	}

	return b
}

// Run processes the files and returns the accumulated summary.
//
// The callback receives every outcome, success or failure, in discovery
// order. Failures are excluded from the totals and counted in the summary;
// they never stop the batch. Cancellation stops the batch between files and
// returns the context error together with the partial summary.
func (b *Batch) Run(ctx context.Context, files []string, callback func(Outcome)) (*model.RunSummary, error) {
	b.logger.Info("starting batch",
		"total_files", len(files),
		"threshold", b.threshold,
		"jobs", b.jobs,
	)
	startTime := time.Now()

	summary := model.NewRunSummary(b.threshold)

	var err error
	if b.jobs <= 1 {
		err = b.runSequential(ctx, files, summary, callback)
	} else {
		err = b.runConcurrent(ctx, files, summary, callback)
	}

	b.logger.Info("batch complete",
		"processed", summary.FileCount(),
		"failed", summary.Failed,
		"elapsed", time.Since(startTime),
	)
	return summary, err
}

// runSequential is the spec's default mode: one file at a time in order,
// streaming each outcome as it is produced.
func (b *Batch) runSequential(ctx context.Context, files []string, summary *model.RunSummary, callback func(Outcome)) error {
	for i, path := range files {
		select {
		case <-ctx.Done():
			b.logger.Warn("batch cancelled", "file", path, "reason", ctx.Err())
			return ctx.Err()
		default:
		}

		b.emit(b.process(i, path), summary, callback)
	}
	return nil
}

// runConcurrent decodes with a bounded worker pool, then emits all outcomes
// in discovery order.
func (b *Batch) runConcurrent(ctx context.Context, files []string, summary *model.RunSummary, callback func(Outcome)) error {
	outcomes := make([]Outcome, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.jobs)

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			// Distinct indexes, no mutex needed.
			outcomes[i] = b.process(i, path)
			return nil
		})
	}

	err := g.Wait()

	for _, o := range outcomes {
		if o.Path == "" {
			// Never processed before cancellation.
			continue
		}
		b.emit(o, summary, callback)
	}
	return err
}

// process loads and classifies a single file.
func (b *Batch) process(index int, path string) Outcome {
	b.logger.Debug("processing file", "file", path, "index", index+1)

	p, err := b.loader(path)
	if err != nil {
		return Outcome{Index: index, Path: path, Err: fmt.Errorf("failed to process %s: %w", path, err)}
	}

	res := classify.Count(p, b.threshold)
	fr := model.NewFileResult(path, res.Nonwhite, res.Total, res.BitDepth)
	return Outcome{Index: index, Path: path, Result: &fr}
}

// emit folds one outcome into the accumulator and forwards it.
func (b *Batch) emit(o Outcome, summary *model.RunSummary, callback func(Outcome)) {
	if o.Err != nil {
		summary.AddFailure()
		b.logger.Warn("file skipped", "file", o.Path, "error", o.Err)
	} else {
		summary.Add(*o.Result)
	}
	if callback != nil {
		callback(o)
	}
}

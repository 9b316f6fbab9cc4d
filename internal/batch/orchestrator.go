package batch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"scopecli/internal/classification"
	"scopecli/internal/config"
	"scopecli/internal/dataprocessing"
	apperrors "scopecli/internal/errors"
	"scopecli/internal/exporter"
	"scopecli/internal/files"
	"scopecli/internal/infrastructure"
)

const chartExt = ".png"

// Options configures an Orchestrator
type Options struct {
	Workers       int
	Encoding      string
	Detector      dataprocessing.DetectorOptions
	NormalizedCSV bool
	Groups        bool // family comparison charts in RenderGroups
	FilterSets    bool // filter-set comparison charts in RenderGroups

	Renderer Renderer
	Files    *files.Manager
	Tracer   trace.Tracer
	Metrics  *infrastructure.PipelineMetrics
	Logger   *slog.Logger
	Progress ProgressFunc
}

// OptionsFromConfig fills the pipeline settings of Options from cfg
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Workers:       cfg.Batch.Workers,
		Encoding:      cfg.Batch.Encoding,
		Detector:      dataprocessing.DetectorOptions{StrictChannelField: cfg.Batch.StrictChannelField},
		NormalizedCSV: cfg.Batch.NormalizedCSV,
		Groups:        cfg.Batch.Groups,
		FilterSets:    cfg.Batch.FilterSets,
	}
}

// Orchestrator processes capture files concurrently
type Orchestrator struct {
	opts   Options
	csv    *exporter.CSVWriter
	tracer tracer
	logger *slog.Logger
}

// New creates an Orchestrator. Renderer and Files are required.
func New(opts Options) *Orchestrator {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.Encoding == "" {
		opts.Encoding = dataprocessing.EncodingAuto
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		opts:   opts,
		csv:    exporter.NewCSVWriter(false),
		tracer: newTracer(opts.Tracer),
		logger: infrastructure.WithComponent(logger, "batch"),
	}
}

// Run processes every path and reduces the outcomes into a Result.
// Per-file failures are recorded, not returned; the only error is the
// context's when the run is cancelled. Runs on one Orchestrator must not
// overlap.
func (o *Orchestrator) Run(ctx context.Context, paths []string) (*Result, error) {
	start := time.Now()
	ctx = infrastructure.EnsureRunID(ctx)
	ctx, _ = o.tracer.traceRun(ctx, len(paths), o.opts.Workers)

	o.logger.InfoContext(ctx, "Batch started",
		slog.Int("files", len(paths)),
		slog.Int("workers", o.opts.Workers))

	results := make([]FileResult, len(paths))
	progress := NewProgressTracker(len(paths), o.opts.Progress)
	claims := newOutputClaims()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.opts.Workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = o.processFile(gctx, claims, i, path)
			progress.Done(results[i].Name, results[i].Err)
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		o.logger.WarnContext(ctx, "Batch cancelled",
			slog.Int("finished", progress.Current()),
			slog.Int("files", len(paths)))
		endSpan(ctx, err)
		return nil, err
	}

	res := o.reduce(ctx, results)
	res.Duration = time.Since(start)

	o.logger.InfoContext(ctx, "Batch completed",
		slog.Int("total", res.Total),
		slog.Int("succeeded", res.SuccessCount()),
		slog.Int("failed", len(res.Failed)),
		slog.Duration("duration", res.Duration))
	endSpan(ctx, nil)
	return res, nil
}

func (o *Orchestrator) processFile(ctx context.Context, claims *outputClaims, index int, path string) FileResult {
	start := time.Now()
	ctx, _ = o.tracer.traceFile(ctx, path)

	res := FileResult{
		Path: path,
		Name: filepath.Base(path),
		Stem: classification.Stem(path),
	}
	res.Classification = classification.Classify(res.Stem)
	res.Output = res.Classification.OutputName() + chartExt

	logger := o.logger.With(slog.String("file", res.Name))
	res.Err = o.process(ctx, claims, index, &res, logger)
	res.Duration = time.Since(start)

	o.opts.Metrics.RecordFile(ctx, res.ErrorType(), res.Trace.Len(), discarded(res.Trace), res.Duration)
	if res.Err != nil {
		infrastructure.WithError(logger, res.Err).WarnContext(ctx, "Capture failed",
			slog.String("error_type", res.ErrorType()))
	} else {
		logger.InfoContext(ctx, "Capture processed",
			slog.String("layout", res.Format.Layout.String()),
			slog.Int("samples", res.Trace.Len()),
			slog.Int("discarded", res.Trace.Discarded),
			slog.String("output", res.Output))
	}
	endSpan(ctx, res.Err)
	return res
}

func (o *Orchestrator) process(ctx context.Context, claims *outputClaims, index int, res *FileResult, logger *slog.Logger) error {
	raw, err := dataprocessing.ReadCapture(res.Path, o.opts.Encoding)
	if err != nil {
		return err
	}

	fd, normalized, err := dataprocessing.ParseCapture(raw, dataprocessing.ParseOptions{
		Detector: o.opts.Detector,
		Logger:   logger,
	})
	res.Format = fd
	if err != nil {
		return err
	}
	res.Trace = normalized
	res.Stats = dataprocessing.Summarize(normalized)

	if err := ctx.Err(); err != nil {
		return err
	}

	title := res.Classification.Title()
	written, err := claims.write(res.Output, index, func() error {
		return o.writeChart(res.Output, func(w io.Writer) error {
			return o.opts.Renderer.RenderTrace(w, normalized, title)
		})
	})
	if err != nil {
		return err
	}
	if written {
		o.opts.Metrics.RecordChart(ctx, "trace")
	} else {
		logger.DebugContext(ctx, "Chart superseded by a later file", slog.String("output", res.Output))
	}

	if o.opts.NormalizedCSV {
		name := res.Classification.OutputName() + ".csv"
		if _, err := claims.write(name, index, func() error {
			return o.opts.Files.WriteFileAtomic(name, func(w io.Writer) error {
				return o.csv.WriteTrace(w, normalized)
			})
		}); err != nil {
			return asExportError(err, name)
		}
	}
	return nil
}

// writeChart writes a chart atomically. Render errors keep their type;
// anything else is a storage failure.
func (o *Orchestrator) writeChart(name string, render func(w io.Writer) error) error {
	err := o.opts.Files.WriteFileAtomic(name, render)
	if err == nil {
		return nil
	}
	if apperrors.TypeOf(err) == apperrors.ErrTypeRender {
		return err
	}
	return apperrors.NewStorageError("failed to write chart", err).WithContext("output", name)
}

func asExportError(err error, name string) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.NewExportError("failed to write normalized csv", err).WithContext("output", name)
}

// reduce splits results into successes and failures, preserving input
// order, and reports output names claimed by more than one file.
func (o *Orchestrator) reduce(ctx context.Context, results []FileResult) *Result {
	res := &Result{Total: len(results)}
	owners := make(map[string][]string)

	for _, r := range results {
		if r.OK() {
			res.Succeeded = append(res.Succeeded, r)
			owners[r.Output] = append(owners[r.Output], r.Name)
		} else {
			res.Failed = append(res.Failed, r)
		}
	}

	for _, r := range res.Succeeded {
		names := owners[r.Output]
		if len(names) == 0 {
			continue
		}
		if len(names) > 1 {
			o.logger.WarnContext(ctx, "Duplicate output name",
				slog.String("output", r.Output),
				slog.Any("files", names),
				slog.String("kept", names[len(names)-1]))
		}
		res.Charts = append(res.Charts, r.Output)
		delete(owners, r.Output)
	}
	return res
}

func discarded(t *dataprocessing.NormalizedTrace) int {
	if t == nil {
		return 0
	}
	return t.Discarded
}

// outputClaims serializes writes to the same output name so that the file
// with the highest input index wins, matching a sequential run.
type outputClaims struct {
	mu     sync.Mutex
	locks  map[string]*sync.Mutex
	writer map[string]int
}

func newOutputClaims() *outputClaims {
	return &outputClaims{
		locks:  make(map[string]*sync.Mutex),
		writer: make(map[string]int),
	}
}

func (c *outputClaims) lock(name string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.locks[name]
	if !ok {
		l = &sync.Mutex{}
		c.locks[name] = l
	}
	return l
}

// write runs fn unless a file with a higher index already wrote name.
func (c *outputClaims) write(name string, index int, fn func() error) (bool, error) {
	l := c.lock(name)
	l.Lock()
	defer l.Unlock()

	c.mu.Lock()
	prev, ok := c.writer[name]
	c.mu.Unlock()
	if ok && prev > index {
		return false, nil
	}

	if err := fn(); err != nil {
		return false, err
	}

	c.mu.Lock()
	c.writer[name] = index
	c.mu.Unlock()
	return true, nil
}

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
	"path/filepath"
	"strings"
	"time"

	"scopecli/internal/batch"
	"scopecli/internal/config"
	"scopecli/internal/exporter"
	"scopecli/internal/files"
	"scopecli/internal/infrastructure"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// cliFlags holds command line overrides. Only flags the user set are applied.
type cliFlags struct {
	configPath string
	inDir      string
	outDir     string
	workers    int
	groups     bool
	filterSets bool
	strict     bool
	csv        bool
	summary    string
	metrics    string
	version    bool
}

func parseFlags(args []string, stderr io.Writer) (*cliFlags, map[string]bool, error) {
	f := &cliFlags{}
	fs := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.configPath, "config", "", "path to a YAML config file (defaults to scopeplot.yaml or configs/scopeplot.yaml)")
	fs.StringVar(&f.inDir, "in", "", "input directory containing capture files")
	fs.StringVar(&f.outDir, "out", "", "output directory for charts and reports")
	fs.IntVar(&f.workers, "workers", 0, "number of files processed concurrently")
	fs.BoolVar(&f.groups, "groups", false, "render family comparison charts")
	fs.BoolVar(&f.filterSets, "filter-sets", false, "render filter-set comparison charts")
	fs.BoolVar(&f.strict, "strict", false, "require an exact channel field in three-column headers")
	fs.BoolVar(&f.csv, "csv", false, "also write the normalized series of each capture as CSV")
	fs.StringVar(&f.summary, "summary", "", "summary workbook file name inside the output directory (empty disables)")
	fs.StringVar(&f.metrics, "metrics", "", "write Prometheus metrics to this textfile after the run")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	set := make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	return f, set, nil
}

// applyFlags overlays explicitly set flags onto cfg
func applyFlags(cfg *config.Config, f *cliFlags, set map[string]bool) {
	if set["in"] {
		cfg.Paths.InputDir = f.inDir
	}
	if set["out"] {
		cfg.Paths.OutputDir = f.outDir
	}
	if set["workers"] {
		cfg.Batch.Workers = f.workers
	}
	if set["groups"] {
		cfg.Batch.Groups = f.groups
	}
	if set["filter-sets"] {
		cfg.Batch.FilterSets = f.filterSets
	}
	if set["strict"] {
		cfg.Batch.StrictChannelField = f.strict
	}
	if set["csv"] {
		cfg.Batch.NormalizedCSV = f.csv
	}
	if set["summary"] {
		cfg.Export.SummaryWorkbook = f.summary
	}
	if set["metrics"] {
		cfg.Telemetry.MetricsTextfile = f.metrics
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags, set, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 2
	}
	if flags.version {
		fmt.Fprintf(stdout, "%s %s\n", config.AppName, config.AppVersion)
		return 0
	}

	cfg, err := config.Load(flags.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return 1
	}
	applyFlags(cfg, flags, set)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Invalid configuration: %v\n", err)
		return 1
	}

	paths, err := config.ResolvePaths(cfg.Paths, "")
	if err != nil {
		fmt.Fprintf(stderr, "Failed to resolve paths: %v\n", err)
		return 1
	}
	if err := paths.EnsureDirectories(); err != nil {
		fmt.Fprintf(stderr, "Failed to create required directories: %v\n", err)
		return 1
	}
	if cfg.Logging.Output != "console" && !filepath.IsAbs(cfg.Logging.FilePath) {
		cfg.Logging.FilePath = filepath.Join(paths.BaseDir, cfg.Logging.FilePath)
	}

	logger, closeLog, err := infrastructure.OpenLogger(cfg.Logging, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to initialize logger, using default: %v\n", err)
		logger, closeLog = slog.Default(), func() error { return nil }
	}
	defer closeLog()
	paths.LogPathResolution()

	ctx = infrastructure.EnsureRunID(ctx)
	logger.InfoContext(ctx, "Starting capture batch",
		slog.String("version", config.AppVersion),
		slog.String("input_dir", paths.InputDir),
		slog.String("output_dir", paths.OutputDir),
		slog.Int("workers", cfg.Batch.Workers))

	tel, err := infrastructure.InitializeTelemetry(cfg.Telemetry, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to initialize telemetry: %v\n", err)
		return 1
	}
	defer func() {
		if err := tel.Shutdown(context.Background()); err != nil {
			logger.Warn("Telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	found, err := files.NewDiscovery(paths.BaseDir).FindCaptureFiles(paths.InputDir, paths.Pattern)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to list capture files: %v\n", err)
		return 1
	}
	if len(found) == 0 {
		fmt.Fprintf(stdout, "No capture files matching %q in %s\n", paths.Pattern, paths.InputDir)
		return 0
	}
	fmt.Fprintf(stdout, "Found %d capture files in %s\n", len(found), paths.InputDir)

	opts := batch.OptionsFromConfig(cfg)
	opts.Renderer = exporter.NewChartRenderer(exporter.StyleFromConfig(cfg.Render))
	opts.Files = files.NewManager(paths.OutputDir, logger)
	opts.Tracer = tel.Tracer
	opts.Metrics = tel.Metrics
	opts.Logger = logger
	opts.Progress = func(e batch.ProgressEvent) {
		status := "ok"
		if e.Err != nil {
			status = "FAILED"
		}
		fmt.Fprintf(stdout, "[%d/%d] %s: %s\n", e.Current, e.Total, e.File, status)
	}
	orch := batch.New(opts)

	res, err := orch.Run(ctx, files.Paths(found))
	if err != nil {
		fmt.Fprintf(stderr, "Batch aborted: %v\n", err)
		return 1
	}

	if cfg.Batch.Groups || cfg.Batch.FilterSets {
		written, err := orch.RenderGroups(ctx, res)
		for _, name := range written {
			fmt.Fprintf(stdout, "Comparison chart: %s\n", name)
		}
		if err != nil {
			logger.WarnContext(ctx, "Some comparison charts failed", slog.String("error", err.Error()))
		}
	}

	if name := cfg.Export.SummaryWorkbook; name != "" {
		if err := orch.WriteSummary(res, name); err != nil {
			logger.WarnContext(ctx, "Summary workbook failed", slog.String("error", err.Error()))
		} else {
			fmt.Fprintf(stdout, "Summary workbook: %s\n", paths.OutputFile(name))
		}
	}

	if path := cfg.Telemetry.MetricsTextfile; path != "" {
		if !filepath.IsAbs(path) {
			path = filepath.Join(paths.BaseDir, path)
		}
		if err := tel.WriteMetrics(path); err != nil {
			logger.WarnContext(ctx, "Metrics textfile failed", slog.String("error", err.Error()))
		}
	}

	printSummary(stdout, res)
	return 0
}

func printSummary(w io.Writer, res *batch.Result) {
	fmt.Fprintln(w, strings.Repeat("=", 40))
	fmt.Fprintf(w, "Total files: %d\n", res.Total)
	fmt.Fprintf(w, "Succeeded:   %d\n", res.SuccessCount())
	fmt.Fprintf(w, "Failed:      %d\n", len(res.Failed))
	for _, f := range res.Failed {
		fmt.Fprintf(w, "  - %s (%s)\n", f.Name, f.ErrorType())
	}
	fmt.Fprintf(w, "Duration:    %s\n", res.Duration.Round(time.Millisecond))
}

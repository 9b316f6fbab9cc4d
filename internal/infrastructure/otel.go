package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"scopecli/internal/config"
)

const (
	ServiceName         = "scopeplot"
	InstrumentationName = "scopecli"
)

// Telemetry holds the tracer and meter used by a run. Metrics are always
// collected into a private Prometheus registry; tracing is optional.
type Telemetry struct {
	TracerProvider *sdktrace.TracerProvider // nil when tracing is disabled
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	Registry       *prom.Registry
	Metrics        *PipelineMetrics
	logger         *slog.Logger
}

type telemetryOptions struct {
	traceWriter io.Writer
}

// TelemetryOption customizes InitializeTelemetry
type TelemetryOption func(*telemetryOptions)

// WithTraceWriter sends stdout-exported spans to w instead of os.Stderr
func WithTraceWriter(w io.Writer) TelemetryOption {
	return func(o *telemetryOptions) { o.traceWriter = w }
}

// InitializeTelemetry sets up tracing and metrics for a batch run
func InitializeTelemetry(cfg config.TelemetryConfig, logger *slog.Logger, opts ...TelemetryOption) (*Telemetry, error) {
	if logger == nil {
		logger = slog.Default()
	}
	o := telemetryOptions{traceWriter: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(config.AppVersion),
	)

	t := &Telemetry{logger: logger}

	if err := t.initializeTracing(cfg, res, o); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	if err := t.initializeMetrics(res); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	logger.Debug("Telemetry initialized",
		slog.Bool("tracing_enabled", t.TracerProvider != nil),
		slog.String("trace_exporter", cfg.TraceExporter))

	return t, nil
}

func (t *Telemetry) initializeTracing(cfg config.TelemetryConfig, res *resource.Resource, o telemetryOptions) error {
	if !cfg.Tracing || cfg.TraceExporter == "none" || cfg.TraceExporter == "" {
		t.Tracer = noop.NewTracerProvider().Tracer(InstrumentationName)
		return nil
	}

	var exporter sdktrace.SpanExporter
	var err error
	switch cfg.TraceExporter {
	case "stdout":
		exporter, err = stdouttrace.New(stdouttrace.WithWriter(o.traceWriter))
	default:
		return fmt.Errorf("unsupported trace exporter: %s", cfg.TraceExporter)
	}
	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	// Spans are exported synchronously; a batch run is short-lived.
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(res),
	)
	t.TracerProvider = tp
	t.Tracer = tp.Tracer(InstrumentationName, trace.WithInstrumentationVersion(config.AppVersion))
	return nil
}

func (t *Telemetry) initializeMetrics(res *resource.Resource) error {
	t.Registry = prom.NewRegistry()
	// Go runtime and process stats ride along in the textfile.
	t.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	exporter, err := prometheus.New(
		prometheus.WithRegisterer(t.Registry),
		prometheus.WithoutTargetInfo(),
	)
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	t.MeterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)
	t.Meter = t.MeterProvider.Meter(InstrumentationName, metric.WithInstrumentationVersion(config.AppVersion))

	t.Metrics, err = NewPipelineMetrics(t.Meter)
	return err
}

// WriteMetrics writes the current metric values to path in the Prometheus
// text format, replacing the file atomically.
func (t *Telemetry) WriteMetrics(path string) error {
	if err := prom.WriteToTextfile(path, t.Registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile %s: %w", path, err)
	}
	t.logger.Debug("Metrics written", slog.String("path", path))
	return nil
}

// Shutdown flushes and stops the providers
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error

	if t.TracerProvider != nil {
		if err := t.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}
	if t.MeterProvider != nil {
		if err := t.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("telemetry shutdown errors: %v", errs)
	}
	return nil
}

// PipelineMetrics are the instruments recorded while processing captures
type PipelineMetrics struct {
	FilesProcessed metric.Int64Counter
	SamplesParsed  metric.Int64Counter
	RowsDiscarded  metric.Int64Counter
	ChartsRendered metric.Int64Counter
	FileDuration   metric.Float64Histogram
}

// NewPipelineMetrics creates the pipeline instruments on meter
func NewPipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	filesProcessed, err := meter.Int64Counter(
		"scope_files_processed",
		metric.WithDescription("Capture files processed, by status"),
	)
	if err != nil {
		return nil, err
	}

	samplesParsed, err := meter.Int64Counter(
		"scope_samples_parsed",
		metric.WithDescription("Samples kept after cleaning"),
	)
	if err != nil {
		return nil, err
	}

	rowsDiscarded, err := meter.Int64Counter(
		"scope_rows_discarded",
		metric.WithDescription("Data rows dropped during cleaning"),
	)
	if err != nil {
		return nil, err
	}

	chartsRendered, err := meter.Int64Counter(
		"scope_charts_rendered",
		metric.WithDescription("Charts written, by kind"),
	)
	if err != nil {
		return nil, err
	}

	fileDuration, err := meter.Float64Histogram(
		"scope_file_duration",
		metric.WithDescription("Time spent processing one capture file"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &PipelineMetrics{
		FilesProcessed: filesProcessed,
		SamplesParsed:  samplesParsed,
		RowsDiscarded:  rowsDiscarded,
		ChartsRendered: chartsRendered,
		FileDuration:   fileDuration,
	}, nil
}

// RecordFile records the outcome of one capture file. errType is empty on success.
func (m *PipelineMetrics) RecordFile(ctx context.Context, errType string, samples, discarded int, d time.Duration) {
	if m == nil {
		return
	}
	status := "success"
	if errType != "" {
		status = "failed"
	}
	attrs := metric.WithAttributes(
		attribute.String("status", status),
		attribute.String("error_type", errType),
	)
	m.FilesProcessed.Add(ctx, 1, attrs)
	m.FileDuration.Record(ctx, d.Seconds(), metric.WithAttributes(attribute.String("status", status)))
	if samples > 0 {
		m.SamplesParsed.Add(ctx, int64(samples))
	}
	if discarded > 0 {
		m.RowsDiscarded.Add(ctx, int64(discarded))
	}
}

// RecordChart counts one written chart of the given kind
func (m *PipelineMetrics) RecordChart(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.ChartsRendered.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

// RecordError records an error on the current span
func RecordError(ctx context.Context, err error, options ...trace.EventOption) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.RecordError(err, options...)
	span.SetStatus(codes.Error, err.Error())
}

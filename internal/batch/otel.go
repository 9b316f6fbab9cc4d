package batch

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"scopecli/internal/infrastructure"
)

const (
	spanRun   = "batch.run"
	spanFile  = "batch.file"
	spanGroup = "batch.group"
)

type tracer struct {
	t trace.Tracer
}

func newTracer(t trace.Tracer) tracer {
	if t == nil {
		t = noop.NewTracerProvider().Tracer("")
	}
	return tracer{t: t}
}

func (tr tracer) traceRun(ctx context.Context, files, workers int) (context.Context, trace.Span) {
	return tr.t.Start(ctx, spanRun,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.Int("batch.files", files),
			attribute.Int("batch.workers", workers),
		),
	)
}

func (tr tracer) traceFile(ctx context.Context, path string) (context.Context, trace.Span) {
	return tr.t.Start(ctx, spanFile,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("file.path", path)),
	)
}

func (tr tracer) traceGroup(ctx context.Context, kind, name string, members int) (context.Context, trace.Span) {
	return tr.t.Start(ctx, spanGroup,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("group.kind", kind),
			attribute.String("group.name", name),
			attribute.Int("group.members", members),
		),
	)
}

// endSpan closes the span carried by ctx, marking it failed when err is non-nil
func endSpan(ctx context.Context, err error) {
	span := trace.SpanFromContext(ctx)
	if err != nil {
		infrastructure.RecordError(ctx, err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

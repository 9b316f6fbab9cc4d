package batch

import (
	"io"
	"time"

	"scopecli/internal/classification"
	"scopecli/internal/dataprocessing"
	apperrors "scopecli/internal/errors"
	"scopecli/internal/exporter"
)

// Renderer draws charts. exporter.ChartRenderer is the production implementation.
type Renderer interface {
	RenderTrace(w io.Writer, trace *dataprocessing.NormalizedTrace, title string) error
	RenderComparison(w io.Writer, name string, series []exporter.Series) error
}

// FileResult is the outcome of one capture file
type FileResult struct {
	Path           string
	Name           string
	Stem           string
	Classification classification.Classification
	Output         string // chart file name, relative to the output directory
	Format         dataprocessing.FormatDescriptor
	Trace          *dataprocessing.NormalizedTrace
	Stats          dataprocessing.TraceStats
	Duration       time.Duration
	Err            error
}

// OK reports whether the file was processed without error
func (r FileResult) OK() bool {
	return r.Err == nil
}

// ErrorType returns the failure category, or "" on success
func (r FileResult) ErrorType() string {
	if r.Err == nil {
		return ""
	}
	return string(apperrors.TypeOf(r.Err))
}

// Result is the reduced outcome of a run. Both slices keep input order.
type Result struct {
	Total     int
	Succeeded []FileResult
	Failed    []FileResult
	Charts    []string // every chart written, per-file and group
	Duration  time.Duration
}

// SuccessCount returns the number of files processed successfully
func (r *Result) SuccessCount() int {
	return len(r.Succeeded)
}

// FailedNames returns the base names of the failed files
func (r *Result) FailedNames() []string {
	names := make([]string, len(r.Failed))
	for i, f := range r.Failed {
		names[i] = f.Name
	}
	return names
}

// Stems returns the stems of the successful files
func (r *Result) Stems() []string {
	stems := make([]string, len(r.Succeeded))
	for i, s := range r.Succeeded {
		stems[i] = s.Stem
	}
	return stems
}

package dataprocessing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	apperrors "scopecli/internal/errors"
)

// ErrNoValidRows is returned when cleaning leaves no samples.
var ErrNoValidRows = errors.New("no valid data rows")

// Parser turns the data block of a capture into a NormalizedTrace.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a parser. A nil logger uses slog.Default().
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// Parse reads every row after fd.DataStartRow, drops rows with missing or
// non-numeric fields, averages min/max pairs where the layout has them and
// converts timestamps from nanoseconds to microseconds. Row order is kept.
func (p *Parser) Parse(lines []string, fd FormatDescriptor) (*NormalizedTrace, error) {
	var convert func(record []string) (TracePoint, bool)
	switch fd.Layout {
	case LayoutFiveColumnMinMax:
		convert = minMaxRow
	case LayoutThreeColumnDirect:
		convert = directRow
	default:
		return nil, apperrors.NewParsingError("cannot parse capture with unknown layout", ErrUnknownFormat)
	}

	if fd.DataStartRow <= fd.HeaderRow || fd.DataStartRow < 0 {
		return nil, apperrors.NewParsingError(
			fmt.Sprintf("data start row %d must follow header row %d", fd.DataStartRow, fd.HeaderRow), nil)
	}

	trace := &NormalizedTrace{Layout: fd.Layout}
	for i := fd.DataStartRow; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}
		trace.SourceRows++

		record, ok := splitRow(lines[i])
		if !ok {
			trace.Discarded++
			continue
		}
		point, ok := convert(record)
		if !ok {
			trace.Discarded++
			continue
		}
		trace.Points = append(trace.Points, point)
	}

	if len(trace.Points) == 0 {
		return nil, apperrors.NewParsingError("no rows survived cleaning", ErrNoValidRows).
			WithContext("source_rows", trace.SourceRows).
			WithContext("data_start_row", fd.DataStartRow)
	}

	if !trace.IsMonotonic() {
		p.logger.Warn("Capture timestamps are not monotonic; keeping file order",
			slog.String("layout", fd.Layout.String()))
	}

	p.logger.Debug("Capture parsed",
		slog.String("layout", fd.Layout.String()),
		slog.Int("source_rows", trace.SourceRows),
		slog.Int("samples", len(trace.Points)),
		slog.Int("discarded", trace.Discarded))

	return trace, nil
}

func minMaxRow(record []string) (TracePoint, bool) {
	var v [5]float64
	for i, col := range []int{colTimestamp, colCh1Min, colCh1Max, colCh2Min, colCh2Max} {
		f, ok := numericField(record, col)
		if !ok {
			return TracePoint{}, false
		}
		v[i] = f
	}
	return TracePoint{
		TimestampUS: v[0] / 1000,
		Ch1:         (v[1] + v[2]) / 2,
		Ch2:         (v[3] + v[4]) / 2,
	}, true
}

func directRow(record []string) (TracePoint, bool) {
	var v [3]float64
	for i, col := range []int{colTimestamp, colCh1, colCh2} {
		f, ok := numericField(record, col)
		if !ok {
			return TracePoint{}, false
		}
		v[i] = f
	}
	return TracePoint{
		TimestampUS: v[0] / 1000,
		Ch1:         v[1],
		Ch2:         v[2],
	}, true
}

// splitRow reads one data line as a single CSV record. A malformed line
// only fails itself.
func splitRow(line string) ([]string, bool) {
	r := csv.NewReader(strings.NewReader(line))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	record, err := r.Read()
	if err != nil {
		return nil, false
	}
	if _, err := r.Read(); err != io.EOF {
		return nil, false
	}
	return record, true
}

// numericField parses record[idx] as a finite decimal float. Go literal
// forms such as hex floats and digit separators are rejected.
func numericField(record []string, idx int) (float64, bool) {
	if idx >= len(record) {
		return 0, false
	}
	s := strings.TrimSpace(record[idx])
	if s == "" || strings.ContainsAny(s, "xX_") {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseOptions configures ParseCapture.
type ParseOptions struct {
	Detector DetectorOptions
	Logger   *slog.Logger
}

// ParseCapture runs detection and parsing over one raw capture.
func ParseCapture(raw RawCapture, opts ParseOptions) (FormatDescriptor, *NormalizedTrace, error) {
	fd, err := NewDetector(opts.Detector, opts.Logger).Detect(raw.Lines)
	if err != nil {
		return FormatDescriptor{}, nil, err
	}
	trace, err := NewParser(opts.Logger).Parse(raw.Lines, fd)
	if err != nil {
		return fd, nil, err
	}
	return fd, trace, nil
}

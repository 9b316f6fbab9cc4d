package exporter

import (
	"encoding/csv"
	"fmt"
	"io"

	"scopecli/internal/dataprocessing"
	apperrors "scopecli/internal/errors"
)

// TraceHeaders are the column names of a normalized trace export
var TraceHeaders = []string{"timestamp_us", "ch1_avg", "ch2_avg"}

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	// BOMPrefix adds a UTF-8 BOM so Excel recognizes the encoding
	BOMPrefix bool
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(bom bool) *CSVWriter {
	return &CSVWriter{BOMPrefix: bom}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers []string
	Records [][]string
}

// WriteCSV writes headers and records to out
func (w *CSVWriter) WriteCSV(out io.Writer, options WriteOptions) error {
	sw, err := w.NewStreamWriter(out, options.Headers)
	if err != nil {
		return err
	}
	for i, record := range options.Records {
		if err := sw.WriteRecord(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	return sw.Flush()
}

// WriteTrace writes the normalized series of trace to out, one row per sample
func (w *CSVWriter) WriteTrace(out io.Writer, trace *dataprocessing.NormalizedTrace) error {
	if trace.Len() == 0 {
		return apperrors.NewExportError("cannot export trace", ErrEmptyTrace)
	}

	sw, err := w.NewStreamWriter(out, TraceHeaders)
	if err != nil {
		return apperrors.NewExportError("failed to start trace export", err)
	}

	record := make([]string, 3)
	for _, p := range trace.Points {
		record[0] = formatFloat(p.TimestampUS)
		record[1] = formatFloat(p.Ch1)
		record[2] = formatFloat(p.Ch2)
		if err := sw.WriteRecord(record); err != nil {
			return apperrors.NewExportError("failed to write trace row", err)
		}
	}

	if err := sw.Flush(); err != nil {
		return apperrors.NewExportError("failed to flush trace export", err)
	}
	return nil
}

// StreamWriter provides streaming CSV writing for large datasets
type StreamWriter struct {
	writer *csv.Writer
}

// NewStreamWriter writes the optional BOM and headers and returns a writer for the rows
func (w *CSVWriter) NewStreamWriter(out io.Writer, headers []string) (*StreamWriter, error) {
	if w.BOMPrefix {
		if _, err := out.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return nil, fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(out)
	if len(headers) > 0 {
		if err := writer.Write(headers); err != nil {
			return nil, fmt.Errorf("failed to write headers: %w", err)
		}
	}

	return &StreamWriter{writer: writer}, nil
}

// WriteRecord writes a single record to the stream
func (s *StreamWriter) WriteRecord(record []string) error {
	return s.writer.Write(record)
}

// Flush writes any buffered rows and reports the first write error
func (s *StreamWriter) Flush() error {
	s.writer.Flush()
	return s.writer.Error()
}

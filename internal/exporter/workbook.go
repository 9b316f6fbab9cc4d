package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"scopecli/internal/dataprocessing"
	apperrors "scopecli/internal/errors"
)

// Sheet names of the summary workbook
const (
	SummarySheet = "Summary"
	FailedSheet  = "Failed"
)

// SummaryRow describes one successfully processed capture
type SummaryRow struct {
	File   string
	Signal string
	Filter string
	Layout string
	Output string
	Stats  dataprocessing.TraceStats
}

// FailureRow describes one capture that could not be processed
type FailureRow struct {
	File      string
	ErrorType string
	Message   string
}

var summaryHeaders = []string{
	"File", "Signal", "Filter", "Layout", "Samples", "Discarded",
	"Start (μs)", "End (μs)", "Duration (μs)",
	"Ch1 Min (V)", "Ch1 Max (V)", "Ch1 Mean (V)", "Ch1 Vpp (V)",
	"Ch2 Min (V)", "Ch2 Max (V)", "Ch2 Mean (V)", "Ch2 Vpp (V)",
	"Output",
}

var failedHeaders = []string{"File", "Error Type", "Message"}

// WriteSummaryWorkbook writes an xlsx workbook with a Summary sheet and a
// Failed sheet to out.
func WriteSummaryWorkbook(out io.Writer, rows []SummaryRow, failures []FailureRow) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = apperrors.NewExportError("failed to close workbook", cerr)
		}
	}()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return apperrors.NewExportError("failed to name summary sheet", err)
	}
	if _, err := f.NewSheet(FailedSheet); err != nil {
		return apperrors.NewExportError("failed to add failed sheet", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	})
	if err != nil {
		return apperrors.NewExportError("failed to create header style", err)
	}

	if err := writeSheet(f, SummarySheet, summaryHeaders, headerStyle, len(rows), func(i int) []interface{} {
		r := rows[i]
		s := r.Stats
		return []interface{}{
			r.File, r.Signal, r.Filter, r.Layout, s.Samples, s.Discarded,
			roundTo(s.StartUS, 3), roundTo(s.EndUS, 3), roundTo(s.DurationUS, 3),
			roundTo(s.Ch1.Min, 6), roundTo(s.Ch1.Max, 6), roundTo(s.Ch1.Mean, 6), roundTo(s.Ch1.PeakToPeak(), 6),
			roundTo(s.Ch2.Min, 6), roundTo(s.Ch2.Max, 6), roundTo(s.Ch2.Mean, 6), roundTo(s.Ch2.PeakToPeak(), 6),
			r.Output,
		}
	}); err != nil {
		return err
	}

	if err := writeSheet(f, FailedSheet, failedHeaders, headerStyle, len(failures), func(i int) []interface{} {
		fr := failures[i]
		return []interface{}{fr.File, fr.ErrorType, fr.Message}
	}); err != nil {
		return err
	}

	if err := f.SetColWidth(SummarySheet, "A", "A", 36); err != nil {
		return apperrors.NewExportError("failed to size columns", err)
	}
	if err := f.SetColWidth(FailedSheet, "A", "A", 36); err != nil {
		return apperrors.NewExportError("failed to size columns", err)
	}
	if err := f.SetColWidth(FailedSheet, "C", "C", 80); err != nil {
		return apperrors.NewExportError("failed to size columns", err)
	}

	if err := f.Write(out); err != nil {
		return apperrors.NewExportError("failed to write workbook", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, headers []string, headerStyle, n int, row func(i int) []interface{}) error {
	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return apperrors.NewExportError("failed to write header row", err).WithContext("sheet", sheet)
	}

	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return apperrors.NewExportError("failed to address header row", err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return apperrors.NewExportError("failed to style header row", err).WithContext("sheet", sheet)
	}

	for i := 0; i < n; i++ {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return apperrors.NewExportError("failed to address row", err)
		}
		values := row(i)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return apperrors.NewExportError(fmt.Sprintf("failed to write row %d", i+2), err).WithContext("sheet", sheet)
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return apperrors.NewExportError("failed to freeze header row", err).WithContext("sheet", sheet)
	}
	return nil
}

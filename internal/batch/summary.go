package batch

import (
	"io"
	"log/slog"

	"scopecli/internal/exporter"
)

// SummaryRows converts res into workbook rows, in input order
func SummaryRows(res *Result) ([]exporter.SummaryRow, []exporter.FailureRow) {
	rows := make([]exporter.SummaryRow, len(res.Succeeded))
	for i, r := range res.Succeeded {
		rows[i] = exporter.SummaryRow{
			File:   r.Name,
			Signal: r.Classification.SignalType,
			Filter: r.Classification.FilterType,
			Layout: r.Format.Layout.String(),
			Output: r.Output,
			Stats:  r.Stats,
		}
	}

	failures := make([]exporter.FailureRow, len(res.Failed))
	for i, r := range res.Failed {
		failures[i] = exporter.FailureRow{
			File:      r.Name,
			ErrorType: r.ErrorType(),
			Message:   r.Err.Error(),
		}
	}
	return rows, failures
}

// WriteSummary writes the summary workbook for res to name in the output directory
func (o *Orchestrator) WriteSummary(res *Result, name string) error {
	rows, failures := SummaryRows(res)
	err := o.opts.Files.WriteFileAtomic(name, func(w io.Writer) error {
		return exporter.WriteSummaryWorkbook(w, rows, failures)
	})
	if err != nil {
		return asExportError(err, name)
	}

	o.logger.Info("Summary workbook written",
		slog.String("output", name),
		slog.Int("rows", len(rows)),
		slog.Int("failures", len(failures)))
	return nil
}

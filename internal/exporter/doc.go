// Package exporter turns normalized oscilloscope traces into files.
//
// ChartRenderer draws single-trace and comparison charts as PNG images.
// CSVWriter streams a trace's averaged series as CSV, and
// WriteSummaryWorkbook produces the per-run xlsx report.
//
// Every writer takes an io.Writer; callers decide where the bytes land,
// normally through files.Manager.WriteFileAtomic.
package exporter

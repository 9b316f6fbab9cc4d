// Package batch runs the capture pipeline over a set of files.
//
// An Orchestrator reads, detects, parses, classifies and renders every
// capture on a bounded worker pool. Per-file failures are recorded in the
// Result and never stop the run; only context cancellation aborts it.
// After a run, RenderGroups draws family and filter-set comparison charts
// from the already parsed traces, and WriteSummary exports the xlsx report.
package batch

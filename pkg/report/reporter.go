// Package report provides report generation for benchmark results:
// JSON and HTML renderings of a single run, aggregated master
// summaries across runs, and webhook delivery of results.
package report

import (
	"io"

	"digital.vasic.benchmarks/pkg/benchmark"
)

// Reporter defines the interface for generating benchmark reports.
type Reporter interface {
	// GenerateReport creates a report for a single benchmark
	// result.
	GenerateReport(result *benchmark.Result) ([]byte, error)

	// GenerateMasterSummary creates a summary of all benchmark
	// results.
	GenerateMasterSummary(
		results []*benchmark.Result,
	) ([]byte, error)

	// WriteReport writes a report to the specified writer.
	WriteReport(w io.Writer, result *benchmark.Result) error
}

// Package metrics provides instrumentation for benchmark runs. The
// Metrics interface decouples the runner from the backend; the
// Prometheus implementation exports run, trial, and assertion
// metrics for scraping.
package metrics

import "time"

// Metrics defines the interface for recording benchmark run
// metrics.
type Metrics interface {
	// RecordRun records a completed benchmark run with its final
	// status.
	RecordRun(benchmarkID, status string, duration time.Duration)

	// RecordTrial records one completed measured trial.
	RecordTrial(benchmarkID string, duration time.Duration)

	// RecordAssertion records an assertion verdict.
	RecordAssertion(benchmarkID, counter string, passed bool)

	// SetActiveRuns sets the gauge of currently running
	// benchmarks.
	SetActiveRuns(count int)
}

// NoopMetrics is a no-op implementation of Metrics, useful for
// testing or when metrics collection is disabled.
type NoopMetrics struct{}

func (NoopMetrics) RecordRun(_, _ string, _ time.Duration) {}
func (NoopMetrics) RecordTrial(_ string, _ time.Duration)  {}
func (NoopMetrics) RecordAssertion(_, _ string, _ bool)    {}
func (NoopMetrics) SetActiveRuns(_ int)                    {}

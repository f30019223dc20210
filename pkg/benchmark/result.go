package benchmark

import (
	"time"

	"digital.vasic.benchmarks/pkg/assertion"
	"digital.vasic.benchmarks/pkg/measurement"
)

// Status constants for benchmark run outcomes.
const (
	StatusPending  = "pending"
	StatusRunning  = "running"
	StatusPassed   = "passed"
	StatusFailed   = "failed"
	StatusSkipped  = "skipped"
	StatusStuck    = "stuck"
	StatusTimedOut = "timed_out"
	StatusError    = "error"
)

// Result captures the complete outcome of a benchmark run: timing,
// per-counter trial samples, aggregated statistics, the assertion
// report, metrics, and log paths.
type Result struct {
	// RunID uniquely identifies this run.
	RunID string `json:"run_id"`

	// BenchmarkID is the unique identifier of the benchmark.
	BenchmarkID ID `json:"benchmark_id"`

	// BenchmarkName is the human-readable name.
	BenchmarkName string `json:"benchmark_name"`

	// Status is one of the Status* constants.
	Status string `json:"status"`

	// StartTime is when the run began.
	StartTime time.Time `json:"start_time"`

	// EndTime is when the run finished.
	EndTime time.Time `json:"end_time"`

	// Duration is the wall-clock run time including warmup,
	// setup, and cleanup.
	Duration time.Duration `json:"duration"`

	// Trials is the number of measured trials executed.
	Trials int `json:"trials"`

	// Warmup is the number of unmeasured warmup trials executed.
	Warmup int `json:"warmup"`

	// Samples holds the raw per-trial samples by counter name,
	// in trial order.
	Samples map[string][]measurement.TrialSample `json:"samples,omitempty"`

	// Statistics holds the aggregated per-counter statistics.
	Statistics map[string]measurement.Statistics `json:"statistics,omitempty"`

	// Report holds the evaluated assertion verdicts in
	// declaration order.
	Report assertion.Report `json:"report"`

	// Metrics holds named metric values derived from the run.
	Metrics map[string]MetricValue `json:"metrics,omitempty"`

	// Logs contains paths to log files written during the run.
	Logs LogPaths `json:"logs"`

	// Error contains the error message if the run failed with an
	// unexpected error.
	Error string `json:"error,omitempty"`
}

// MetricValue represents a single named metric with its unit.
type MetricValue struct {
	// Name is the metric identifier.
	Name string `json:"name"`

	// Value is the numeric metric value.
	Value float64 `json:"value"`

	// Unit describes the measurement unit (e.g., "ops/sec",
	// "ops", "ms").
	Unit string `json:"unit"`
}

// LogPaths holds file paths for logs generated during a run.
type LogPaths struct {
	// BenchmarkLog is the main run log.
	BenchmarkLog string `json:"benchmark_log"`

	// TrialLog is the structured per-trial record log (JSONL).
	TrialLog string `json:"trial_log"`
}

// AllPassed returns true if every assertion verdict in the report
// passed. A run with zero assertions passes vacuously.
func (r *Result) AllPassed() bool {
	return r.Report.OverallPass
}

// IsFinal returns true if the status is a terminal state.
func (r *Result) IsFinal() bool {
	switch r.Status {
	case StatusPassed, StatusFailed, StatusSkipped,
		StatusStuck, StatusTimedOut, StatusError:
		return true
	}
	return false
}

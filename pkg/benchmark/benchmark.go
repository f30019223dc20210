// Package benchmark defines the benchmark model: the lifecycle
// interface benchmark authors implement, declarative definitions,
// runtime configuration, and run results. Each benchmark goes
// through a lifecycle: Configure -> Setup -> N trials of RunTrial ->
// Cleanup. The runner owns trial timing, sample collection, and
// assertion evaluation; benchmark code only increments its declared
// counters.
package benchmark

import (
	"context"

	"digital.vasic.benchmarks/pkg/assertion"
	"digital.vasic.benchmarks/pkg/measurement"
)

// ID uniquely identifies a benchmark.
type ID string

// Benchmark defines the interface that all benchmarks must
// implement.
type Benchmark interface {
	// ID returns the unique identifier for this benchmark.
	ID() ID

	// Name returns the human-readable name of this benchmark.
	Name() string

	// Description returns a detailed description of what this
	// benchmark measures.
	Description() string

	// Category returns the category grouping for this benchmark
	// (e.g., "storage", "network", "encoding").
	Category() string

	// Declarations returns the counters this benchmark tracks,
	// in declaration order. The runner creates one fresh counter
	// per declaration per trial.
	Declarations() []measurement.Declaration

	// Assertions returns the threshold assertions to evaluate
	// against the aggregated statistics, in declaration order.
	Assertions() []assertion.Spec

	// Configure applies runtime configuration to the benchmark.
	// Must be called before Setup or RunTrial.
	Configure(config *Config) error

	// Setup prepares any state shared across trials (e.g.,
	// opening connections, seeding data). Called once per run,
	// before warmup.
	Setup(ctx context.Context) error

	// RunTrial executes one timed trial. The benchmark
	// increments counters from the set as it performs
	// operations; the runner owns the trial clock and snapshots
	// the counters when RunTrial returns.
	RunTrial(
		ctx context.Context,
		counters *measurement.CounterSet,
	) error

	// Cleanup releases any resources allocated during Configure,
	// Setup, or trials.
	Cleanup(ctx context.Context) error
}

// Logger defines the minimal logging interface used by benchmarks.
// Implementations should be provided by the logging package.
type Logger interface {
	// Info logs an informational message.
	Info(msg string, args ...any)

	// Warn logs a warning message.
	Warn(msg string, args ...any)

	// Error logs an error message.
	Error(msg string, args ...any)

	// Debug logs a debug-level message.
	Debug(msg string, args ...any)

	// Close flushes and closes the logger.
	Close() error
}

package runner

import (
	"time"

	"digital.vasic.benchmarks/pkg/assertion"
	"digital.vasic.benchmarks/pkg/benchmark"
	"digital.vasic.benchmarks/pkg/metrics"
	"digital.vasic.benchmarks/pkg/monitor"
	"digital.vasic.benchmarks/pkg/registry"
)

// RunnerOption configures a DefaultRunner.
type RunnerOption func(*DefaultRunner)

// WithRegistry sets the benchmark registry used by the runner.
func WithRegistry(reg registry.Registry) RunnerOption {
	return func(r *DefaultRunner) {
		r.registry = reg
	}
}

// WithEngine sets the assertion evaluation engine. Use this to run
// with custom comparators registered.
func WithEngine(engine assertion.Engine) RunnerOption {
	return func(r *DefaultRunner) {
		r.engine = engine
	}
}

// WithLogger sets the logger used by the runner.
func WithLogger(logger benchmark.Logger) RunnerOption {
	return func(r *DefaultRunner) {
		r.logger = logger
	}
}

// WithMetrics sets the metrics sink for run, trial, and assertion
// outcomes.
func WithMetrics(m metrics.Metrics) RunnerOption {
	return func(r *DefaultRunner) {
		r.metrics = m
	}
}

// WithCollector sets the event collector that receives lifecycle
// events for live monitoring.
func WithCollector(c *monitor.EventCollector) RunnerOption {
	return func(r *DefaultRunner) {
		r.collector = c
	}
}

// WithTimeout sets the default execution timeout for benchmarks
// that do not specify their own.
func WithTimeout(timeout time.Duration) RunnerOption {
	return func(r *DefaultRunner) {
		r.timeout = timeout
	}
}

// WithStaleThreshold sets the default liveness threshold: the
// maximum time without trial progress before a run is considered
// stuck. Zero disables liveness detection.
func WithStaleThreshold(threshold time.Duration) RunnerOption {
	return func(r *DefaultRunner) {
		r.staleThreshold = threshold
	}
}

// WithTrials sets the default number of measured trials for
// benchmarks whose config does not specify one.
func WithTrials(trials int) RunnerOption {
	return func(r *DefaultRunner) {
		r.trials = trials
	}
}

// WithWarmup sets the default number of warmup trials.
func WithWarmup(warmup int) RunnerOption {
	return func(r *DefaultRunner) {
		r.warmup = warmup
	}
}

// WithResultsDir sets the base directory where run results are
// written.
func WithResultsDir(dir string) RunnerOption {
	return func(r *DefaultRunner) {
		r.resultsDir = dir
	}
}

// WithPreHook adds a pre-execution hook to the runner.
func WithPreHook(h Hook) RunnerOption {
	return func(r *DefaultRunner) {
		r.preHooks = append(r.preHooks, h)
	}
}

// WithPostHook adds a post-execution hook to the runner.
func WithPostHook(h Hook) RunnerOption {
	return func(r *DefaultRunner) {
		r.postHooks = append(r.postHooks, h)
	}
}

// WithExecuteHook sets a test hook that is called after
// executeBenchmark completes. It can override the result and error
// for testing error handling paths.
// This is intended for testing only.
func WithExecuteHook(h ExecuteHook) RunnerOption {
	return func(r *DefaultRunner) {
		r.executeHook = h
	}
}

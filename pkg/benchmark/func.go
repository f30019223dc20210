package benchmark

import (
	"context"
	"fmt"

	"digital.vasic.benchmarks/pkg/measurement"
)

// TrialFunc is the body of one benchmark trial. It performs the
// measured work and increments counters from the set as it goes.
type TrialFunc func(
	ctx context.Context,
	counters *measurement.CounterSet,
) error

// FuncBenchmark adapts a plain function into a Benchmark. It is the
// quickest way to author a benchmark: declare counters and
// assertions on the embedded base, supply the trial body, and
// optionally attach setup and cleanup functions.
type FuncBenchmark struct {
	BaseBenchmark

	trialFn   TrialFunc
	setupFn   func(ctx context.Context) error
	cleanupFn func(ctx context.Context) error
}

// NewFuncBenchmark creates a FuncBenchmark with the given identity
// and trial body.
func NewFuncBenchmark(
	id ID,
	name, description, category string,
	trialFn TrialFunc,
) *FuncBenchmark {
	return &FuncBenchmark{
		BaseBenchmark: NewBaseBenchmark(
			id, name, description, category,
		),
		trialFn: trialFn,
	}
}

// WithSetup attaches a setup function called once per run, after
// Configure and before warmup.
func (f *FuncBenchmark) WithSetup(
	fn func(ctx context.Context) error,
) *FuncBenchmark {
	f.setupFn = fn
	return f
}

// WithCleanup attaches a cleanup function called when the run
// finishes, successfully or not.
func (f *FuncBenchmark) WithCleanup(
	fn func(ctx context.Context) error,
) *FuncBenchmark {
	f.cleanupFn = fn
	return f
}

// Setup runs the base checks and then the attached setup function,
// if any.
func (f *FuncBenchmark) Setup(ctx context.Context) error {
	if err := f.BaseBenchmark.Setup(ctx); err != nil {
		return err
	}
	if f.setupFn != nil {
		return f.setupFn(ctx)
	}
	return nil
}

// RunTrial executes the trial body.
func (f *FuncBenchmark) RunTrial(
	ctx context.Context,
	counters *measurement.CounterSet,
) error {
	if f.trialFn == nil {
		return fmt.Errorf(
			"benchmark %s: no trial function", f.ID(),
		)
	}
	return f.trialFn(ctx, counters)
}

// Cleanup runs the attached cleanup function, then the base
// cleanup.
func (f *FuncBenchmark) Cleanup(ctx context.Context) error {
	if f.cleanupFn != nil {
		if err := f.cleanupFn(ctx); err != nil {
			return err
		}
	}
	return f.BaseBenchmark.Cleanup(ctx)
}

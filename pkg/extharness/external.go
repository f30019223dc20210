package extharness

import (
	"context"
	"fmt"
	"path/filepath"

	"digital.vasic.benchmarks/pkg/benchmark"
	"digital.vasic.benchmarks/pkg/measurement"
)

// ExternalBenchmark delegates its trial execution to an external
// harness. It satisfies the runner's SampleProvider contract:
// instead of running counter-instrumented trials in process, the
// runner consumes the harness-supplied samples directly.
type ExternalBenchmark struct {
	benchmark.BaseBenchmark

	adapter    Adapter
	configPath string
	builder    *ConfigBuilder
	runOpts    []RunOption
	lastRun    *RunResult
}

// NewExternalBenchmark creates an ExternalBenchmark with the
// given identity, harness adapter, and declared counters. Use
// ExternalOption functions to set the config source and run
// options; assertions are registered with the Assert* helpers or
// AddAssertion.
func NewExternalBenchmark(
	id benchmark.ID,
	name, description, category string,
	adapter Adapter,
	counters []string,
	opts ...ExternalOption,
) (*ExternalBenchmark, error) {
	b := &ExternalBenchmark{
		BaseBenchmark: benchmark.NewBaseBenchmark(
			id, name, description, category,
		),
		adapter: adapter,
	}
	for _, counter := range counters {
		if err := b.DeclareCounter(counter); err != nil {
			return nil, err
		}
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Setup verifies the adapter is reachable and a config source is
// set before any harness invocation.
func (b *ExternalBenchmark) Setup(ctx context.Context) error {
	if err := b.BaseBenchmark.Setup(ctx); err != nil {
		return err
	}
	if b.adapter == nil {
		return fmt.Errorf(
			"benchmark %s: harness adapter is nil", b.ID(),
		)
	}
	if !b.adapter.Available(ctx) {
		return fmt.Errorf(
			"benchmark %s: harness binary not available", b.ID(),
		)
	}
	if b.configPath == "" && b.builder == nil {
		return fmt.Errorf(
			"benchmark %s: no config path or builder set", b.ID(),
		)
	}
	return nil
}

// RunTrial never executes for an external benchmark; the runner
// detects the SampleProvider implementation and calls
// CollectSamples instead.
func (b *ExternalBenchmark) RunTrial(
	_ context.Context,
	_ *measurement.CounterSet,
) error {
	return fmt.Errorf(
		"benchmark %s: trials run in the external harness", b.ID(),
	)
}

// CollectSamples runs the harness once and parses its samples
// file into per-counter trial samples.
func (b *ExternalBenchmark) CollectSamples(
	ctx context.Context,
) (map[string][]measurement.TrialSample, error) {
	configPath := b.configPath
	if b.builder != nil {
		genPath := filepath.Join(
			b.ResultsDir(), "harness_config.yaml",
		)
		if err := b.builder.WriteYAML(genPath); err != nil {
			return nil, fmt.Errorf(
				"benchmark %s: write generated config: %w",
				b.ID(), err,
			)
		}
		configPath = genPath
	}

	result, err := b.adapter.Run(ctx, configPath, b.runOpts...)
	b.lastRun = result
	if err != nil {
		return nil, fmt.Errorf(
			"benchmark %s: harness run: %w", b.ID(), err,
		)
	}
	if result.ExitCode != 0 {
		return nil, fmt.Errorf(
			"benchmark %s: harness exited with code %d: %s",
			b.ID(), result.ExitCode, result.Stderr,
		)
	}
	if result.SamplesFile == "" {
		return nil, fmt.Errorf(
			"benchmark %s: harness produced no samples file",
			b.ID(),
		)
	}

	samples, err := ParseSamplesFile(result.SamplesFile)
	if err != nil {
		return nil, fmt.Errorf("benchmark %s: %w", b.ID(), err)
	}
	return samples, nil
}

// LastRun returns the most recent harness run result, or nil if
// the harness has not run yet.
func (b *ExternalBenchmark) LastRun() *RunResult {
	return b.lastRun
}

// Metrics derives metric values from the most recent harness run.
func (b *ExternalBenchmark) Metrics() map[string]benchmark.MetricValue {
	return ResultToMetrics(b.lastRun)
}

package runner

import (
	"context"

	"digital.vasic.benchmarks/pkg/benchmark"
)

// Pipeline represents a sequence of hooks and a runner that
// executes benchmarks with pre- and post-processing steps.
type Pipeline struct {
	runner    *DefaultRunner
	preHooks  []Hook
	postHooks []Hook
}

// NewPipeline creates a Pipeline wrapping the given runner.
func NewPipeline(runner *DefaultRunner) *Pipeline {
	return &Pipeline{
		runner: runner,
	}
}

// AddPreHook appends a pre-execution hook to the pipeline.
func (p *Pipeline) AddPreHook(h Hook) {
	p.preHooks = append(p.preHooks, h)
}

// AddPostHook appends a post-execution hook to the pipeline.
func (p *Pipeline) AddPostHook(h Hook) {
	p.postHooks = append(p.postHooks, h)
}

// Execute runs a benchmark through the pipeline:
// pre-hooks -> runner.executeBenchmark -> post-hooks.
func (p *Pipeline) Execute(
	ctx context.Context,
	b benchmark.Benchmark,
	config *benchmark.Config,
) (*benchmark.Result, error) {
	// Run pipeline-level pre-hooks.
	for _, hook := range p.preHooks {
		if err := hook(ctx, b, config); err != nil {
			return &benchmark.Result{
				BenchmarkID:   b.ID(),
				BenchmarkName: b.Name(),
				Status:        benchmark.StatusError,
				Error: "pipeline pre-hook failed: " +
					err.Error(),
			}, nil
		}
	}

	// Execute via runner.
	result, err := p.runner.executeBenchmark(ctx, b, config)
	if err != nil {
		return result, err
	}

	// Run pipeline-level post-hooks.
	for _, hook := range p.postHooks {
		if hookErr := hook(ctx, b, config); hookErr != nil {
			p.runner.logEvent(
				"pipeline_post_hook_warning",
				map[string]any{
					"benchmark_id": b.ID(),
					"warning":      hookErr.Error(),
				},
			)
		}
	}

	return result, nil
}

// ExecuteSequence runs multiple benchmarks through the pipeline in
// order.
func (p *Pipeline) ExecuteSequence(
	ctx context.Context,
	benchmarks []benchmark.Benchmark,
	config *benchmark.Config,
) ([]*benchmark.Result, error) {
	results := make(
		[]*benchmark.Result, 0, len(benchmarks),
	)

	for _, b := range benchmarks {
		cfg := *config
		cfg.BenchmarkID = b.ID()

		result, err := p.Execute(ctx, b, &cfg)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}

	return results, nil
}

// Package runner provides the benchmark execution engine. It owns
// the trial loop: warmup, timed measured trials with fresh counter
// sets, sample collection, aggregation, and assertion evaluation,
// with configurable timeouts, liveness detection, and lifecycle
// hooks.
package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"digital.vasic.benchmarks/pkg/assertion"
	"digital.vasic.benchmarks/pkg/benchmark"
	"digital.vasic.benchmarks/pkg/measurement"
	"digital.vasic.benchmarks/pkg/metrics"
	"digital.vasic.benchmarks/pkg/monitor"
	"digital.vasic.benchmarks/pkg/registry"
)

// Runner defines the interface for benchmark execution.
type Runner interface {
	// Run executes a single benchmark by ID.
	Run(
		ctx context.Context,
		id benchmark.ID,
		config *benchmark.Config,
	) (*benchmark.Result, error)

	// RunAll executes all registered benchmarks in execution
	// order.
	RunAll(
		ctx context.Context,
		config *benchmark.Config,
	) ([]*benchmark.Result, error)

	// RunByCategory executes all benchmarks in a category.
	RunByCategory(
		ctx context.Context,
		category string,
		config *benchmark.Config,
	) ([]*benchmark.Result, error)

	// RunDefinition executes a declarative definition with the
	// given trial body.
	RunDefinition(
		ctx context.Context,
		def *benchmark.Definition,
		trial benchmark.TrialFunc,
		config *benchmark.Config,
	) (*benchmark.Result, error)
}

// SampleProvider is implemented by benchmarks that produce their
// trial samples out of band (e.g. by delegating to an external
// harness) instead of running counter-instrumented trials. When a
// benchmark implements it, the runner skips its own trial loop and
// uses the provided samples directly.
type SampleProvider interface {
	CollectSamples(
		ctx context.Context,
	) (map[string][]measurement.TrialSample, error)
}

// Hook is a function invoked before or after benchmark execution.
// It receives the benchmark and its config.
type Hook func(
	ctx context.Context,
	b benchmark.Benchmark,
	cfg *benchmark.Config,
) error

// ExecuteHook allows testing of error paths in executeBenchmark.
// It is called after executeBenchmark completes and can override
// the returned error. This is only intended for testing.
type ExecuteHook func(
	b benchmark.Benchmark,
	result *benchmark.Result,
	err error,
) (*benchmark.Result, error)

// DefaultRunner is the standard Runner implementation.
type DefaultRunner struct {
	registry       registry.Registry
	engine         assertion.Engine
	logger         benchmark.Logger
	metrics        metrics.Metrics
	collector      *monitor.EventCollector
	timeout        time.Duration
	staleThreshold time.Duration
	trials         int
	warmup         int
	resultsDir     string
	preHooks       []Hook
	postHooks      []Hook
	executeHook    ExecuteHook // test hook for executeBenchmark errors

	activeRuns atomic.Int64
}

// NewRunner creates a DefaultRunner with the supplied options.
func NewRunner(opts ...RunnerOption) *DefaultRunner {
	r := &DefaultRunner{
		registry: registry.Default,
		engine:   assertion.NewEngine(),
		metrics:  metrics.NoopMetrics{},
		timeout:  10 * time.Minute,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes a single benchmark by ID.
func (r *DefaultRunner) Run(
	ctx context.Context,
	id benchmark.ID,
	config *benchmark.Config,
) (*benchmark.Result, error) {
	b, err := r.registry.Get(id)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get benchmark: %w", err,
		)
	}
	return r.executeBenchmark(ctx, b, config)
}

// RunAll executes all registered benchmarks in execution order
// (category, then ID). A benchmark whose assertions fail produces a
// failed result and the run continues; an infrastructure error
// aborts the remaining benchmarks.
func (r *DefaultRunner) RunAll(
	ctx context.Context,
	config *benchmark.Config,
) ([]*benchmark.Result, error) {
	return r.runOrdered(
		ctx, r.registry.ExecutionOrder(), config,
	)
}

// RunByCategory executes all benchmarks in the given category, in
// ID order.
func (r *DefaultRunner) RunByCategory(
	ctx context.Context,
	category string,
	config *benchmark.Config,
) ([]*benchmark.Result, error) {
	return r.runOrdered(
		ctx, r.registry.ListByCategory(category), config,
	)
}

func (r *DefaultRunner) runOrdered(
	ctx context.Context,
	benchmarks []benchmark.Benchmark,
	config *benchmark.Config,
) ([]*benchmark.Result, error) {
	var results []*benchmark.Result

	for _, b := range benchmarks {
		cfg := *config
		cfg.BenchmarkID = b.ID()

		result, execErr := r.executeBenchmark(ctx, b, &cfg)
		if execErr != nil {
			return results, fmt.Errorf(
				"benchmark %s failed: %w",
				b.ID(), execErr,
			)
		}
		results = append(results, result)
	}

	return results, nil
}

// RunDefinition materializes a declarative definition into a
// benchmark with the given trial body and executes it.
func (r *DefaultRunner) RunDefinition(
	ctx context.Context,
	def *benchmark.Definition,
	trial benchmark.TrialFunc,
	config *benchmark.Config,
) (*benchmark.Result, error) {
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf(
			"invalid definition: %w", err,
		)
	}

	fb := benchmark.NewFuncBenchmark(
		def.ID, def.Name, def.Description, def.Category,
		trial,
	)
	for _, c := range def.Counters {
		if err := fb.DeclareCounter(c); err != nil {
			return nil, err
		}
	}
	specs, err := def.Specs()
	if err != nil {
		return nil, err
	}
	for _, spec := range specs {
		if err := fb.AddAssertion(spec); err != nil {
			return nil, err
		}
	}

	cfg := *config
	cfg.BenchmarkID = def.ID
	if def.Trials > 0 {
		cfg.Trials = def.Trials
	}
	if def.Warmup > 0 {
		cfg.Warmup = def.Warmup
	}

	return r.executeBenchmark(ctx, fb, &cfg)
}

// executeBenchmark runs a single benchmark through its full
// lifecycle: setup dirs -> pre-hooks -> validate specs ->
// configure -> setup -> warmup -> measured trials with timeout and
// liveness detection -> aggregate -> evaluate assertions ->
// post-hooks -> cleanup.
func (r *DefaultRunner) executeBenchmark(
	ctx context.Context,
	b benchmark.Benchmark,
	config *benchmark.Config,
) (*benchmark.Result, error) {
	runID := uuid.NewString()
	start := time.Now()

	result := &benchmark.Result{
		RunID:         runID,
		BenchmarkID:   b.ID(),
		BenchmarkName: b.Name(),
		Status:        benchmark.StatusRunning,
		StartTime:     start,
	}

	r.activeRuns.Add(1)
	r.metrics.SetActiveRuns(int(r.activeRuns.Load()))
	defer func() {
		r.activeRuns.Add(-1)
		r.metrics.SetActiveRuns(int(r.activeRuns.Load()))
	}()

	fail := func(status, errMsg string) *benchmark.Result {
		result.Status = status
		result.Error = errMsg
		result.EndTime = time.Now()
		result.Duration = result.EndTime.Sub(start)
		r.recordRun(b, result)
		return result
	}

	// Setup results directory.
	if err := r.setupResultsDir(config); err != nil {
		return r.finish(b, fail(
			benchmark.StatusError,
			fmt.Sprintf(
				"failed to setup results directory: %v",
				err,
			),
		))
	}

	result.Logs = benchmark.LogPaths{
		BenchmarkLog: filepath.Join(
			config.LogsDir, "benchmark.log",
		),
		TrialLog: filepath.Join(
			config.LogsDir, "trials.jsonl",
		),
	}

	if r.collector != nil {
		r.collector.EmitStarted(
			runID, b.ID(), b.Name(), b.Category(),
		)
	}
	r.logEvent("benchmark_started", map[string]any{
		"run_id":         runID,
		"benchmark_id":   b.ID(),
		"benchmark_name": b.Name(),
	})

	// Pre-hooks.
	for _, hook := range r.preHooks {
		if err := hook(ctx, b, config); err != nil {
			return r.finish(b, fail(
				benchmark.StatusError,
				fmt.Sprintf("pre-hook failed: %v", err),
			))
		}
	}

	// Validate declarations and assertion specs before spending
	// any trial time on a malformed benchmark.
	if err := r.engine.ValidateSpecs(
		b.Declarations(), b.Assertions(),
	); err != nil {
		return r.finish(b, fail(
			benchmark.StatusError,
			fmt.Sprintf("invalid assertions: %v", err),
		))
	}

	// Configure.
	if err := b.Configure(config); err != nil {
		return r.finish(b, fail(
			benchmark.StatusError,
			fmt.Sprintf("configuration failed: %v", err),
		))
	}

	// Setup.
	if err := b.Setup(ctx); err != nil {
		return r.finish(b, fail(
			benchmark.StatusError,
			fmt.Sprintf("setup failed: %v", err),
		))
	}

	// Determine trial counts, stale threshold, and timeout:
	// per-benchmark config overrides the runner default.
	trials := config.Trials
	if trials <= 0 {
		trials = r.trials
	}
	if trials <= 0 {
		trials = 1
	}
	warmup := config.Warmup
	if warmup < 0 {
		warmup = r.warmup
	}
	staleThreshold := config.StaleThreshold
	if staleThreshold == 0 {
		staleThreshold = r.staleThreshold
	}
	timeout := config.Timeout
	if timeout == 0 {
		timeout = r.timeout
	}
	result.Trials = trials
	result.Warmup = warmup

	execCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// The runner reports progress after every trial; the
	// liveness monitor cancels execCtx if no trial completes
	// within the stale threshold. Benchmarks that report
	// in-trial progress get finer-grained liveness.
	progress := benchmark.NewProgressReporter()
	defer progress.Close()
	type progressAware interface {
		SetProgressReporter(*benchmark.ProgressReporter)
	}
	if pa, ok := b.(progressAware); ok {
		pa.SetProgressReporter(progress)
	}

	stopLiveness, stuckCh := startLivenessMonitor(
		progress, staleThreshold, cancel,
		r.logger, b.ID(),
	)

	samples, execErr := r.collectSamples(
		execCtx, b, progress, trials, warmup, runID,
	)

	// Stop liveness monitoring immediately after the trial loop
	// to prevent false stuck detection during post-processing.
	stopLiveness()

	wasStuck := false
	if stuckCh != nil {
		select {
		case <-stuckCh:
			wasStuck = true
		default:
		}
	}

	// Cleanup runs regardless of how the trial loop ended.
	if err := b.Cleanup(ctx); err != nil {
		r.logEvent("cleanup_warning", map[string]any{
			"benchmark_id": b.ID(),
			"warning":      err.Error(),
		})
	}

	// Stuck takes priority over timeout since the liveness
	// monitor cancelled the context itself.
	if wasStuck {
		if r.collector != nil {
			r.collector.EmitFailed(
				runID, b.ID(), b.Name(),
				"no trial progress within stale threshold",
			)
		}
		return r.finish(b, fail(
			benchmark.StatusStuck,
			fmt.Sprintf(
				"benchmark stuck: no progress reported "+
					"within %v", staleThreshold,
			),
		))
	}

	if execCtx.Err() == context.DeadlineExceeded {
		if r.collector != nil {
			r.collector.Emit(monitor.Event{
				Type:        monitor.EventTimedOut,
				RunID:       runID,
				BenchmarkID: b.ID(),
				Name:        b.Name(),
				Status:      benchmark.StatusTimedOut,
			})
		}
		return r.finish(b, fail(
			benchmark.StatusTimedOut,
			"benchmark execution timed out",
		))
	}

	if execErr != nil {
		if r.collector != nil {
			r.collector.EmitFailed(
				runID, b.ID(), b.Name(), execErr.Error(),
			)
		}
		return r.finish(b, fail(
			benchmark.StatusError,
			fmt.Sprintf("execution failed: %v", execErr),
		))
	}

	result.Samples = samples

	// Aggregate.
	stats, err := measurement.AggregateAll(samples)
	if err != nil {
		return r.finish(b, fail(
			benchmark.StatusError,
			fmt.Sprintf("aggregation failed: %v", err),
		))
	}
	result.Statistics = stats

	// Evaluate assertions. A failing assertion is a normal
	// verdict; only a spec whose counter has no statistics is
	// an error.
	verdicts, err := r.engine.EvaluateAll(
		b.Assertions(), stats,
	)
	if err != nil {
		return r.finish(b, fail(
			benchmark.StatusError,
			fmt.Sprintf("evaluation failed: %v", err),
		))
	}
	result.Report = assertion.BuildReport(verdicts)

	result.Status = benchmark.StatusPassed
	if !result.Report.OverallPass {
		result.Status = benchmark.StatusFailed
	}
	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(start)
	result.Metrics = deriveMetrics(stats)

	for _, v := range result.Report.Verdicts {
		r.metrics.RecordAssertion(
			string(b.ID()), v.Spec.CounterName, v.Pass,
		)
	}
	r.recordRun(b, result)

	if r.collector != nil {
		passed := result.Report.Len() - len(result.Report.Failed())
		if result.Status == benchmark.StatusPassed {
			r.collector.EmitCompleted(
				runID, b.ID(), b.Name(), result.Duration,
				result.Report.Len(), passed,
			)
		} else {
			r.collector.Emit(monitor.Event{
				Type:           monitor.EventFailed,
				RunID:          runID,
				BenchmarkID:    b.ID(),
				Name:           b.Name(),
				Status:         benchmark.StatusFailed,
				Message:        failureSummary(result.Report),
				Duration:       result.Duration,
				VerdictsTotal:  result.Report.Len(),
				VerdictsPassed: passed,
			})
		}
	}

	r.logEvent("benchmark_completed", map[string]any{
		"run_id":           runID,
		"benchmark_id":     b.ID(),
		"status":           result.Status,
		"duration_seconds": result.Duration.Seconds(),
	})

	// Post-hooks.
	for _, hook := range r.postHooks {
		if err := hook(ctx, b, config); err != nil {
			r.logEvent("post_hook_warning", map[string]any{
				"benchmark_id": b.ID(),
				"warning":      err.Error(),
			})
		}
	}

	if err := r.writeResult(config, result); err != nil {
		r.logEvent("result_write_warning", map[string]any{
			"benchmark_id": b.ID(),
			"warning":      err.Error(),
		})
	}

	return r.finish(b, result)
}

// collectSamples runs warmup then measured trials, giving each trial
// a fresh counter set, and snapshots the counters with the trial's
// wall-clock duration. Benchmarks implementing SampleProvider
// supply their samples directly instead.
func (r *DefaultRunner) collectSamples(
	ctx context.Context,
	b benchmark.Benchmark,
	progress *benchmark.ProgressReporter,
	trials, warmup int,
	runID string,
) (map[string][]measurement.TrialSample, error) {
	if sp, ok := b.(SampleProvider); ok {
		return sp.CollectSamples(ctx)
	}

	decls := b.Declarations()

	for i := 1; i <= warmup; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		counters := measurement.NewCounterSet(decls)
		if err := b.RunTrial(ctx, counters); err != nil {
			return nil, fmt.Errorf(
				"warmup trial %d: %w", i, err,
			)
		}
		progress.ReportProgress(
			0, trials,
			fmt.Sprintf("warmup %d/%d", i, warmup),
			nil,
		)
	}

	samples := make(
		map[string][]measurement.TrialSample, len(decls),
	)

	for i := 1; i <= trials; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		counters := measurement.NewCounterSet(decls)
		trialStart := time.Now()
		if err := b.RunTrial(ctx, counters); err != nil {
			return nil, fmt.Errorf("trial %d: %w", i, err)
		}
		elapsed := time.Since(trialStart)

		totals := make(map[string]int64, counters.Len())
		for _, s := range counters.Snapshot(elapsed) {
			samples[s.CounterName] = append(
				samples[s.CounterName], s,
			)
			totals[s.CounterName] = s.Value
		}

		progress.ReportProgress(
			i, trials,
			fmt.Sprintf("trial %d/%d", i, trials),
			totals,
		)
		r.metrics.RecordTrial(string(b.ID()), elapsed)
		if r.collector != nil {
			r.collector.EmitTrialCompleted(
				runID, b.ID(), i, trials, elapsed,
			)
		}
	}

	return samples, nil
}

// recordRun reports the terminal run outcome to the metrics sink.
func (r *DefaultRunner) recordRun(
	b benchmark.Benchmark,
	result *benchmark.Result,
) {
	r.metrics.RecordRun(
		string(b.ID()), result.Status, result.Duration,
	)
}

// finish applies the test hook, if any, before returning.
func (r *DefaultRunner) finish(
	b benchmark.Benchmark,
	result *benchmark.Result,
) (*benchmark.Result, error) {
	if r.executeHook != nil {
		return r.executeHook(b, result, nil)
	}
	return result, nil
}

// setupResultsDir creates the per-run results directory structure.
func (r *DefaultRunner) setupResultsDir(
	config *benchmark.Config,
) error {
	if config.ResultsDir == "" {
		now := time.Now()
		baseDir := r.resultsDir
		if baseDir == "" {
			baseDir = "results"
		}

		config.ResultsDir = filepath.Join(
			baseDir,
			string(config.BenchmarkID),
			now.Format("20060102_150405"),
		)
	}

	config.LogsDir = filepath.Join(
		config.ResultsDir, "logs",
	)

	if err := os.MkdirAll(config.LogsDir, 0o755); err != nil {
		return err
	}
	return os.MkdirAll(
		filepath.Join(config.ResultsDir, "results"), 0o755,
	)
}

// writeResult serializes the run result to result.json in the run's
// results directory.
func (r *DefaultRunner) writeResult(
	config *benchmark.Config,
	result *benchmark.Result,
) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	path := filepath.Join(
		config.ResultsDir, "results", "result.json",
	)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write result %s: %w", path, err)
	}
	return nil
}

// deriveMetrics builds named metric values from per-counter
// statistics.
func deriveMetrics(
	stats map[string]measurement.Statistics,
) map[string]benchmark.MetricValue {
	metrics := make(
		map[string]benchmark.MetricValue, len(stats)*2,
	)
	for name, s := range stats {
		metrics[name+"_rate"] = benchmark.MetricValue{
			Name:  name + "_rate",
			Value: s.AverageRate,
			Unit:  "ops/sec",
		}
		metrics[name+"_total"] = benchmark.MetricValue{
			Name:  name + "_total",
			Value: s.AverageTotal,
			Unit:  "ops",
		}
	}
	return metrics
}

// failureSummary describes the failing verdicts of a report in one
// line.
func failureSummary(report assertion.Report) string {
	failed := report.Failed()
	if len(failed) == 0 {
		return ""
	}
	return fmt.Sprintf(
		"%d of %d assertions failed: %s",
		len(failed), report.Len(), failed[0].Message,
	)
}

// logEvent emits a structured log entry if a logger is configured.
func (r *DefaultRunner) logEvent(
	event string,
	data map[string]any,
) {
	if r.logger == nil {
		return
	}

	parts := make([]any, 0, len(data)*2)
	for k, v := range data {
		parts = append(parts, k, v)
	}
	r.logger.Info(event, parts...)
}

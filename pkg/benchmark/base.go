package benchmark

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"digital.vasic.benchmarks/pkg/assertion"
	"digital.vasic.benchmarks/pkg/measurement"
)

// BaseBenchmark provides a reusable foundation for building
// benchmarks using the template method pattern. Embed this struct,
// register counters and assertions in your constructor, and
// implement RunTrial.
type BaseBenchmark struct {
	id           ID
	name         string
	description  string
	category     string
	declarations []measurement.Declaration
	specs        []assertion.Spec
	config       *Config
	logger       Logger
}

// NewBaseBenchmark creates a BaseBenchmark with the given identity
// fields. Counters and assertions are registered afterwards with
// DeclareCounter and the Assert* helpers.
func NewBaseBenchmark(
	id ID,
	name, description, category string,
) BaseBenchmark {
	return BaseBenchmark{
		id:          id,
		name:        name,
		description: description,
		category:    category,
	}
}

// ID returns the benchmark identifier.
func (b *BaseBenchmark) ID() ID { return b.id }

// Name returns the benchmark name.
func (b *BaseBenchmark) Name() string { return b.name }

// Description returns the benchmark description.
func (b *BaseBenchmark) Description() string {
	return b.description
}

// Category returns the benchmark category.
func (b *BaseBenchmark) Category() string { return b.category }

// Declarations returns the registered counter declarations in
// registration order.
func (b *BaseBenchmark) Declarations() []measurement.Declaration {
	return b.declarations
}

// Assertions returns the registered assertion specs in registration
// order.
func (b *BaseBenchmark) Assertions() []assertion.Spec {
	return b.specs
}

// Config returns the current runtime configuration, or nil if
// Configure has not been called.
func (b *BaseBenchmark) Config() *Config { return b.config }

// SetLogger sets the logger used by this benchmark.
func (b *BaseBenchmark) SetLogger(l Logger) {
	b.logger = l
}

// DeclareCounter registers a counter declaration. Duplicate names
// are rejected so a typo never silently splits one counter's
// samples in two.
func (b *BaseBenchmark) DeclareCounter(name string) error {
	decl := measurement.NewDeclaration(name)
	if err := decl.Validate(); err != nil {
		return err
	}
	for _, d := range b.declarations {
		if d.CounterName == name {
			return fmt.Errorf(
				"benchmark %s: counter %q already declared",
				b.id, name,
			)
		}
	}
	b.declarations = append(b.declarations, decl)
	return nil
}

// AssertThroughput registers a single-sided throughput assertion
// against a declared counter.
func (b *BaseBenchmark) AssertThroughput(
	counter string,
	condition assertion.Condition,
	threshold float64,
) error {
	spec, err := assertion.NewThroughputSpec(
		counter, condition, threshold,
	)
	if err != nil {
		return err
	}
	b.specs = append(b.specs, spec)
	return nil
}

// AssertTotal registers a single-sided total-count assertion
// against a declared counter.
func (b *BaseBenchmark) AssertTotal(
	counter string,
	condition assertion.Condition,
	threshold float64,
) error {
	spec, err := assertion.NewTotalSpec(
		counter, condition, threshold,
	)
	if err != nil {
		return err
	}
	b.specs = append(b.specs, spec)
	return nil
}

// AssertRateBetween registers a two-sided throughput assertion,
// inclusive at both ends.
func (b *BaseBenchmark) AssertRateBetween(
	counter string,
	lower, upper float64,
) error {
	spec, err := assertion.BetweenThroughputSpec(
		counter, lower, upper,
	)
	if err != nil {
		return err
	}
	b.specs = append(b.specs, spec)
	return nil
}

// AssertTotalBetween registers a two-sided total-count assertion,
// inclusive at both ends.
func (b *BaseBenchmark) AssertTotalBetween(
	counter string,
	lower, upper float64,
) error {
	spec, err := assertion.BetweenTotalSpec(
		counter, lower, upper,
	)
	if err != nil {
		return err
	}
	b.specs = append(b.specs, spec)
	return nil
}

// AddAssertion registers an already-built assertion spec. Used when
// specs come from a parsed definition rather than the Assert*
// helpers.
func (b *BaseBenchmark) AddAssertion(
	spec assertion.Spec,
) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	b.specs = append(b.specs, spec)
	return nil
}

// ValidateSpecs checks every registered assertion against the
// registered declarations. The runner calls this before the first
// trial so a malformed spec never costs a benchmark run.
func (b *BaseBenchmark) ValidateSpecs() error {
	if err := measurement.ValidateDeclarations(
		b.declarations,
	); err != nil {
		return fmt.Errorf("benchmark %s: %w", b.id, err)
	}
	if err := assertion.ValidateSpecs(
		b.declarations, b.specs,
	); err != nil {
		return fmt.Errorf("benchmark %s: %w", b.id, err)
	}
	return nil
}

// Configure stores the runtime config and ensures output
// directories exist.
func (b *BaseBenchmark) Configure(config *Config) error {
	if config == nil {
		return fmt.Errorf("config must not be nil")
	}
	b.config = config

	if err := os.MkdirAll(b.ResultsDir(), 0o755); err != nil {
		return fmt.Errorf(
			"create results dir %s: %w", b.ResultsDir(), err,
		)
	}
	if err := os.MkdirAll(b.LogsDir(), 0o755); err != nil {
		return fmt.Errorf(
			"create logs dir %s: %w", b.LogsDir(), err,
		)
	}
	return nil
}

// Setup is a no-op by default. Override to prepare shared state.
func (b *BaseBenchmark) Setup(_ context.Context) error {
	if b.config == nil {
		return fmt.Errorf(
			"benchmark %s: not configured", b.id,
		)
	}
	return nil
}

// Cleanup is a no-op by default. Override to release resources.
func (b *BaseBenchmark) Cleanup(_ context.Context) error {
	if b.logger != nil {
		return b.logger.Close()
	}
	return nil
}

// ResultsDir returns the results directory path for this benchmark.
func (b *BaseBenchmark) ResultsDir() string {
	if b.config == nil {
		return "results"
	}
	return filepath.Join(b.config.ResultsDir, string(b.id))
}

// LogsDir returns the logs directory path for this benchmark.
func (b *BaseBenchmark) LogsDir() string {
	if b.config == nil {
		return "logs"
	}
	return filepath.Join(b.config.LogsDir, string(b.id))
}

// GetEnv returns an environment variable from the config, or the
// fallback value if not set.
func (b *BaseBenchmark) GetEnv(key, fallback string) string {
	if b.config == nil {
		return fallback
	}
	return b.config.GetEnv(key, fallback)
}

// CreateResult builds a Result pre-populated with this benchmark's
// identity, the run outcome, and metrics derived from the
// aggregated statistics.
func (b *BaseBenchmark) CreateResult(
	runID string,
	status string,
	start time.Time,
	samples map[string][]measurement.TrialSample,
	stats map[string]measurement.Statistics,
	report assertion.Report,
	errMsg string,
) *Result {
	end := time.Now()

	metrics := make(map[string]MetricValue, len(stats)*2)
	for name, s := range stats {
		metrics[name+"_rate"] = MetricValue{
			Name:  name + "_rate",
			Value: s.AverageRate,
			Unit:  "ops/sec",
		}
		metrics[name+"_total"] = MetricValue{
			Name:  name + "_total",
			Value: s.AverageTotal,
			Unit:  "ops",
		}
	}

	trials := 0
	for _, s := range samples {
		if len(s) > trials {
			trials = len(s)
		}
	}

	warmup := 0
	if b.config != nil {
		warmup = b.config.Warmup
	}

	return &Result{
		RunID:         runID,
		BenchmarkID:   b.id,
		BenchmarkName: b.name,
		Status:        status,
		StartTime:     start,
		EndTime:       end,
		Duration:      end.Sub(start),
		Trials:        trials,
		Warmup:        warmup,
		Samples:       samples,
		Statistics:    stats,
		Report:        report,
		Metrics:       metrics,
		Logs: LogPaths{
			BenchmarkLog: filepath.Join(
				b.LogsDir(), "benchmark.log",
			),
			TrialLog: filepath.Join(
				b.LogsDir(), "trials.jsonl",
			),
		},
		Error: errMsg,
	}
}

// WriteJSONResult serializes a Result to a JSON file in the results
// directory.
func (b *BaseBenchmark) WriteJSONResult(r *Result) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	path := filepath.Join(b.ResultsDir(), "result.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write result %s: %w", path, err)
	}
	return nil
}

// WriteMarkdownReport writes a human-readable Markdown summary of
// the result to the results directory.
func (b *BaseBenchmark) WriteMarkdownReport(r *Result) error {
	md := fmt.Sprintf(
		"# %s\n\n"+
			"**ID**: %s\n"+
			"**Status**: %s\n"+
			"**Trials**: %d\n"+
			"**Duration**: %s\n\n"+
			"## Assertions\n\n",
		r.BenchmarkName,
		r.BenchmarkID,
		r.Status,
		r.Trials,
		r.Duration,
	)
	for _, v := range r.Report.Verdicts {
		md += fmt.Sprintf(
			"- [%s] %s\n",
			Ternary(v.Pass, "PASS", "FAIL"),
			v.Message,
		)
	}
	if len(r.Statistics) > 0 {
		md += "\n## Statistics\n\n"
		md += "| Counter | Trials | Avg Rate (ops/sec) | Avg Total |\n"
		md += "|---------|--------|--------------------|----------|\n"
		for _, name := range sortedStatNames(r.Statistics) {
			s := r.Statistics[name]
			md += fmt.Sprintf(
				"| %s | %d | %.4g | %.4g |\n",
				s.CounterName, s.Trials,
				s.AverageRate, s.AverageTotal,
			)
		}
	}
	if r.Error != "" {
		md += fmt.Sprintf("\n## Error\n\n```\n%s\n```\n", r.Error)
	}
	path := filepath.Join(b.ResultsDir(), "report.md")
	if err := os.WriteFile(path, []byte(md), 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}

// logInfo logs at info level if a logger is available.
func (b *BaseBenchmark) logInfo(msg string, args ...any) {
	if b.logger != nil {
		b.logger.Info(msg, args...)
	}
}

// logError logs at error level if a logger is available.
func (b *BaseBenchmark) logError(msg string, args ...any) {
	if b.logger != nil {
		b.logger.Error(msg, args...)
	}
}

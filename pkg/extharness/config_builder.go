package extharness

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigBuilder provides a fluent API for constructing harness
// configuration files programmatically.
type ConfigBuilder struct {
	config     HarnessConfig
	benchmarks []*BenchmarkBuilder
}

// BenchmarkBuilder is a sub-builder for a single workload entry.
type BenchmarkBuilder struct {
	parent *ConfigBuilder
	bench  HarnessBenchmark
}

// NewConfigBuilder creates a ConfigBuilder with the given name
// and output directory.
func NewConfigBuilder(name, outputDir string) *ConfigBuilder {
	return &ConfigBuilder{
		config: HarnessConfig{
			Name:   name,
			Output: outputDir,
			Settings: HarnessSettings{
				LogLevel:      "info",
				KeepArtifacts: true,
				SamplesFile:   "samples.json",
			},
		},
	}
}

// AddBenchmark adds a workload and returns a BenchmarkBuilder
// for chaining.
func (b *ConfigBuilder) AddBenchmark(
	id, command string,
) *BenchmarkBuilder {
	bb := &BenchmarkBuilder{
		parent: b,
		bench: HarnessBenchmark{
			ID:      id,
			Command: command,
			Trials:  1,
		},
	}
	b.benchmarks = append(b.benchmarks, bb)
	return bb
}

// SetLogLevel sets the harness logging level.
func (b *ConfigBuilder) SetLogLevel(level string) *ConfigBuilder {
	b.config.Settings.LogLevel = level
	return b
}

// SetKeepArtifacts sets whether the harness keeps its working
// files after the run.
func (b *ConfigBuilder) SetKeepArtifacts(keep bool) *ConfigBuilder {
	b.config.Settings.KeepArtifacts = keep
	return b
}

// SetSamplesFile overrides the samples file name the harness
// writes into the output directory.
func (b *ConfigBuilder) SetSamplesFile(name string) *ConfigBuilder {
	b.config.Settings.SamplesFile = name
	return b
}

// Build assembles the final HarnessConfig.
func (b *ConfigBuilder) Build() (*HarnessConfig, error) {
	if b.config.Name == "" {
		return nil, fmt.Errorf("config name must not be empty")
	}
	if len(b.benchmarks) == 0 {
		return nil, fmt.Errorf(
			"config %s: no benchmarks added", b.config.Name,
		)
	}

	cfg := b.config
	cfg.Benchmarks = make([]HarnessBenchmark, 0, len(b.benchmarks))
	for _, bb := range b.benchmarks {
		if bb.bench.Command == "" {
			return nil, fmt.Errorf(
				"benchmark %s: command must not be empty",
				bb.bench.ID,
			)
		}
		if len(bb.bench.Counters) == 0 {
			return nil, fmt.Errorf(
				"benchmark %s: no counters declared",
				bb.bench.ID,
			)
		}
		cfg.Benchmarks = append(cfg.Benchmarks, bb.bench)
	}
	return &cfg, nil
}

// WriteYAML builds the config and writes it as YAML to the given
// path, creating parent directories as needed.
func (b *ConfigBuilder) WriteYAML(path string) error {
	cfg, err := b.Build()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal harness config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf(
			"create config dir %s: %w", filepath.Dir(path), err,
		)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf(
			"write harness config %s: %w", path, err,
		)
	}
	return nil
}

// WithName sets the workload's display name.
func (bb *BenchmarkBuilder) WithName(name string) *BenchmarkBuilder {
	bb.bench.Name = name
	return bb
}

// WithArgs sets the workload command arguments.
func (bb *BenchmarkBuilder) WithArgs(args ...string) *BenchmarkBuilder {
	bb.bench.Args = args
	return bb
}

// WithTrials sets the measured trial count.
func (bb *BenchmarkBuilder) WithTrials(n int) *BenchmarkBuilder {
	bb.bench.Trials = n
	return bb
}

// WithWarmup sets the unmeasured warmup trial count.
func (bb *BenchmarkBuilder) WithWarmup(n int) *BenchmarkBuilder {
	bb.bench.Warmup = n
	return bb
}

// WithCounters declares the counters the workload reports.
func (bb *BenchmarkBuilder) WithCounters(
	names ...string,
) *BenchmarkBuilder {
	bb.bench.Counters = names
	return bb
}

// WithTimeout sets the per-workload timeout in seconds.
func (bb *BenchmarkBuilder) WithTimeout(seconds int) *BenchmarkBuilder {
	bb.bench.Timeout = seconds
	return bb
}

// WithEnv adds an environment variable for the workload process.
func (bb *BenchmarkBuilder) WithEnv(key, value string) *BenchmarkBuilder {
	if bb.bench.Env == nil {
		bb.bench.Env = make(map[string]string)
	}
	bb.bench.Env[key] = value
	return bb
}

// Done returns the parent builder for further chaining.
func (bb *BenchmarkBuilder) Done() *ConfigBuilder {
	return bb.parent
}

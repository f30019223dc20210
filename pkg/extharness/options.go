package extharness

import "time"

// ExternalOption configures an ExternalBenchmark.
type ExternalOption func(*ExternalBenchmark)

// WithConfigPath sets the YAML config file path the harness runs.
func WithConfigPath(path string) ExternalOption {
	return func(b *ExternalBenchmark) {
		b.configPath = path
	}
}

// WithConfigBuilder sets a ConfigBuilder for programmatic config
// generation.
func WithConfigBuilder(cb *ConfigBuilder) ExternalOption {
	return func(b *ExternalBenchmark) {
		b.builder = cb
	}
}

// WithRunOpts appends run options for the harness adapter.
func WithRunOpts(opts ...RunOption) ExternalOption {
	return func(b *ExternalBenchmark) {
		b.runOpts = append(b.runOpts, opts...)
	}
}

// RunOption configures a single harness invocation.
type RunOption func(*runConfig)

// runConfig holds resolved run options.
type runConfig struct {
	outputDir string
	verbose   bool
	timeout   time.Duration
	env       map[string]string
}

// RunWithOutputDir overrides the output directory.
func RunWithOutputDir(dir string) RunOption {
	return func(c *runConfig) {
		c.outputDir = dir
	}
}

// RunWithVerbose enables verbose harness logging.
func RunWithVerbose() RunOption {
	return func(c *runConfig) {
		c.verbose = true
	}
}

// RunWithTimeout sets a timeout for the run.
func RunWithTimeout(d time.Duration) RunOption {
	return func(c *runConfig) {
		c.timeout = d
	}
}

// RunWithEnv adds environment variables to the run.
func RunWithEnv(env map[string]string) RunOption {
	return func(c *runConfig) {
		if c.env == nil {
			c.env = make(map[string]string)
		}
		for k, v := range env {
			c.env[k] = v
		}
	}
}

// resolveRunConfig applies RunOptions to produce a runConfig.
func resolveRunConfig(opts []RunOption) *runConfig {
	cfg := &runConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

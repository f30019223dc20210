package benchmark

import (
	"os"
	"strconv"
	"time"
)

// Config holds runtime configuration for a benchmark run.
type Config struct {
	// BenchmarkID identifies which benchmark this config is for.
	BenchmarkID ID `json:"benchmark_id"`

	// Trials is the number of measured trials per run.
	Trials int `json:"trials"`

	// Warmup is the number of unmeasured warmup trials executed
	// before the measured ones.
	Warmup int `json:"warmup"`

	// ResultsDir is the directory where result JSON files are
	// written.
	ResultsDir string `json:"results_dir"`

	// LogsDir is the directory where log files are written.
	LogsDir string `json:"logs_dir"`

	// Timeout is the maximum duration for the whole run. A zero
	// value means no timeout.
	Timeout time.Duration `json:"timeout"`

	// StaleThreshold is the maximum duration without trial
	// progress before the run is considered stuck. A zero value
	// disables liveness detection.
	StaleThreshold time.Duration `json:"stale_threshold"`

	// Verbose enables detailed logging output.
	Verbose bool `json:"verbose"`

	// Environment holds key-value pairs exposed to the
	// benchmark through GetEnv.
	Environment map[string]string `json:"environment"`
}

// NewConfig creates a Config with sensible defaults, then applies
// BENCHMARKS_* environment overrides.
func NewConfig(id ID) *Config {
	c := &Config{
		BenchmarkID: id,
		Trials:      3,
		Warmup:      1,
		ResultsDir:  "results",
		LogsDir:     "logs",
		Timeout:     5 * time.Minute,
		Environment: make(map[string]string),
	}
	c.applyEnvOverrides()
	return c
}

// applyEnvOverrides applies BENCHMARKS_* environment variables on
// top of the defaults. Unparseable values are ignored; the default
// stands.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("BENCHMARKS_TRIALS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Trials = n
		}
	}
	if v := os.Getenv("BENCHMARKS_WARMUP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.Warmup = n
		}
	}
	if v := os.Getenv("BENCHMARKS_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.Timeout = d
		}
	}
	if v := os.Getenv("BENCHMARKS_STALE_THRESHOLD"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.StaleThreshold = d
		}
	}
	if v := os.Getenv("BENCHMARKS_RESULTS_DIR"); v != "" {
		c.ResultsDir = v
	}
	if v := os.Getenv("BENCHMARKS_LOGS_DIR"); v != "" {
		c.LogsDir = v
	}
}

// GetEnv returns the value of an environment variable from the
// config, or the fallback if not set.
func (c *Config) GetEnv(key, fallback string) string {
	if c.Environment == nil {
		return fallback
	}
	if v, ok := c.Environment[key]; ok {
		return v
	}
	return fallback
}

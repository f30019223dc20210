package benchmark

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig("write-throughput")
	require.NotNil(t, cfg)

	assert.Equal(t, ID("write-throughput"), cfg.BenchmarkID)
	assert.Equal(t, 3, cfg.Trials)
	assert.Equal(t, 1, cfg.Warmup)
	assert.Equal(t, "results", cfg.ResultsDir)
	assert.Equal(t, "logs", cfg.LogsDir)
	assert.Equal(t, 5*time.Minute, cfg.Timeout)
	assert.Zero(t, cfg.StaleThreshold)
	assert.NotNil(t, cfg.Environment)
	assert.Empty(t, cfg.Environment)
	assert.False(t, cfg.Verbose)
}

func TestNewConfig_EnvOverrides(t *testing.T) {
	t.Setenv("BENCHMARKS_TRIALS", "7")
	t.Setenv("BENCHMARKS_WARMUP", "0")
	t.Setenv("BENCHMARKS_TIMEOUT", "90s")
	t.Setenv("BENCHMARKS_STALE_THRESHOLD", "20s")
	t.Setenv("BENCHMARKS_RESULTS_DIR", "/tmp/bench-results")

	cfg := NewConfig("write-throughput")

	assert.Equal(t, 7, cfg.Trials)
	assert.Equal(t, 0, cfg.Warmup)
	assert.Equal(t, 90*time.Second, cfg.Timeout)
	assert.Equal(t, 20*time.Second, cfg.StaleThreshold)
	assert.Equal(t, "/tmp/bench-results", cfg.ResultsDir)
}

func TestNewConfig_EnvOverrides_InvalidIgnored(t *testing.T) {
	t.Setenv("BENCHMARKS_TRIALS", "zero")
	t.Setenv("BENCHMARKS_TIMEOUT", "soon")

	cfg := NewConfig("write-throughput")

	assert.Equal(t, 3, cfg.Trials)
	assert.Equal(t, 5*time.Minute, cfg.Timeout)
}

func TestNewConfig_EnvOverrides_NonPositiveTrialsIgnored(t *testing.T) {
	t.Setenv("BENCHMARKS_TRIALS", "0")

	cfg := NewConfig("write-throughput")

	assert.Equal(t, 3, cfg.Trials)
}

func TestConfig_GetEnv_Found(t *testing.T) {
	cfg := &Config{
		Environment: map[string]string{
			"TARGET_URL": "http://localhost:8080",
			"TOKEN":      "abc123",
		},
	}
	assert.Equal(t, "http://localhost:8080",
		cfg.GetEnv("TARGET_URL", "default"))
	assert.Equal(t, "abc123", cfg.GetEnv("TOKEN", "default"))
}

func TestConfig_GetEnv_NotFound(t *testing.T) {
	cfg := &Config{
		Environment: map[string]string{
			"TARGET_URL": "http://localhost:8080",
		},
	}
	assert.Equal(t, "default_value",
		cfg.GetEnv("MISSING_KEY", "default_value"))
}

func TestConfig_GetEnv_NilEnvironment(t *testing.T) {
	cfg := &Config{Environment: nil}
	assert.Equal(t, "fallback", cfg.GetEnv("ANY_KEY", "fallback"))
}

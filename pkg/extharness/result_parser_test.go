package extharness

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSamplesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "samples.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseSamplesFile(t *testing.T) {
	path := writeSamplesFile(t, `{
		"benchmark_id": "disk_io",
		"samples": {
			"ops": [
				{"value": 5000, "elapsed_ns": 1000000000},
				{"value": 6000, "elapsed_ns": 2000000000}
			],
			"errors": [
				{"value": 0, "elapsed_ns": 1000000000},
				{"value": 1, "elapsed_ns": 2000000000}
			]
		}
	}`)

	samples, err := ParseSamplesFile(path)
	require.NoError(t, err)
	require.Len(t, samples, 2)

	ops := samples["ops"]
	require.Len(t, ops, 2)
	assert.Equal(t, "ops", ops[0].CounterName)
	assert.Equal(t, int64(5000), ops[0].Value)
	assert.Equal(t, time.Second, ops[0].Elapsed)
	assert.Equal(t, int64(6000), ops[1].Value)
	assert.Equal(t, 2*time.Second, ops[1].Elapsed)

	errs := samples["errors"]
	require.Len(t, errs, 2)
	assert.Equal(t, int64(0), errs[0].Value)
}

func TestParseSamplesFile_NotFound(t *testing.T) {
	_, err := ParseSamplesFile("/nonexistent/samples.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read samples file")
}

func TestParseSamplesFile_InvalidJSON(t *testing.T) {
	path := writeSamplesFile(t, "not json")
	_, err := ParseSamplesFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse samples file")
}

func TestParseSamplesFile_NegativeValue(t *testing.T) {
	path := writeSamplesFile(t, `{
		"samples": {
			"ops": [{"value": -1, "elapsed_ns": 1000}]
		}
	}`)
	_, err := ParseSamplesFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative value")
}

func TestParseSamplesFile_ZeroElapsed(t *testing.T) {
	path := writeSamplesFile(t, `{
		"samples": {
			"ops": [{"value": 10, "elapsed_ns": 0}]
		}
	}`)
	_, err := ParseSamplesFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-positive elapsed")
}

func TestParseSamplesFile_Empty(t *testing.T) {
	path := writeSamplesFile(t, `{"samples": {}}`)
	samples, err := ParseSamplesFile(path)
	require.NoError(t, err)
	assert.Empty(t, samples)
}

func TestResultToMetrics(t *testing.T) {
	r := &RunResult{
		ExitCode: 0,
		Duration: 2500 * time.Millisecond,
	}

	metrics := ResultToMetrics(r)
	assert.Equal(t, float64(2500), metrics["harness_duration_ms"].Value)
	assert.Equal(t, "ms", metrics["harness_duration_ms"].Unit)
	assert.Equal(t, float64(0), metrics["harness_exit_code"].Value)
}

func TestResultToMetrics_Nil(t *testing.T) {
	metrics := ResultToMetrics(nil)
	assert.Empty(t, metrics)
}

package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.benchmarks/pkg/benchmark"
)

func TestHTMLReporter_GenerateReport(t *testing.T) {
	r := NewHTMLReporter(t.TempDir())

	data, err := r.GenerateReport(testResult(t, false))
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, "Benchmark Report: Disk IO")
	assert.Contains(t, out, "disk_io")
	assert.Contains(t, out, "run-123")
	assert.Contains(t, out, "PASSED")
	assert.Contains(t, out, "<h2>Statistics</h2>")
	assert.Contains(t, out, "<h2>Assertions</h2>")
	assert.Contains(t, out, "Pass Rate:</strong> 2/2 (100%)")
	assert.Contains(t, out, "trials.jsonl")
	assert.Contains(t, out, "</html>")
}

func TestHTMLReporter_GenerateReport_Failed(t *testing.T) {
	r := NewHTMLReporter(t.TempDir())

	data, err := r.GenerateReport(testResult(t, true))
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "FAILED")
	assert.Contains(t, out, "→ FAIL")
	assert.Contains(t, out, "Pass Rate:</strong> 1/2 (50%)")
}

func TestHTMLReporter_GenerateReport_EscapesHTML(t *testing.T) {
	r := NewHTMLReporter(t.TempDir())
	result := testResult(t, false)
	result.BenchmarkName = "<script>alert(1)</script>"

	data, err := r.GenerateReport(result)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "<script>alert")
	assert.Contains(t, string(data), "&lt;script&gt;")
}

func TestHTMLReporter_GenerateReport_WithError(t *testing.T) {
	r := NewHTMLReporter(t.TempDir())
	result := testResult(t, false)
	result.Status = benchmark.StatusError
	result.Error = "setup exploded"

	data, err := r.GenerateReport(result)
	require.NoError(t, err)
	assert.Contains(t, string(data), "setup exploded")
}

func TestHTMLReporter_GenerateReport_NoVerdicts(t *testing.T) {
	r := NewHTMLReporter(t.TempDir())
	result := testResult(t, false)
	result.Report.Verdicts = nil

	data, err := r.GenerateReport(result)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "<h2>Assertions</h2>")
}

func TestHTMLReporter_GenerateMasterSummary(t *testing.T) {
	r := NewHTMLReporter(t.TempDir())
	results := []*benchmark.Result{
		testResult(t, false),
		testResult(t, true),
	}

	data, err := r.GenerateMasterSummary(results)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "Master Summary")
	assert.Contains(t, out, "<td>Passed</td><td>1</td>")
	assert.Contains(t, out, "<td>Failed</td><td>1</td>")
	assert.Contains(t, out, "50%")
	// the failed run's messages are listed in the details
	assert.Contains(t, out, "→ FAIL")
}

func TestHTMLReporter_GenerateMasterSummary_Empty(t *testing.T) {
	r := NewHTMLReporter(t.TempDir())

	data, err := r.GenerateMasterSummary(nil)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<td>Total Benchmarks</td>")
	assert.NotContains(t, string(data), "Pass Rate")
}

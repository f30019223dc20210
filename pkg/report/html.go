package report

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"sort"
	"strings"
	"time"

	"digital.vasic.benchmarks/pkg/benchmark"
)

// HTMLReporter generates HTML reports from benchmark results.
type HTMLReporter struct {
	outputDir string
}

// NewHTMLReporter creates a new HTML reporter.
func NewHTMLReporter(outputDir string) *HTMLReporter {
	return &HTMLReporter{outputDir: outputDir}
}

// GenerateReport creates an HTML report for a single benchmark
// result.
func (r *HTMLReporter) GenerateReport(
	result *benchmark.Result,
) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.WriteReport(&buf, result); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteReport writes an HTML report to the specified writer.
func (r *HTMLReporter) WriteReport(
	w io.Writer,
	result *benchmark.Result,
) error {
	r.writeHeader(w, "Benchmark Report: "+result.BenchmarkName)

	fmt.Fprintf(
		w,
		"<h1>Benchmark Report: %s</h1>\n",
		html.EscapeString(result.BenchmarkName),
	)
	fmt.Fprintf(
		w,
		"<p><strong>Benchmark ID:</strong> %s</p>\n",
		html.EscapeString(string(result.BenchmarkID)),
	)
	fmt.Fprintf(
		w,
		"<p><strong>Run ID:</strong> %s</p>\n",
		html.EscapeString(result.RunID),
	)
	fmt.Fprintf(
		w,
		"<p><strong>Generated:</strong> %s</p>\n",
		result.EndTime.Format(time.RFC3339),
	)

	r.writeSummaryTable(w, result)
	r.writeStatisticsSection(w, result)
	r.writeVerdictsSection(w, result)
	r.writeMetricsSection(w, result)
	r.writeLogsSection(w, result)

	r.writeFooter(w)
	return nil
}

func (r *HTMLReporter) writeSummaryTable(
	w io.Writer,
	result *benchmark.Result,
) {
	statusClass := "status-passed"
	if result.Status != benchmark.StatusPassed {
		statusClass = "status-failed"
	}

	fmt.Fprintln(w, "<h2>Summary</h2>")
	fmt.Fprintln(w, "<table>")
	fmt.Fprintln(w, "<tr><th>Metric</th><th>Value</th></tr>")
	fmt.Fprintf(
		w,
		"<tr><td>Status</td><td class=\"%s\">"+
			"<strong>%s</strong></td></tr>\n",
		statusClass, strings.ToUpper(result.Status),
	)
	fmt.Fprintf(
		w,
		"<tr><td>Start Time</td><td>%s</td></tr>\n",
		result.StartTime.Format(time.RFC3339),
	)
	fmt.Fprintf(
		w,
		"<tr><td>End Time</td><td>%s</td></tr>\n",
		result.EndTime.Format(time.RFC3339),
	)
	fmt.Fprintf(
		w,
		"<tr><td>Duration</td><td>%v</td></tr>\n",
		result.Duration,
	)
	fmt.Fprintf(
		w,
		"<tr><td>Trials</td><td>%d</td></tr>\n",
		result.Trials,
	)
	fmt.Fprintf(
		w,
		"<tr><td>Warmup</td><td>%d</td></tr>\n",
		result.Warmup,
	)

	if result.Error != "" {
		fmt.Fprintf(
			w,
			"<tr><td>Error</td>"+
				"<td class=\"status-failed\">%s</td></tr>\n",
			html.EscapeString(result.Error),
		)
	}

	fmt.Fprintln(w, "</table>")
}

func (r *HTMLReporter) writeStatisticsSection(
	w io.Writer,
	result *benchmark.Result,
) {
	if len(result.Statistics) == 0 {
		return
	}

	names := make([]string, 0, len(result.Statistics))
	for name := range result.Statistics {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "<h2>Statistics</h2>")
	fmt.Fprintln(w, "<table>")
	fmt.Fprintln(
		w,
		"<tr><th>Counter</th><th>Trials</th>"+
			"<th>Avg Rate (ops/sec)</th>"+
			"<th>Avg Total</th>"+
			"<th>Min/Max Rate</th>"+
			"<th>Min/Max Total</th></tr>",
	)

	for _, name := range names {
		s := result.Statistics[name]
		fmt.Fprintf(
			w,
			"<tr><td>%s</td><td>%d</td>"+
				"<td>%.2f</td><td>%.2f</td>"+
				"<td>%.2f / %.2f</td>"+
				"<td>%d / %d</td></tr>\n",
			html.EscapeString(name), s.Trials,
			s.AverageRate, s.AverageTotal,
			s.MinRate, s.MaxRate,
			s.MinTotal, s.MaxTotal,
		)
	}

	fmt.Fprintln(w, "</table>")
}

func (r *HTMLReporter) writeVerdictsSection(
	w io.Writer,
	result *benchmark.Result,
) {
	if result.Report.Len() == 0 {
		return
	}

	fmt.Fprintln(w, "<h2>Assertions</h2>")
	fmt.Fprintln(w, "<table>")
	fmt.Fprintln(
		w,
		"<tr><th>Counter</th><th>Kind</th>"+
			"<th>Observed</th><th>Passed</th>"+
			"<th>Message</th></tr>",
	)

	passedCount := 0
	for _, v := range result.Report.Verdicts {
		passedStr := "No"
		cls := "status-failed"
		if v.Pass {
			passedStr = "Yes"
			cls = "status-passed"
			passedCount++
		}
		fmt.Fprintf(
			w,
			"<tr><td>%s</td><td>%s</td>"+
				"<td>%.2f</td>"+
				"<td class=\"%s\">%s</td>"+
				"<td>%s</td></tr>\n",
			html.EscapeString(v.Spec.CounterName),
			html.EscapeString(string(v.Spec.Kind)),
			v.Observed,
			cls, passedStr,
			html.EscapeString(v.Message),
		)
	}

	fmt.Fprintln(w, "</table>")

	total := result.Report.Len()
	pct := float64(passedCount) / float64(total) * 100
	fmt.Fprintf(
		w,
		"<p><strong>Pass Rate:</strong> %d/%d (%.0f%%)</p>\n",
		passedCount, total, pct,
	)
}

func (r *HTMLReporter) writeMetricsSection(
	w io.Writer,
	result *benchmark.Result,
) {
	if len(result.Metrics) == 0 {
		return
	}

	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "<h2>Metrics</h2>")
	fmt.Fprintln(w, "<table>")
	fmt.Fprintln(
		w,
		"<tr><th>Metric</th><th>Value</th>"+
			"<th>Unit</th></tr>",
	)

	for _, name := range names {
		m := result.Metrics[name]
		unit := m.Unit
		if unit == "" {
			unit = "-"
		}
		fmt.Fprintf(
			w,
			"<tr><td>%s</td><td>%.2f</td>"+
				"<td>%s</td></tr>\n",
			html.EscapeString(m.Name), m.Value,
			html.EscapeString(unit),
		)
	}

	fmt.Fprintln(w, "</table>")
}

func (r *HTMLReporter) writeLogsSection(
	w io.Writer,
	result *benchmark.Result,
) {
	fmt.Fprintln(w, "<h2>Log Files</h2>")
	fmt.Fprintln(w, "<table>")
	fmt.Fprintln(
		w, "<tr><th>Log Type</th><th>Path</th></tr>",
	)

	fmt.Fprintf(
		w,
		"<tr><td>Benchmark Log</td>"+
			"<td><code>%s</code></td></tr>\n",
		html.EscapeString(result.Logs.BenchmarkLog),
	)
	if result.Logs.TrialLog != "" {
		fmt.Fprintf(
			w,
			"<tr><td>Trial Log</td>"+
				"<td><code>%s</code></td></tr>\n",
			html.EscapeString(result.Logs.TrialLog),
		)
	}

	fmt.Fprintln(w, "</table>")
}

// GenerateMasterSummary creates an HTML summary of all
// benchmark results.
func (r *HTMLReporter) GenerateMasterSummary(
	results []*benchmark.Result,
) ([]byte, error) {
	var buf bytes.Buffer

	r.writeHeader(
		&buf, "Benchmarks Framework - Master Summary",
	)

	fmt.Fprintln(
		&buf,
		"<h1>Benchmarks Framework - Master Summary</h1>",
	)
	fmt.Fprintf(
		&buf,
		"<p><strong>Generated:</strong> %s</p>\n",
		time.Now().Format(time.RFC3339),
	)

	r.writeMasterOverview(&buf, results)
	r.writeMasterStats(&buf, results)
	r.writeMasterDetails(&buf, results)
	r.writeFooter(&buf)

	return buf.Bytes(), nil
}

func (r *HTMLReporter) writeMasterOverview(
	w io.Writer,
	results []*benchmark.Result,
) {
	fmt.Fprintln(w, "<h2>Overview</h2>")
	fmt.Fprintln(w, "<table>")
	fmt.Fprintln(
		w,
		"<tr><th>Benchmark</th><th>Status</th>"+
			"<th>Duration</th><th>Last Run</th></tr>",
	)

	for _, result := range results {
		cls := "status-passed"
		if result.Status != benchmark.StatusPassed {
			cls = "status-failed"
		}
		fmt.Fprintf(
			w,
			"<tr><td>%s</td>"+
				"<td class=\"%s\">%s</td>"+
				"<td>%v</td><td>%s</td></tr>\n",
			html.EscapeString(result.BenchmarkName),
			cls, strings.ToUpper(result.Status),
			result.Duration,
			result.EndTime.Format("2006-01-02 15:04:05"),
		)
	}

	fmt.Fprintln(w, "</table>")
}

func (r *HTMLReporter) writeMasterStats(
	w io.Writer,
	results []*benchmark.Result,
) {
	passedCount := 0
	totalDuration := time.Duration(0)
	for _, res := range results {
		if res.Status == benchmark.StatusPassed {
			passedCount++
		}
		totalDuration += res.Duration
	}

	fmt.Fprintln(w, "<h2>Statistics</h2>")
	fmt.Fprintln(w, "<table>")
	fmt.Fprintln(w, "<tr><th>Metric</th><th>Value</th></tr>")
	fmt.Fprintf(
		w,
		"<tr><td>Total Benchmarks</td>"+
			"<td>%d</td></tr>\n",
		len(results),
	)
	fmt.Fprintf(
		w,
		"<tr><td>Passed</td><td>%d</td></tr>\n",
		passedCount,
	)
	fmt.Fprintf(
		w,
		"<tr><td>Failed</td><td>%d</td></tr>\n",
		len(results)-passedCount,
	)

	if len(results) > 0 {
		pct := float64(passedCount) /
			float64(len(results)) * 100
		fmt.Fprintf(
			w,
			"<tr><td>Pass Rate</td>"+
				"<td>%.0f%%</td></tr>\n",
			pct,
		)
	}

	fmt.Fprintf(
		w,
		"<tr><td>Total Duration</td>"+
			"<td>%v</td></tr>\n",
		totalDuration,
	)
	fmt.Fprintln(w, "</table>")
}

func (r *HTMLReporter) writeMasterDetails(
	w io.Writer,
	results []*benchmark.Result,
) {
	fmt.Fprintln(w, "<h2>Benchmark Details</h2>")

	for _, result := range results {
		fmt.Fprintf(
			w,
			"<h3>%s</h3>\n",
			html.EscapeString(result.BenchmarkName),
		)
		fmt.Fprintf(
			w,
			"<p><strong>Status:</strong> %s</p>\n",
			strings.ToUpper(result.Status),
		)
		fmt.Fprintf(
			w,
			"<p><strong>Duration:</strong> %v</p>\n",
			result.Duration,
		)

		if failed := result.Report.Failed(); len(failed) > 0 {
			fmt.Fprintln(w, "<ul>")
			for _, v := range failed {
				fmt.Fprintf(
					w,
					"<li class=\"status-failed\">%s</li>\n",
					html.EscapeString(v.Message),
				)
			}
			fmt.Fprintln(w, "</ul>")
		}

		if result.Error != "" {
			fmt.Fprintf(
				w,
				"<p><strong>Error:</strong> %s</p>\n",
				html.EscapeString(result.Error),
			)
		}
	}
}

func (r *HTMLReporter) writeHeader(w io.Writer, title string) {
	fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s</title>
<style>
body {
  font-family: -apple-system, BlinkMacSystemFont,
    "Segoe UI", Roboto, sans-serif;
  max-width: 960px;
  margin: 0 auto;
  padding: 20px;
  color: #333;
  background: #f9f9f9;
}
h1 { color: #2c3e50; border-bottom: 2px solid #3498db; padding-bottom: 10px; }
h2 { color: #2c3e50; margin-top: 30px; }
h3 { color: #34495e; }
table {
  border-collapse: collapse;
  width: 100%%;
  margin: 10px 0;
  background: #fff;
}
th, td {
  border: 1px solid #ddd;
  padding: 8px 12px;
  text-align: left;
}
th { background: #3498db; color: #fff; }
tr:nth-child(even) { background: #f2f2f2; }
.status-passed { color: #27ae60; font-weight: bold; }
.status-failed { color: #e74c3c; font-weight: bold; }
code {
  background: #ecf0f1;
  padding: 2px 6px;
  border-radius: 3px;
  font-size: 0.9em;
}
footer {
  margin-top: 40px;
  padding-top: 10px;
  border-top: 1px solid #ddd;
  color: #7f8c8d;
  font-size: 0.9em;
}
</style>
</head>
<body>
`, html.EscapeString(title))
}

func (r *HTMLReporter) writeFooter(w io.Writer) {
	fmt.Fprintln(w, "<footer>")
	fmt.Fprintln(
		w, "<p>Generated by Benchmarks Framework</p>",
	)
	fmt.Fprintln(w, "</footer>")
	fmt.Fprintln(w, "</body>")
	fmt.Fprintln(w, "</html>")
}

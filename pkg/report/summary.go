package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"digital.vasic.benchmarks/pkg/benchmark"
)

// MasterSummary represents an aggregated summary of all
// benchmark runs.
type MasterSummary struct {
	ID               string             `json:"id"`
	GeneratedAt      time.Time          `json:"generated_at"`
	Benchmarks       []BenchmarkSummary `json:"benchmarks"`
	TotalBenchmarks  int                `json:"total_benchmarks"`
	PassedBenchmarks int                `json:"passed_benchmarks"`
	FailedBenchmarks int                `json:"failed_benchmarks"`
	TotalDuration    time.Duration      `json:"total_duration"`
	AveragePassRate  float64            `json:"average_pass_rate"`
}

// BenchmarkSummary represents a summary of a single benchmark run.
type BenchmarkSummary struct {
	BenchmarkID    benchmark.ID  `json:"benchmark_id"`
	BenchmarkName  string        `json:"benchmark_name"`
	Status         string        `json:"status"`
	Duration       time.Duration `json:"duration"`
	Trials         int           `json:"trials"`
	VerdictsPassed int           `json:"verdicts_passed"`
	VerdictsTotal  int           `json:"verdicts_total"`
	ResultsPath    string        `json:"results_path"`
}

// BuildMasterSummary creates a master summary from benchmark
// results.
func BuildMasterSummary(
	results []*benchmark.Result,
) *MasterSummary {
	summary := &MasterSummary{
		ID: fmt.Sprintf(
			"summary_%s",
			time.Now().Format("20060102_150405"),
		),
		GeneratedAt: time.Now(),
		Benchmarks: make(
			[]BenchmarkSummary, 0, len(results),
		),
	}

	for _, r := range results {
		verdictsPassed := 0
		for _, v := range r.Report.Verdicts {
			if v.Pass {
				verdictsPassed++
			}
		}

		bs := BenchmarkSummary{
			BenchmarkID:    r.BenchmarkID,
			BenchmarkName:  r.BenchmarkName,
			Status:         r.Status,
			Duration:       r.Duration,
			Trials:         r.Trials,
			VerdictsPassed: verdictsPassed,
			VerdictsTotal:  r.Report.Len(),
		}

		summary.Benchmarks = append(summary.Benchmarks, bs)
		summary.TotalBenchmarks++
		summary.TotalDuration += r.Duration

		if r.Status == benchmark.StatusPassed {
			summary.PassedBenchmarks++
		} else {
			summary.FailedBenchmarks++
		}
	}

	if summary.TotalBenchmarks > 0 {
		summary.AveragePassRate =
			float64(summary.PassedBenchmarks) /
				float64(summary.TotalBenchmarks)
	}

	return summary
}

// SaveMasterSummary saves the master summary to both JSON and
// Markdown files in the given output directory.
func SaveMasterSummary(
	summary *MasterSummary,
	outputDir string,
) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf(
			"failed to create output directory: %w", err,
		)
	}

	ts := summary.GeneratedAt.Format("20060102_150405")

	jsonPath := filepath.Join(
		outputDir,
		fmt.Sprintf("master_summary_%s.json", ts),
	)
	jsonData, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf(
			"failed to marshal summary: %w", err,
		)
	}
	if err := os.WriteFile(jsonPath, jsonData, 0644); err != nil {
		return fmt.Errorf(
			"failed to write JSON summary: %w", err,
		)
	}

	mdPath := filepath.Join(
		outputDir,
		fmt.Sprintf("master_summary_%s.md", ts),
	)
	mdContent := generateSummaryMarkdown(summary)
	if err := os.WriteFile(
		mdPath, []byte(mdContent), 0644,
	); err != nil {
		return fmt.Errorf(
			"failed to write Markdown summary: %w", err,
		)
	}

	latestJSON := filepath.Join(outputDir, "latest_summary.json")
	latestMD := filepath.Join(outputDir, "latest_summary.md")

	_ = os.Remove(latestJSON)
	_ = os.Remove(latestMD)
	_ = os.Symlink(filepath.Base(jsonPath), latestJSON)
	_ = os.Symlink(filepath.Base(mdPath), latestMD)

	return nil
}

// generateSummaryMarkdown creates markdown from a master
// summary.
func generateSummaryMarkdown(summary *MasterSummary) string {
	var sb strings.Builder

	sb.WriteString(
		"# Benchmarks Framework - Master Summary\n\n",
	)
	sb.WriteString(
		fmt.Sprintf(
			"**Summary ID:** %s\n\n", summary.ID,
		),
	)
	sb.WriteString(
		fmt.Sprintf(
			"**Generated:** %s\n\n",
			summary.GeneratedAt.Format(time.RFC3339),
		),
	)

	sb.WriteString("## Overview\n\n")
	sb.WriteString(
		"| Benchmark | Status | Duration " +
			"| Trials | Assertions |\n",
	)
	sb.WriteString(
		"|-----------|--------|----------" +
			"|--------|------------|\n",
	)

	for _, b := range summary.Benchmarks {
		status := strings.ToUpper(b.Status)
		verdicts := fmt.Sprintf(
			"%d/%d", b.VerdictsPassed, b.VerdictsTotal,
		)
		sb.WriteString(
			fmt.Sprintf(
				"| %s | %s | %v | %d | %s |\n",
				b.BenchmarkName, status,
				b.Duration, b.Trials, verdicts,
			),
		)
	}

	sb.WriteString("\n## Statistics\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(
		fmt.Sprintf(
			"| Total Benchmarks | %d |\n",
			summary.TotalBenchmarks,
		),
	)
	sb.WriteString(
		fmt.Sprintf(
			"| Passed | %d |\n", summary.PassedBenchmarks,
		),
	)
	sb.WriteString(
		fmt.Sprintf(
			"| Failed | %d |\n", summary.FailedBenchmarks,
		),
	)
	sb.WriteString(
		fmt.Sprintf(
			"| Pass Rate | %.0f%% |\n",
			summary.AveragePassRate*100,
		),
	)
	sb.WriteString(
		fmt.Sprintf(
			"| Total Duration | %v |\n",
			summary.TotalDuration,
		),
	)

	sb.WriteString("\n---\n\n")
	sb.WriteString("*Generated by Benchmarks Framework*\n")

	return sb.String()
}

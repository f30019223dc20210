// Package extharness integrates externally-executed benchmark
// harnesses with the framework. A harness runs benchmark bodies
// out of process, writes per-counter trial samples to a JSON
// file, and this package adapts that output into the framework's
// sample and assertion pipeline.
package extharness

import "time"

// RunResult captures the complete output of one harness
// execution: process outcome, captured streams, and the artifact
// paths discovered in the output directory.
type RunResult struct {
	// ExitCode is the process exit code (0 = success).
	ExitCode int `json:"exit_code"`

	// SamplesFile is the path to the per-counter trial samples
	// JSON file, if the harness produced one.
	SamplesFile string `json:"samples_file,omitempty"`

	// ReportJSON is the path to the harness's own JSON report,
	// if generated.
	ReportJSON string `json:"report_json,omitempty"`

	// Stdout is the captured standard output.
	Stdout string `json:"stdout"`

	// Stderr is the captured standard error.
	Stderr string `json:"stderr"`

	// Duration is the total harness execution time.
	Duration time.Duration `json:"duration"`
}

// HarnessConfig mirrors the harness configuration structure for
// programmatic generation without importing the harness itself.
type HarnessConfig struct {
	Name       string             `yaml:"name"`
	Output     string             `yaml:"output"`
	Benchmarks []HarnessBenchmark `yaml:"benchmarks"`
	Settings   HarnessSettings    `yaml:"settings"`
}

// HarnessBenchmark defines a single workload the harness runs.
type HarnessBenchmark struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name,omitempty"`
	Command  string            `yaml:"command"`
	Args     []string          `yaml:"args,omitempty"`
	Trials   int               `yaml:"trials"`
	Warmup   int               `yaml:"warmup,omitempty"`
	Counters []string          `yaml:"counters"`
	Timeout  int               `yaml:"timeout,omitempty"`
	Env      map[string]string `yaml:"environment,omitempty"`
}

// HarnessSettings holds harness execution settings.
type HarnessSettings struct {
	LogLevel      string `yaml:"log_level,omitempty"`
	KeepArtifacts bool   `yaml:"keep_artifacts"`
	SamplesFile   string `yaml:"samples_file,omitempty"`
}

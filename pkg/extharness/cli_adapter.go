package extharness

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// commandFunc is the function used to create exec.Cmd instances.
// It can be overridden in tests for dependency injection.
var commandFunc = exec.CommandContext

// CLIAdapter runs the external harness as a subprocess so the
// harness's own dependency tree never leaks into this module.
type CLIAdapter struct {
	binaryPath string
	workDir    string
	env        map[string]string
}

// NewCLIAdapter creates a CLIAdapter pointing to the given
// harness binary.
func NewCLIAdapter(binaryPath string) *CLIAdapter {
	return &CLIAdapter{
		binaryPath: binaryPath,
		env:        make(map[string]string),
	}
}

// SetWorkDir sets the working directory for harness execution.
func (a *CLIAdapter) SetWorkDir(dir string) {
	a.workDir = dir
}

// SetEnv sets an environment variable for harness execution.
func (a *CLIAdapter) SetEnv(key, value string) {
	a.env[key] = value
}

// Run executes `<harness> run <configPath>` as a subprocess,
// captures stdout/stderr, scans the output directory for the
// samples file and report, and returns a RunResult.
func (a *CLIAdapter) Run(
	ctx context.Context,
	configPath string,
	opts ...RunOption,
) (*RunResult, error) {
	cfg := resolveRunConfig(opts)

	args := []string{"run", configPath}
	if cfg.verbose {
		args = append(args, "--verbose")
	}
	if cfg.outputDir != "" {
		args = append(args, "--output", cfg.outputDir)
	}

	timeout := cfg.timeout
	if timeout == 0 {
		timeout = 10 * time.Minute
	}

	execCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := commandFunc(execCtx, a.binaryPath, args...)
	if a.workDir != "" {
		cmd.Dir = a.workDir
	}

	cmd.Env = os.Environ()
	for k, v := range a.env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
	}
	for k, v := range cfg.env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)

	result := &RunResult{
		Stdout:   strings.TrimSpace(stdout.String()),
		Stderr:   strings.TrimSpace(stderr.String()),
		Duration: duration,
	}

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
		} else {
			return result, fmt.Errorf(
				"harness execution failed: %w", err,
			)
		}
	}

	outputDir := cfg.outputDir
	if outputDir == "" {
		outputDir = a.guessOutputDir(configPath)
	}
	if outputDir != "" {
		a.scanArtifacts(outputDir, result)
	}

	return result, nil
}

// Version returns the harness binary version by running
// `<harness> --version`.
func (a *CLIAdapter) Version(
	ctx context.Context,
) (string, error) {
	cmd := commandFunc(ctx, a.binaryPath, "--version")

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf(
			"failed to get harness version: %w", err,
		)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// Available checks if the harness binary exists and is
// executable.
func (a *CLIAdapter) Available(ctx context.Context) bool {
	info, err := os.Stat(a.binaryPath)
	if err != nil {
		return false
	}
	return !info.IsDir() && info.Mode()&0111 != 0
}

// guessOutputDir tries to extract the output directory from a
// harness config file by looking for the "output:" YAML key.
func (a *CLIAdapter) guessOutputDir(
	configPath string,
) string {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "output:") {
			val := strings.TrimPrefix(trimmed, "output:")
			val = strings.TrimSpace(val)
			val = strings.Trim(val, `"'`)
			return val
		}
	}
	return ""
}

// scanArtifacts walks the output directory to find the samples
// file and the harness report.
func (a *CLIAdapter) scanArtifacts(
	dir string,
	result *RunResult,
) {
	_ = filepath.Walk(dir, func(
		path string, info os.FileInfo, err error,
	) error {
		if err != nil || info.IsDir() {
			return nil
		}
		switch info.Name() {
		case "samples.json":
			result.SamplesFile = path
		case "report.json":
			result.ReportJSON = path
		}
		return nil
	})
}

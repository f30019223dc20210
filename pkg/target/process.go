package target

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"sync"
	"time"

	"digital.vasic.benchmarks/pkg/httpclient"
)

// ProcessProvider runs the target as a child process and polls an
// HTTP health endpoint until it responds.
type ProcessProvider struct {
	mu sync.Mutex

	command      string
	args         []string
	env          map[string]string
	workDir      string
	healthURL    string
	healthPath   string
	pollInterval time.Duration
	stopTimeout  time.Duration

	client *httpclient.Client
	cmd    *exec.Cmd
}

// ProcessOption configures a ProcessProvider.
type ProcessOption func(*ProcessProvider)

// WithArgs sets the command arguments.
func WithArgs(args ...string) ProcessOption {
	return func(p *ProcessProvider) { p.args = args }
}

// WithEnv adds an environment variable for the target process.
func WithEnv(key, value string) ProcessOption {
	return func(p *ProcessProvider) { p.env[key] = value }
}

// WithWorkDir sets the working directory.
func WithWorkDir(dir string) ProcessOption {
	return func(p *ProcessProvider) { p.workDir = dir }
}

// WithHealthPath overrides the health endpoint path.
func WithHealthPath(path string) ProcessOption {
	return func(p *ProcessProvider) { p.healthPath = path }
}

// WithPollInterval overrides the health poll interval.
func WithPollInterval(d time.Duration) ProcessOption {
	return func(p *ProcessProvider) { p.pollInterval = d }
}

// WithStopTimeout overrides how long Stop waits for a graceful
// exit before killing the process.
func WithStopTimeout(d time.Duration) ProcessOption {
	return func(p *ProcessProvider) { p.stopTimeout = d }
}

// NewProcessProvider creates a provider that launches command and
// polls healthURL until the target answers.
func NewProcessProvider(
	command, healthURL string,
	opts ...ProcessOption,
) *ProcessProvider {
	p := &ProcessProvider{
		command:      command,
		env:          make(map[string]string),
		healthURL:    healthURL,
		healthPath:   "/health",
		pollInterval: 250 * time.Millisecond,
		stopTimeout:  5 * time.Second,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.client = httpclient.NewClient(
		p.healthURL,
		httpclient.WithTimeout(2*time.Second),
	)
	return p
}

// Start launches the target process.
func (p *ProcessProvider) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cmd != nil {
		return fmt.Errorf("target %s already started", p.command)
	}

	cmd := exec.CommandContext(ctx, p.command, p.args...)
	if p.workDir != "" {
		cmd.Dir = p.workDir
	}
	cmd.Env = os.Environ()
	for k, v := range p.env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf(
			"start target %s: %w", p.command, err,
		)
	}
	p.cmd = cmd
	return nil
}

// WaitHealthy polls the health endpoint until it returns HTTP 200
// or the context expires.
func (p *ProcessProvider) WaitHealthy(ctx context.Context) error {
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		code, _, err := p.client.GetRaw(ctx, p.healthPath)
		if err == nil && code == http.StatusOK {
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf(
				"target %s never became healthy: %w",
				p.command, ctx.Err(),
			)
		case <-ticker.C:
		}
	}
}

// Stop signals the target to exit and kills it if it does not
// stop within the configured timeout.
func (p *ProcessProvider) Stop(_ context.Context) error {
	p.mu.Lock()
	cmd := p.cmd
	p.cmd = nil
	p.mu.Unlock()

	if cmd == nil || cmd.Process == nil {
		return nil
	}

	// Ask nicely first.
	_ = cmd.Process.Signal(os.Interrupt)

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case <-done:
		return nil
	case <-time.After(p.stopTimeout):
		if err := cmd.Process.Kill(); err != nil {
			return fmt.Errorf(
				"kill target %s: %w", p.command, err,
			)
		}
		<-done
		return nil
	}
}

// Running reports whether the child process has been started and
// has not exited.
func (p *ProcessProvider) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cmd == nil || p.cmd.Process == nil {
		return false
	}
	return p.cmd.ProcessState == nil
}

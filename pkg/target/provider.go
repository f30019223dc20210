// Package target manages the lifecycle of the system under test.
// Benchmarks that exercise a service need it running before the
// first trial and stopped after the last; providers encapsulate
// how that happens.
package target

import "context"

// Provider defines the interface for target lifecycle management.
type Provider interface {
	// Start launches the target.
	Start(ctx context.Context) error

	// WaitHealthy blocks until the target reports healthy or the
	// context is done.
	WaitHealthy(ctx context.Context) error

	// Stop shuts the target down.
	Stop(ctx context.Context) error

	// Running reports whether the target is currently running.
	Running() bool
}

// NoopProvider is a Provider for targets managed outside the
// framework (already-running services, remote systems).
type NoopProvider struct{}

// Start is a no-op.
func (NoopProvider) Start(_ context.Context) error { return nil }

// WaitHealthy is a no-op.
func (NoopProvider) WaitHealthy(_ context.Context) error { return nil }

// Stop is a no-op.
func (NoopProvider) Stop(_ context.Context) error { return nil }

// Running always returns true; an externally-managed target is
// assumed available.
func (NoopProvider) Running() bool { return true }

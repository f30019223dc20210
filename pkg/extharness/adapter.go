package extharness

import "context"

// Adapter abstracts the execution of an external harness,
// allowing different implementations (CLI subprocess, mock, etc.).
type Adapter interface {
	// Run executes a harness config file and returns the run
	// result. The configPath should point to a valid harness
	// YAML config.
	Run(
		ctx context.Context,
		configPath string,
		opts ...RunOption,
	) (*RunResult, error)

	// Version returns the harness binary version string.
	Version(ctx context.Context) (string, error)

	// Available returns true if the harness binary is reachable
	// and executable.
	Available(ctx context.Context) bool
}

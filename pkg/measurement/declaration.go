// Package measurement provides the data model for benchmark
// measurements: counter declarations, the counters handed to running
// benchmark code, per-trial samples, and the statistics aggregated
// from those samples after all trials complete.
package measurement

import "fmt"

// Declaration names a counter to be tracked for a benchmark. It
// carries no execution logic; the runner instantiates one Counter per
// declaration and correlates trial samples back to it by name.
// Declarations are immutable values — construct with NewDeclaration
// and never mutate.
type Declaration struct {
	// CounterName is the non-empty counter identifier, unique among
	// a benchmark's declarations.
	CounterName string `json:"counter_name" yaml:"counter_name"`
}

// NewDeclaration creates a Declaration for the given counter name.
func NewDeclaration(counterName string) Declaration {
	return Declaration{CounterName: counterName}
}

// Validate checks that the declaration is structurally sound.
func (d Declaration) Validate() error {
	if d.CounterName == "" {
		return fmt.Errorf("declaration: counter name must not be empty")
	}
	return nil
}

// ValidateDeclarations checks every declaration and rejects duplicate
// counter names.
func ValidateDeclarations(decls []Declaration) error {
	seen := make(map[string]bool, len(decls))
	for i, d := range decls {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("declaration %d: %w", i, err)
		}
		if seen[d.CounterName] {
			return fmt.Errorf(
				"declaration %d: duplicate counter name %q",
				i, d.CounterName,
			)
		}
		seen[d.CounterName] = true
	}
	return nil
}

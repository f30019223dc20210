package benchmark

import (
	"fmt"

	"digital.vasic.benchmarks/pkg/assertion"
	"digital.vasic.benchmarks/pkg/measurement"
)

// Definition describes a benchmark declaratively. It captures all
// metadata needed to configure and evaluate a benchmark without
// requiring Go code: the counters to track and the assertions to
// evaluate, in the compact spec syntax.
type Definition struct {
	ID          ID     `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Category    string `json:"category" yaml:"category"`

	// Trials is the number of measured trials. Zero means use
	// the runner's configured default.
	Trials int `json:"trials" yaml:"trials"`

	// Warmup is the number of unmeasured warmup trials.
	Warmup int `json:"warmup" yaml:"warmup"`

	// Counters names the counters to declare for this benchmark.
	Counters []string `json:"counters" yaml:"counters"`

	// Assertions holds compact assertion strings, e.g.
	// "rate(ops) >= 1500" or "total(errors) between 0 50".
	Assertions []string `json:"assertions" yaml:"assertions"`

	// Metadata holds arbitrary key-value annotations.
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Declarations builds the measurement declarations from the
// definition's counter names, preserving order.
func (d Definition) Declarations() []measurement.Declaration {
	decls := make([]measurement.Declaration, 0, len(d.Counters))
	for _, name := range d.Counters {
		decls = append(decls, measurement.NewDeclaration(name))
	}
	return decls
}

// Specs parses the definition's assertion strings into specs,
// preserving declaration order.
func (d Definition) Specs() ([]assertion.Spec, error) {
	return assertion.ParseSpecStrings(d.Assertions)
}

// Validate checks the definition's structural constraints: identity
// fields present, positive trial counts, valid and unique counter
// declarations, and every assertion parseable and referencing a
// declared counter.
func (d Definition) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("definition: id must not be empty")
	}
	if d.Name == "" {
		return fmt.Errorf(
			"definition %s: name must not be empty", d.ID,
		)
	}
	if d.Trials < 0 {
		return fmt.Errorf(
			"definition %s: negative trials %d", d.ID, d.Trials,
		)
	}
	if d.Warmup < 0 {
		return fmt.Errorf(
			"definition %s: negative warmup %d", d.ID, d.Warmup,
		)
	}

	decls := d.Declarations()
	if err := measurement.ValidateDeclarations(decls); err != nil {
		return fmt.Errorf("definition %s: %w", d.ID, err)
	}

	specs, err := d.Specs()
	if err != nil {
		return fmt.Errorf("definition %s: %w", d.ID, err)
	}
	if err := assertion.ValidateSpecs(decls, specs); err != nil {
		return fmt.Errorf("definition %s: %w", d.ID, err)
	}
	return nil
}

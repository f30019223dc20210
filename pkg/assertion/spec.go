// Package assertion provides threshold assertions over aggregated
// benchmark statistics. Specs pair a declared counter with a
// comparison condition and one or two thresholds; the engine compares
// the aggregated observation against the spec and produces a Verdict
// with a stable, parseable message. Custom conditions can be
// registered alongside the built-in comparison set.
package assertion

import (
	"fmt"

	"digital.vasic.benchmarks/pkg/measurement"
)

// Kind discriminates the two assertion variants.
type Kind string

const (
	// KindThroughput asserts against the average per-trial rate in
	// operations per second.
	KindThroughput Kind = "throughput"

	// KindTotal asserts against the average raw counter value per
	// trial.
	KindTotal Kind = "total"
)

// Valid reports whether the kind is one of the two variants.
func (k Kind) Valid() bool {
	return k == KindThroughput || k == KindTotal
}

// Condition is a comparison operator applied to the observed value.
type Condition string

const (
	GreaterThan          Condition = "greater_than"
	GreaterThanOrEqualTo Condition = "greater_than_or_equal_to"
	LessThan             Condition = "less_than"
	LessThanOrEqualTo    Condition = "less_than_or_equal_to"
	Equal                Condition = "equal"
	Between              Condition = "between"
)

// conditionSymbols maps each built-in condition to the operator
// symbol used in verdict messages and the compact spec syntax.
var conditionSymbols = map[Condition]string{
	GreaterThan:          ">",
	GreaterThanOrEqualTo: ">=",
	LessThan:             "<",
	LessThanOrEqualTo:    "<=",
	Equal:                "==",
	Between:              "between",
}

// Valid reports whether the condition is one of the six built-ins.
// Registered custom conditions are validated by the engine instead.
func (c Condition) Valid() bool {
	_, ok := conditionSymbols[c]
	return ok
}

// Symbol returns the operator symbol for a built-in condition, or
// the condition name itself for custom conditions.
func (c Condition) Symbol() string {
	if s, ok := conditionSymbols[c]; ok {
		return s
	}
	return string(c)
}

// Spec is a single threshold assertion against a declared counter.
// The zero value is not usable; construct via NewThroughputSpec,
// NewTotalSpec, BetweenThroughputSpec, or BetweenTotalSpec so the
// Between-bound invariant is enforced up front.
type Spec struct {
	// CounterName names the declared counter this assertion reads.
	CounterName string `json:"counter_name" yaml:"counter_name"`

	// Kind selects which aggregated value is compared.
	Kind Kind `json:"kind" yaml:"kind"`

	// Condition is the comparison operator.
	Condition Condition `json:"condition" yaml:"condition"`

	// Threshold is the primary (lower) threshold. For throughput
	// specs it is operations per second; for total specs it is
	// operations per run. Never negative.
	Threshold float64 `json:"threshold" yaml:"threshold"`

	// MaxThreshold is the upper bound. Required, and strictly
	// greater than Threshold, when Condition is Between; must be
	// unset for every single-sided condition.
	MaxThreshold *float64 `json:"max_threshold,omitempty" yaml:"max_threshold,omitempty"`
}

// InvalidSpecError reports a structurally misconfigured assertion
// spec, detected at construction or validation time — never during
// evaluation.
type InvalidSpecError struct {
	CounterName string
	Reason      string
}

func (e *InvalidSpecError) Error() string {
	if e.CounterName == "" {
		return "invalid assertion spec: " + e.Reason
	}
	return fmt.Sprintf(
		"invalid assertion spec for counter %q: %s",
		e.CounterName, e.Reason,
	)
}

// NewThroughputSpec creates a single-sided throughput assertion.
func NewThroughputSpec(
	counterName string,
	condition Condition,
	threshold float64,
) (Spec, error) {
	return newSpec(KindThroughput, counterName, condition, threshold, nil)
}

// NewTotalSpec creates a single-sided total-count assertion.
func NewTotalSpec(
	counterName string,
	condition Condition,
	threshold float64,
) (Spec, error) {
	return newSpec(KindTotal, counterName, condition, threshold, nil)
}

// BetweenThroughputSpec creates a two-sided throughput assertion,
// inclusive at both ends.
func BetweenThroughputSpec(
	counterName string,
	lower, upper float64,
) (Spec, error) {
	return newSpec(KindThroughput, counterName, Between, lower, &upper)
}

// BetweenTotalSpec creates a two-sided total-count assertion,
// inclusive at both ends.
func BetweenTotalSpec(
	counterName string,
	lower, upper float64,
) (Spec, error) {
	return newSpec(KindTotal, counterName, Between, lower, &upper)
}

func newSpec(
	kind Kind,
	counterName string,
	condition Condition,
	threshold float64,
	max *float64,
) (Spec, error) {
	if !condition.Valid() {
		return Spec{}, &InvalidSpecError{
			CounterName: counterName,
			Reason: fmt.Sprintf(
				"unknown condition %q", condition,
			),
		}
	}
	s := Spec{
		CounterName:  counterName,
		Kind:         kind,
		Condition:    condition,
		Threshold:    threshold,
		MaxThreshold: max,
	}
	if err := s.Validate(); err != nil {
		return Spec{}, err
	}
	return s, nil
}

// Validate checks the spec's structural invariants. Condition
// membership is deliberately not checked here so engines can carry
// registered custom conditions; the engine's ValidateSpecs covers it.
func (s Spec) Validate() error {
	if s.CounterName == "" {
		return &InvalidSpecError{
			Reason: "counter name must not be empty",
		}
	}
	if !s.Kind.Valid() {
		return &InvalidSpecError{
			CounterName: s.CounterName,
			Reason:      fmt.Sprintf("unknown kind %q", s.Kind),
		}
	}
	if s.Condition == "" {
		return &InvalidSpecError{
			CounterName: s.CounterName,
			Reason:      "condition must not be empty",
		}
	}
	if s.Threshold < 0 {
		return &InvalidSpecError{
			CounterName: s.CounterName,
			Reason: fmt.Sprintf(
				"negative threshold %s",
				formatValue(s.Threshold),
			),
		}
	}

	if s.Condition == Between {
		if s.MaxThreshold == nil {
			return &InvalidSpecError{
				CounterName: s.CounterName,
				Reason:      "between requires an upper bound",
			}
		}
		if *s.MaxThreshold <= s.Threshold {
			return &InvalidSpecError{
				CounterName: s.CounterName,
				Reason: fmt.Sprintf(
					"upper bound %s must exceed lower bound %s",
					formatValue(*s.MaxThreshold),
					formatValue(s.Threshold),
				),
			}
		}
		return nil
	}

	// A stray upper bound on a single-sided condition would be
	// meaningless; reject it instead of silently ignoring it.
	if s.MaxThreshold != nil {
		return &InvalidSpecError{
			CounterName: s.CounterName,
			Reason: fmt.Sprintf(
				"upper bound set but condition is %q, not %q",
				s.Condition, Between,
			),
		}
	}
	return nil
}

// String renders the spec in the compact syntax understood by
// ParseSpecString, e.g. "rate(ops) >= 1500" or
// "total(errors) between 0 50".
func (s Spec) String() string {
	kind := "total"
	if s.Kind == KindThroughput {
		kind = "rate"
	}
	if s.Condition == Between && s.MaxThreshold != nil {
		return fmt.Sprintf(
			"%s(%s) between %s %s",
			kind, s.CounterName,
			formatValue(s.Threshold),
			formatValue(*s.MaxThreshold),
		)
	}
	return fmt.Sprintf(
		"%s(%s) %s %s",
		kind, s.CounterName,
		s.Condition.Symbol(),
		formatValue(s.Threshold),
	)
}

// ValidateSpecs checks a set of specs against the counters declared
// for the benchmark: every spec must be structurally valid and
// reference a declared counter. Condition registration is checked by
// the engine variant; this package-level form covers the built-ins.
func ValidateSpecs(
	decls []measurement.Declaration,
	specs []Spec,
) error {
	declared := make(map[string]bool, len(decls))
	for _, d := range decls {
		declared[d.CounterName] = true
	}

	for i, s := range specs {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("assertion %d: %w", i, err)
		}
		if !s.Condition.Valid() {
			return fmt.Errorf(
				"assertion %d: %w", i,
				&InvalidSpecError{
					CounterName: s.CounterName,
					Reason: fmt.Sprintf(
						"unknown condition %q", s.Condition,
					),
				},
			)
		}
		if !declared[s.CounterName] {
			return fmt.Errorf(
				"assertion %d: %w", i,
				&InvalidSpecError{
					CounterName: s.CounterName,
					Reason:      "no matching measurement declaration",
				},
			)
		}
	}
	return nil
}

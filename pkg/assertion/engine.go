package assertion

import (
	"fmt"
	"sync"

	"digital.vasic.benchmarks/pkg/measurement"
)

// Engine defines the interface for assertion evaluation engines.
type Engine interface {
	// Evaluate checks a single spec against the aggregated
	// statistics for its counter.
	Evaluate(spec Spec, stats measurement.Statistics) Verdict

	// EvaluateAll checks multiple specs against per-counter
	// statistics, preserving declaration order. A spec whose
	// counter has no statistics is an error, never a silent
	// zero.
	EvaluateAll(
		specs []Spec,
		statsByCounter map[string]measurement.Statistics,
	) ([]Verdict, error)

	// Register adds a custom comparator for the given condition.
	// Returns an error if the condition is already registered.
	Register(condition Condition, comparator Comparator) error

	// ValidateSpecs checks specs against declared counters,
	// accepting any condition with a registered comparator.
	ValidateSpecs(
		decls []measurement.Declaration,
		specs []Spec,
	) error
}

// DefaultEngine is the standard Engine implementation. It is safe
// for concurrent use.
type DefaultEngine struct {
	mu          sync.RWMutex
	comparators map[Condition]Comparator
}

// NewEngine creates a DefaultEngine with the six built-in
// comparison conditions pre-registered.
func NewEngine() *DefaultEngine {
	e := &DefaultEngine{
		comparators: make(map[Condition]Comparator),
	}
	e.registerDefaults()
	return e
}

// registerDefaults registers the six built-in comparators.
func (e *DefaultEngine) registerDefaults() {
	e.comparators[GreaterThan] = compareGreaterThan
	e.comparators[GreaterThanOrEqualTo] = compareGreaterThanOrEqualTo
	e.comparators[LessThan] = compareLessThan
	e.comparators[LessThanOrEqualTo] = compareLessThanOrEqualTo
	e.comparators[Equal] = compareEqual
	e.comparators[Between] = compareBetween
}

// Register adds a custom comparator for the given condition.
// Returns an error if the condition is already registered.
func (e *DefaultEngine) Register(
	condition Condition,
	comparator Comparator,
) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.comparators[condition]; exists {
		return fmt.Errorf(
			"condition already registered: %s", condition,
		)
	}

	e.comparators[condition] = comparator
	return nil
}

// HasComparator returns true if the given condition has a
// registered comparator.
func (e *DefaultEngine) HasComparator(condition Condition) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, exists := e.comparators[condition]
	return exists
}

// Evaluate compares one spec against the aggregated statistics for
// its counter. The observed value is selected by the spec's kind:
// throughput reads the average rate, total reads the average total.
// A failing comparison produces a failing Verdict, not an error.
func (e *DefaultEngine) Evaluate(
	spec Spec,
	stats measurement.Statistics,
) Verdict {
	observed := stats.AverageTotal
	if spec.Kind == KindThroughput {
		observed = stats.AverageRate
	}

	e.mu.RLock()
	comparator, exists := e.comparators[spec.Condition]
	e.mu.RUnlock()

	if !exists {
		return Verdict{
			Spec:     spec,
			Observed: observed,
			Pass:     false,
			Message: fmt.Sprintf(
				"%s %s assertion: unknown condition %q → FAIL",
				spec.CounterName, spec.Kind, spec.Condition,
			),
		}
	}

	pass, detail := comparator(observed, spec)

	outcome := "FAIL"
	if pass {
		outcome = "PASS"
	}

	return Verdict{
		Spec:     spec,
		Observed: observed,
		Pass:     pass,
		Message: fmt.Sprintf(
			"%s %s assertion: observed %s %s → %s",
			spec.CounterName, spec.Kind,
			formatValue(observed), detail, outcome,
		),
	}
}

// EvaluateAll evaluates every spec in declaration order against the
// per-counter statistics. Evaluation never stops at the first
// failing assertion; the report must show every outcome. A spec
// whose counter has no statistics surfaces InsufficientDataError.
func (e *DefaultEngine) EvaluateAll(
	specs []Spec,
	statsByCounter map[string]measurement.Statistics,
) ([]Verdict, error) {
	verdicts := make([]Verdict, 0, len(specs))

	for _, spec := range specs {
		stats, exists := statsByCounter[spec.CounterName]
		if !exists {
			return nil, &measurement.InsufficientDataError{
				CounterName: spec.CounterName,
			}
		}

		verdicts = append(verdicts, e.Evaluate(spec, stats))
	}

	return verdicts, nil
}

// ValidateSpecs checks specs against the declared counters like the
// package-level ValidateSpecs, but accepts any condition with a
// registered comparator rather than only the six built-ins.
func (e *DefaultEngine) ValidateSpecs(
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
		if !e.HasComparator(s.Condition) {
			return fmt.Errorf(
				"assertion %d: %w", i,
				&InvalidSpecError{
					CounterName: s.CounterName,
					Reason: fmt.Sprintf(
						"no comparator registered for condition %q",
						s.Condition,
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

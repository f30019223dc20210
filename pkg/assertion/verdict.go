package assertion

// Verdict captures the outcome of evaluating a single assertion spec
// against aggregated statistics. A failing assertion is a normal
// verdict, never an error.
type Verdict struct {
	// Spec is the assertion that was evaluated.
	Spec Spec `json:"spec"`

	// Observed is the aggregated value the spec was compared
	// against: the average rate for throughput specs, the average
	// total for total specs.
	Observed float64 `json:"observed"`

	// Pass indicates whether the comparison held.
	Pass bool `json:"pass"`

	// Message is a stable, parseable explanation of the form
	// "<counter> <kind> assertion: observed <value> <operator>
	// <threshold(s)> → PASS|FAIL".
	Message string `json:"message"`
}

// Report aggregates every verdict for one benchmark run into a
// single pass/fail outcome. Verdicts keep declaration order so
// diagnostics read in the order the author wrote the assertions.
type Report struct {
	// Verdicts are the per-assertion outcomes in declaration
	// order.
	Verdicts []Verdict `json:"verdicts"`

	// OverallPass is the logical AND of all verdict passes. A
	// report with zero verdicts passes vacuously.
	OverallPass bool `json:"overall_pass"`
}

// BuildReport folds a sequence of verdicts into a Report. Pure
// aggregation, no I/O.
func BuildReport(verdicts []Verdict) Report {
	report := Report{
		Verdicts:    verdicts,
		OverallPass: true,
	}

	for _, v := range verdicts {
		if !v.Pass {
			report.OverallPass = false
		}
	}

	return report
}

// Failed returns the failing verdicts, in declaration order.
func (r Report) Failed() []Verdict {
	var failed []Verdict
	for _, v := range r.Verdicts {
		if !v.Pass {
			failed = append(failed, v)
		}
	}
	return failed
}

// Len returns the number of verdicts in the report.
func (r Report) Len() int {
	return len(r.Verdicts)
}

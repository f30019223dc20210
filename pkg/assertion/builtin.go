package assertion

import (
	"fmt"
	"math"
	"strconv"
)

// EqualTolerance is the fixed epsilon used by the Equal condition.
// Observed rates are quotients of measured values, so bit-exact
// float equality would almost never hold; instead Equal passes when
// the observed value is within EqualTolerance of the threshold —
// relative when |threshold| > 1, absolute otherwise.
const EqualTolerance = 1e-9

// formatValue renders a float for verdict messages and spec strings.
// strconv with -1 precision gives the shortest representation that
// round-trips, so the output is stable across runs and platforms.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// compareGreaterThan passes iff observed > threshold.
func compareGreaterThan(
	observed float64,
	spec Spec,
) (bool, string) {
	return observed > spec.Threshold,
		fmt.Sprintf("> %s", formatValue(spec.Threshold))
}

// compareGreaterThanOrEqualTo passes iff observed >= threshold.
func compareGreaterThanOrEqualTo(
	observed float64,
	spec Spec,
) (bool, string) {
	return observed >= spec.Threshold,
		fmt.Sprintf(">= %s", formatValue(spec.Threshold))
}

// compareLessThan passes iff observed < threshold.
func compareLessThan(
	observed float64,
	spec Spec,
) (bool, string) {
	return observed < spec.Threshold,
		fmt.Sprintf("< %s", formatValue(spec.Threshold))
}

// compareLessThanOrEqualTo passes iff observed <= threshold.
func compareLessThanOrEqualTo(
	observed float64,
	spec Spec,
) (bool, string) {
	return observed <= spec.Threshold,
		fmt.Sprintf("<= %s", formatValue(spec.Threshold))
}

// compareEqual passes iff observed is within EqualTolerance of the
// threshold.
func compareEqual(
	observed float64,
	spec Spec,
) (bool, string) {
	tolerance := EqualTolerance
	if math.Abs(spec.Threshold) > 1 {
		tolerance = EqualTolerance * math.Abs(spec.Threshold)
	}

	return math.Abs(observed-spec.Threshold) <= tolerance,
		fmt.Sprintf("== %s", formatValue(spec.Threshold))
}

// compareBetween passes iff lower <= observed <= upper, inclusive at
// both ends. Spec validation guarantees the upper bound is present
// and exceeds the lower bound before this comparator runs.
func compareBetween(
	observed float64,
	spec Spec,
) (bool, string) {
	detail := fmt.Sprintf(
		"within [%s, %s]",
		formatValue(spec.Threshold),
		formatValue(*spec.MaxThreshold),
	)

	pass := observed >= spec.Threshold &&
		observed <= *spec.MaxThreshold
	return pass, detail
}

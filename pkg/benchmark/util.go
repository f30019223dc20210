package benchmark

import (
	"sort"

	"digital.vasic.benchmarks/pkg/measurement"
)

// Ternary returns t if cond is true, f otherwise.
func Ternary(cond bool, t, f string) string {
	if cond {
		return t
	}
	return f
}

// sortedStatNames returns the counter names of a statistics map in
// alphabetical order, for deterministic report output.
func sortedStatNames(
	stats map[string]measurement.Statistics,
) []string {
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

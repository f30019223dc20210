package assertion

import (
	"fmt"
	"strconv"
	"strings"
)

// symbolConditions is the inverse of conditionSymbols, used by the
// compact spec syntax.
var symbolConditions = map[string]Condition{
	">":       GreaterThan,
	">=":      GreaterThanOrEqualTo,
	"<":       LessThan,
	"<=":      LessThanOrEqualTo,
	"==":      Equal,
	"between": Between,
}

// ParseSpecString parses a compact assertion string into a Spec.
// The syntax is "<kind>(<counter>) <operator> <threshold>" with an
// extra upper bound for between, where kind is "rate" or "total"
// and operator is one of >, >=, <, <=, ==, between.
//
// Examples:
//
//	"rate(ops) >= 1500"
//	"total(errors) <= 10"
//	"total(requests) between 400 700"
//
// Parse and validation failures are InvalidSpecError.
func ParseSpecString(s string) (Spec, error) {
	fields := strings.Fields(s)
	if len(fields) < 3 {
		return Spec{}, &InvalidSpecError{
			Reason: fmt.Sprintf(
				"cannot parse %q: want \"<kind>(<counter>) <operator> <threshold>\"",
				s,
			),
		}
	}

	kind, counterName, err := parseSelector(fields[0])
	if err != nil {
		return Spec{}, err
	}

	condition, ok := symbolConditions[fields[1]]
	if !ok {
		return Spec{}, &InvalidSpecError{
			CounterName: counterName,
			Reason: fmt.Sprintf(
				"unknown operator %q", fields[1],
			),
		}
	}

	threshold, err := parseThreshold(counterName, fields[2])
	if err != nil {
		return Spec{}, err
	}

	if condition == Between {
		if len(fields) != 4 {
			return Spec{}, &InvalidSpecError{
				CounterName: counterName,
				Reason:      "between requires lower and upper bounds",
			}
		}
		upper, err := parseThreshold(counterName, fields[3])
		if err != nil {
			return Spec{}, err
		}
		return newSpec(kind, counterName, Between, threshold, &upper)
	}

	if len(fields) != 3 {
		return Spec{}, &InvalidSpecError{
			CounterName: counterName,
			Reason: fmt.Sprintf(
				"trailing input after threshold: %q",
				strings.Join(fields[3:], " "),
			),
		}
	}

	return newSpec(kind, counterName, condition, threshold, nil)
}

// parseSelector splits "rate(ops)" or "total(errors)" into the
// assertion kind and counter name.
func parseSelector(s string) (Kind, string, error) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return "", "", &InvalidSpecError{
			Reason: fmt.Sprintf(
				"cannot parse selector %q: want \"rate(<counter>)\" or \"total(<counter>)\"",
				s,
			),
		}
	}

	counterName := s[open+1 : len(s)-1]

	switch s[:open] {
	case "rate":
		return KindThroughput, counterName, nil
	case "total":
		return KindTotal, counterName, nil
	default:
		return "", "", &InvalidSpecError{
			CounterName: counterName,
			Reason: fmt.Sprintf(
				"unknown kind %q: want \"rate\" or \"total\"",
				s[:open],
			),
		}
	}
}

func parseThreshold(counterName, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &InvalidSpecError{
			CounterName: counterName,
			Reason: fmt.Sprintf(
				"cannot parse threshold %q", s,
			),
		}
	}
	return v, nil
}

// ParseSpecStrings parses a sequence of compact assertion strings,
// preserving order. The first failure aborts the parse.
func ParseSpecStrings(specs []string) ([]Spec, error) {
	parsed := make([]Spec, 0, len(specs))
	for i, s := range specs {
		spec, err := ParseSpecString(s)
		if err != nil {
			return nil, fmt.Errorf("assertion %d: %w", i, err)
		}
		parsed = append(parsed, spec)
	}
	return parsed, nil
}

package measurement

import (
	"errors"
	"fmt"
)

// ErrNoSamples signals that aggregation was requested for a counter
// with zero recorded trial samples.
var ErrNoSamples = errors.New("no trial samples recorded")

// InsufficientDataError is returned when a declared counter has no
// trial samples at aggregation time. A zero-trial average is
// meaningless, so this never passes silently.
type InsufficientDataError struct {
	CounterName string
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf(
		"counter %q: %v", e.CounterName, ErrNoSamples,
	)
}

// Unwrap lets errors.Is match ErrNoSamples.
func (e *InsufficientDataError) Unwrap() error {
	return ErrNoSamples
}

// Statistics holds the run-level aggregates for one counter, computed
// once after all trials complete and immutable thereafter.
type Statistics struct {
	// CounterName identifies the counter these statistics describe.
	CounterName string `json:"counter_name"`

	// Trials is the number of samples aggregated.
	Trials int `json:"trials"`

	// AverageRate is the arithmetic mean of the per-trial rates
	// (value/duration), in operations per second. Each trial is an
	// independent throughput observation, so the per-trial rate is
	// computed first and then averaged — this is not the pooled
	// ratio sum(values)/sum(durations).
	AverageRate float64 `json:"average_rate"`

	// AverageTotal is the arithmetic mean of the raw per-trial
	// counter values, in operations per run.
	AverageTotal float64 `json:"average_total"`

	// MinRate and MaxRate are the extreme per-trial rates, carried
	// for reporting.
	MinRate float64 `json:"min_rate"`
	MaxRate float64 `json:"max_rate"`

	// MinTotal and MaxTotal are the extreme per-trial values.
	MinTotal int64 `json:"min_total"`
	MaxTotal int64 `json:"max_total"`
}

// Aggregate reduces the trial samples for one counter into run-level
// Statistics. It is a pure function: same samples, same statistics.
// An empty sample sequence fails with InsufficientDataError.
func Aggregate(
	counterName string,
	samples []TrialSample,
) (Statistics, error) {
	if len(samples) == 0 {
		return Statistics{}, &InsufficientDataError{
			CounterName: counterName,
		}
	}

	var (
		sumRate  float64
		sumTotal float64
		stats    = Statistics{
			CounterName: counterName,
			Trials:      len(samples),
		}
	)

	for i, s := range samples {
		if err := s.Validate(); err != nil {
			return Statistics{}, fmt.Errorf(
				"aggregate %q: sample %d: %w",
				counterName, i, err,
			)
		}
		if s.CounterName != counterName {
			return Statistics{}, fmt.Errorf(
				"aggregate %q: sample %d belongs to counter %q",
				counterName, i, s.CounterName,
			)
		}

		rate := s.Rate()
		sumRate += rate
		sumTotal += float64(s.Value)

		if i == 0 || rate < stats.MinRate {
			stats.MinRate = rate
		}
		if i == 0 || rate > stats.MaxRate {
			stats.MaxRate = rate
		}
		if i == 0 || s.Value < stats.MinTotal {
			stats.MinTotal = s.Value
		}
		if i == 0 || s.Value > stats.MaxTotal {
			stats.MaxTotal = s.Value
		}
	}

	n := float64(len(samples))
	stats.AverageRate = sumRate / n
	stats.AverageTotal = sumTotal / n
	return stats, nil
}

// AggregateAll aggregates every counter's samples, keyed by counter
// name. Any counter failing aggregation fails the whole call; partial
// statistics are never returned.
func AggregateAll(
	samplesByCounter map[string][]TrialSample,
) (map[string]Statistics, error) {
	stats := make(map[string]Statistics, len(samplesByCounter))
	for name, samples := range samplesByCounter {
		s, err := Aggregate(name, samples)
		if err != nil {
			return nil, err
		}
		stats[name] = s
	}
	return stats, nil
}

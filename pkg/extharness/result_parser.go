package extharness

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"digital.vasic.benchmarks/pkg/benchmark"
	"digital.vasic.benchmarks/pkg/measurement"
)

// sampleRecord is one trial observation in the harness samples
// file.
type sampleRecord struct {
	Value     int64 `json:"value"`
	ElapsedNs int64 `json:"elapsed_ns"`
}

// samplesFile is the JSON structure the harness writes: one
// sample sequence per counter, in trial order.
type samplesFile struct {
	BenchmarkID string                    `json:"benchmark_id"`
	Samples     map[string][]sampleRecord `json:"samples"`
}

// ParseSamplesFile reads a harness samples file and converts it
// into per-counter trial samples. Negative values and
// non-positive durations are rejected so a broken harness never
// feeds garbage into aggregation.
func ParseSamplesFile(
	path string,
) (map[string][]measurement.TrialSample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(
			"read samples file %s: %w", path, err,
		)
	}

	var file samplesFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf(
			"parse samples file %s: %w", path, err,
		)
	}

	result := make(
		map[string][]measurement.TrialSample, len(file.Samples),
	)
	for counter, records := range file.Samples {
		samples := make(
			[]measurement.TrialSample, 0, len(records),
		)
		for i, rec := range records {
			if rec.Value < 0 {
				return nil, fmt.Errorf(
					"samples file %s: counter %q trial %d: negative value %d",
					path, counter, i, rec.Value,
				)
			}
			if rec.ElapsedNs <= 0 {
				return nil, fmt.Errorf(
					"samples file %s: counter %q trial %d: non-positive elapsed %d",
					path, counter, i, rec.ElapsedNs,
				)
			}
			samples = append(samples, measurement.TrialSample{
				CounterName: counter,
				Value:       rec.Value,
				Elapsed:     time.Duration(rec.ElapsedNs),
			})
		}
		result[counter] = samples
	}
	return result, nil
}

// ResultToMetrics converts a RunResult into metric values for
// inclusion in benchmark results.
func ResultToMetrics(
	r *RunResult,
) map[string]benchmark.MetricValue {
	if r == nil {
		return map[string]benchmark.MetricValue{}
	}
	return map[string]benchmark.MetricValue{
		"harness_duration_ms": {
			Name:  "harness_duration_ms",
			Value: float64(r.Duration.Milliseconds()),
			Unit:  "ms",
		},
		"harness_exit_code": {
			Name:  "harness_exit_code",
			Value: float64(r.ExitCode),
			Unit:  "code",
		},
	}
}

package measurement

import (
	"fmt"
	"time"
)

// TrialSample is the raw observation of one counter for one completed
// trial: the counter's final value and the trial's elapsed wall-clock
// duration. The execution harness produces one sample per declared
// counter per trial.
type TrialSample struct {
	// CounterName identifies which declared counter this sample
	// belongs to.
	CounterName string `json:"counter_name" yaml:"counter_name"`

	// Value is the final counter value at trial end. Never negative.
	Value int64 `json:"value" yaml:"value"`

	// Elapsed is the trial's wall-clock duration. Always positive.
	Elapsed time.Duration `json:"elapsed_ns" yaml:"elapsed_ns"`
}

// Rate returns this trial's throughput in operations per second.
func (s TrialSample) Rate() float64 {
	return float64(s.Value) / s.Elapsed.Seconds()
}

// Validate checks the sample's structural constraints.
func (s TrialSample) Validate() error {
	if s.CounterName == "" {
		return fmt.Errorf("sample: counter name must not be empty")
	}
	if s.Value < 0 {
		return fmt.Errorf(
			"sample for counter %q: negative value %d",
			s.CounterName, s.Value,
		)
	}
	if s.Elapsed <= 0 {
		return fmt.Errorf(
			"sample for counter %q: non-positive elapsed %s",
			s.CounterName, s.Elapsed,
		)
	}
	return nil
}

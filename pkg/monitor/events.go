// Package monitor provides live run monitoring: a lifecycle event
// model, a thread-safe collector with handler fanout, an aggregated
// dashboard state, and a websocket server that streams events to
// connected dashboards.
package monitor

import (
	"time"

	"digital.vasic.benchmarks/pkg/benchmark"
)

// EventType represents the type of benchmark lifecycle event.
type EventType string

const (
	EventStarted        EventType = "benchmark_started"
	EventTrialCompleted EventType = "trial_completed"
	EventCompleted      EventType = "benchmark_completed"
	EventFailed         EventType = "benchmark_failed"
	EventSkipped        EventType = "benchmark_skipped"
	EventTimedOut       EventType = "benchmark_timed_out"
	EventLog            EventType = "log"
)

// Event represents a lifecycle event during a benchmark run.
type Event struct {
	Type        EventType     `json:"type"`
	RunID       string        `json:"run_id,omitempty"`
	BenchmarkID benchmark.ID  `json:"benchmark_id"`
	Name        string        `json:"name"`
	Category    string        `json:"category,omitempty"`
	Status      string        `json:"status,omitempty"`
	Message     string        `json:"message,omitempty"`
	Trial       int           `json:"trial,omitempty"`
	Trials      int           `json:"trials,omitempty"`
	Duration    time.Duration `json:"duration,omitempty"`
	Timestamp   time.Time     `json:"timestamp"`

	// Verdicts summarizes assertion outcomes on completion
	// events: total and passed counts.
	VerdictsTotal  int `json:"verdicts_total,omitempty"`
	VerdictsPassed int `json:"verdicts_passed,omitempty"`
}

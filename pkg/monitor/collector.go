package monitor

import (
	"sync"
	"time"

	"digital.vasic.benchmarks/pkg/benchmark"
)

// EventCollector captures benchmark events and timing data.
type EventCollector struct {
	mu       sync.RWMutex
	events   []Event
	handlers []func(Event)
	stats    CollectorStats
}

// CollectorStats holds aggregate statistics.
type CollectorStats struct {
	Total     int           `json:"total"`
	Passed    int           `json:"passed"`
	Failed    int           `json:"failed"`
	Skipped   int           `json:"skipped"`
	TimedOut  int           `json:"timed_out"`
	Trials    int           `json:"trials"`
	StartTime time.Time     `json:"start_time"`
	Duration  time.Duration `json:"duration"`
}

// NewEventCollector creates a new event collector.
func NewEventCollector() *EventCollector {
	return &EventCollector{
		events: make([]Event, 0, 64),
		stats:  CollectorStats{StartTime: time.Now()},
	}
}

// OnEvent registers a handler to be called for each event.
func (c *EventCollector) OnEvent(handler func(Event)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = append(c.handlers, handler)
}

// Emit records an event and notifies all handlers.
func (c *EventCollector) Emit(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	c.mu.Lock()
	c.events = append(c.events, event)
	c.stats.Total++
	switch event.Type {
	case EventTrialCompleted:
		c.stats.Trials++
	case EventCompleted:
		c.stats.Passed++
	case EventFailed:
		c.stats.Failed++
	case EventSkipped:
		c.stats.Skipped++
	case EventTimedOut:
		c.stats.TimedOut++
	}
	c.stats.Duration = time.Since(c.stats.StartTime)
	handlers := make([]func(Event), len(c.handlers))
	copy(handlers, c.handlers)
	c.mu.Unlock()

	for _, h := range handlers {
		h(event)
	}
}

// EmitStarted emits a benchmark started event.
func (c *EventCollector) EmitStarted(
	runID string,
	id benchmark.ID,
	name, category string,
) {
	c.Emit(Event{
		Type:        EventStarted,
		RunID:       runID,
		BenchmarkID: id,
		Name:        name,
		Category:    category,
		Timestamp:   time.Now(),
	})
}

// EmitTrialCompleted emits a trial completion event.
func (c *EventCollector) EmitTrialCompleted(
	runID string,
	id benchmark.ID,
	trial, trials int,
	duration time.Duration,
) {
	c.Emit(Event{
		Type:        EventTrialCompleted,
		RunID:       runID,
		BenchmarkID: id,
		Trial:       trial,
		Trials:      trials,
		Duration:    duration,
		Timestamp:   time.Now(),
	})
}

// EmitCompleted emits a benchmark completed event with its verdict
// summary.
func (c *EventCollector) EmitCompleted(
	runID string,
	id benchmark.ID,
	name string,
	duration time.Duration,
	verdictsTotal, verdictsPassed int,
) {
	c.Emit(Event{
		Type:           EventCompleted,
		RunID:          runID,
		BenchmarkID:    id,
		Name:           name,
		Status:         benchmark.StatusPassed,
		Duration:       duration,
		VerdictsTotal:  verdictsTotal,
		VerdictsPassed: verdictsPassed,
		Timestamp:      time.Now(),
	})
}

// EmitFailed emits a benchmark failed event.
func (c *EventCollector) EmitFailed(
	runID string,
	id benchmark.ID,
	name, msg string,
) {
	c.Emit(Event{
		Type:        EventFailed,
		RunID:       runID,
		BenchmarkID: id,
		Name:        name,
		Status:      benchmark.StatusFailed,
		Message:     msg,
		Timestamp:   time.Now(),
	})
}

// Events returns a copy of all collected events.
func (c *EventCollector) Events() []Event {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]Event, len(c.events))
	copy(result, c.events)
	return result
}

// Stats returns the current aggregate statistics.
func (c *EventCollector) Stats() CollectorStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := c.stats
	s.Duration = time.Since(s.StartTime)
	return s
}

// Reset clears all collected events and statistics.
func (c *EventCollector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = c.events[:0]
	c.stats = CollectorStats{StartTime: time.Now()}
}

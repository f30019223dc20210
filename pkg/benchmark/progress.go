package benchmark

import (
	"sync"
	"time"
)

// TrialProgress represents a single progress report from a running
// benchmark: which trial just completed (or is in flight) out of
// how many, with a counter snapshot for live monitoring.
type TrialProgress struct {
	// Timestamp is when the progress was reported.
	Timestamp time.Time `json:"timestamp"`

	// Trial is the 1-based index of the current trial. Zero
	// during warmup.
	Trial int `json:"trial"`

	// Trials is the total number of measured trials configured.
	Trials int `json:"trials"`

	// Message is a human-readable description of what the run is
	// currently doing.
	Message string `json:"message"`

	// Counters holds current counter values by name, if the
	// reporter chose to include them.
	Counters map[string]int64 `json:"counters,omitempty"`
}

// ProgressReporter lets the runner signal that a benchmark run is
// alive and making forward progress. The liveness monitor watches
// for these updates and cancels execution only when no progress has
// been reported within the configured stale threshold.
//
// Unlike timeouts, which limit total duration, the stale threshold
// limits idle duration. A benchmark whose trials each take minutes
// can run for hours — as long as trials keep completing, it will
// never be killed.
type ProgressReporter struct {
	ch     chan TrialProgress
	mu     sync.Mutex
	last   *TrialProgress
	closed bool
}

// NewProgressReporter creates a buffered progress channel. The
// buffer size prevents slow consumers from blocking the run —
// older updates are dropped if the buffer fills.
func NewProgressReporter() *ProgressReporter {
	return &ProgressReporter{
		ch: make(chan TrialProgress, 64),
	}
}

// ReportProgress emits a progress update. Safe to call from any
// goroutine. If the buffer is full, the update is dropped (the
// liveness monitor still sees the most recent buffered update).
func (p *ProgressReporter) ReportProgress(
	trial, trials int,
	msg string,
	counters map[string]int64,
) {
	update := TrialProgress{
		Timestamp: time.Now(),
		Trial:     trial,
		Trials:    trials,
		Message:   msg,
		Counters:  counters,
	}

	p.mu.Lock()
	p.last = &update
	closed := p.closed
	p.mu.Unlock()

	if closed {
		return
	}

	// Non-blocking send; drop if buffer is full.
	select {
	case p.ch <- update:
	default:
	}
}

// Channel returns the read-only channel for consuming progress
// updates. The runner's liveness monitor reads from this channel.
func (p *ProgressReporter) Channel() <-chan TrialProgress {
	return p.ch
}

// LastUpdate returns the most recent progress update, or nil if no
// progress has been reported yet.
func (p *ProgressReporter) LastUpdate() *TrialProgress {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

// Close signals that no more progress updates will be sent. Safe to
// call multiple times.
func (p *ProgressReporter) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		close(p.ch)
	}
}

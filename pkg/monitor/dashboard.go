package monitor

import (
	"sync"
	"time"

	"digital.vasic.benchmarks/pkg/benchmark"
)

// DashboardData provides a real-time snapshot of benchmark run state.
type DashboardData struct {
	mu         sync.RWMutex
	RunID      string                          `json:"run_id"`
	StartTime  time.Time                       `json:"start_time"`
	Status     string                          `json:"status"` // running, completed, failed
	Benchmarks map[benchmark.ID]BenchmarkState `json:"benchmarks"`
	Summary    DashboardSummary                `json:"summary"`
}

// BenchmarkState represents the current state of a benchmark in the
// dashboard.
type BenchmarkState struct {
	ID             benchmark.ID  `json:"id"`
	Name           string        `json:"name"`
	Category       string        `json:"category"`
	Status         string        `json:"status"`
	Trial          int           `json:"trial,omitempty"`
	Trials         int           `json:"trials,omitempty"`
	StartTime      *time.Time    `json:"start_time,omitempty"`
	EndTime        *time.Time    `json:"end_time,omitempty"`
	Duration       time.Duration `json:"duration,omitempty"`
	Message        string        `json:"message,omitempty"`
	VerdictsTotal  int           `json:"verdicts_total,omitempty"`
	VerdictsPassed int           `json:"verdicts_passed,omitempty"`
}

// DashboardSummary holds aggregate stats for the dashboard.
type DashboardSummary struct {
	Total    int     `json:"total"`
	Passed   int     `json:"passed"`
	Failed   int     `json:"failed"`
	Skipped  int     `json:"skipped"`
	Running  int     `json:"running"`
	Pending  int     `json:"pending"`
	PassRate float64 `json:"pass_rate"`
	Elapsed  string  `json:"elapsed"`
}

// NewDashboardData creates a new dashboard data instance.
func NewDashboardData(runID string) *DashboardData {
	return &DashboardData{
		RunID:      runID,
		StartTime:  time.Now(),
		Status:     "running",
		Benchmarks: make(map[benchmark.ID]BenchmarkState),
	}
}

// UpdateFromEvent updates dashboard state from a benchmark event.
func (d *DashboardData) UpdateFromEvent(event Event) {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := time.Now()
	state, exists := d.Benchmarks[event.BenchmarkID]
	if !exists {
		state = BenchmarkState{
			ID:   event.BenchmarkID,
			Name: event.Name,
		}
	}
	if state.Name == "" && event.Name != "" {
		state.Name = event.Name
	}
	if event.Category != "" {
		state.Category = event.Category
	}

	switch event.Type {
	case EventStarted:
		state.Status = benchmark.StatusRunning
		state.StartTime = &now
	case EventTrialCompleted:
		state.Status = benchmark.StatusRunning
		state.Trial = event.Trial
		state.Trials = event.Trials
	case EventCompleted:
		state.Status = benchmark.StatusPassed
		state.EndTime = &now
		state.Duration = event.Duration
		state.VerdictsTotal = event.VerdictsTotal
		state.VerdictsPassed = event.VerdictsPassed
	case EventFailed:
		state.Status = benchmark.StatusFailed
		state.EndTime = &now
		state.Message = event.Message
		state.VerdictsTotal = event.VerdictsTotal
		state.VerdictsPassed = event.VerdictsPassed
	case EventSkipped:
		state.Status = benchmark.StatusSkipped
	case EventTimedOut:
		state.Status = benchmark.StatusTimedOut
		state.EndTime = &now
	}

	d.Benchmarks[event.BenchmarkID] = state
	d.recalcSummary()
}

func (d *DashboardData) recalcSummary() {
	s := DashboardSummary{}
	for _, b := range d.Benchmarks {
		s.Total++
		switch b.Status {
		case benchmark.StatusPassed:
			s.Passed++
		case benchmark.StatusFailed:
			s.Failed++
		case benchmark.StatusSkipped:
			s.Skipped++
		case benchmark.StatusRunning:
			s.Running++
		default:
			s.Pending++
		}
	}
	if completed := s.Passed + s.Failed; completed > 0 {
		s.PassRate = float64(s.Passed) / float64(completed) * 100
	}
	s.Elapsed = time.Since(d.StartTime).Round(time.Millisecond).String()
	d.Summary = s
}

// Snapshot returns a copy of the current dashboard state.
func (d *DashboardData) Snapshot() DashboardData {
	d.mu.RLock()
	defer d.mu.RUnlock()
	snap := DashboardData{
		RunID:     d.RunID,
		StartTime: d.StartTime,
		Status:    d.Status,
		Summary:   d.Summary,
	}
	snap.Benchmarks = make(map[benchmark.ID]BenchmarkState, len(d.Benchmarks))
	for k, v := range d.Benchmarks {
		snap.Benchmarks[k] = v
	}
	return snap
}

// SetStatus sets the overall run status.
func (d *DashboardData) SetStatus(status string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Status = status
}

// BuildDashboardData creates a DashboardData snapshot from an
// EventCollector by replaying all collected events.
func BuildDashboardData(
	collector *EventCollector,
) *DashboardData {
	data := NewDashboardData("snapshot")
	for _, event := range collector.Events() {
		data.UpdateFromEvent(event)
	}
	return data
}

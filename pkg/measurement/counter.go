package measurement

import (
	"sort"
	"sync/atomic"
	"time"
)

// Counter is a named metric incremented by benchmark code during a
// trial. It is safe for concurrent use from any number of goroutines.
type Counter struct {
	name  string
	value atomic.Int64
}

// NewCounter creates a counter with the given name and a zero value.
func NewCounter(name string) *Counter {
	return &Counter{name: name}
}

// Name returns the counter name.
func (c *Counter) Name() string { return c.name }

// Increment adds one to the counter.
func (c *Counter) Increment() {
	c.value.Add(1)
}

// Add adds delta to the counter. Negative deltas are ignored: counter
// values never decrease within a trial.
func (c *Counter) Add(delta int64) {
	if delta < 0 {
		return
	}
	c.value.Add(delta)
}

// Value returns the current counter value.
func (c *Counter) Value() int64 {
	return c.value.Load()
}

// Reset sets the counter back to zero. Called by the runner between
// trials so every trial observes the counter from a clean slate.
func (c *Counter) Reset() {
	c.value.Store(0)
}

// CounterSet bundles the counters for one benchmark run, one per
// declaration. The runner resets the set before each trial and
// snapshots it after, so benchmark code may hold counter references
// across trials.
type CounterSet struct {
	counters map[string]*Counter
	order    []string
}

// NewCounterSet creates one counter per declaration. Declarations are
// assumed to be validated (non-empty, unique names).
func NewCounterSet(decls []Declaration) *CounterSet {
	cs := &CounterSet{
		counters: make(map[string]*Counter, len(decls)),
		order:    make([]string, 0, len(decls)),
	}
	for _, d := range decls {
		if _, exists := cs.counters[d.CounterName]; exists {
			continue
		}
		cs.counters[d.CounterName] = NewCounter(d.CounterName)
		cs.order = append(cs.order, d.CounterName)
	}
	return cs
}

// Get returns the counter with the given name.
func (cs *CounterSet) Get(name string) (*Counter, bool) {
	c, ok := cs.counters[name]
	return c, ok
}

// Increment adds one to the named counter. Unknown names are ignored;
// use Get when a missing counter should be detected.
func (cs *CounterSet) Increment(name string) {
	if c, ok := cs.counters[name]; ok {
		c.Increment()
	}
}

// Names returns the counter names sorted alphabetically.
func (cs *CounterSet) Names() []string {
	names := make([]string, len(cs.order))
	copy(names, cs.order)
	sort.Strings(names)
	return names
}

// Len returns the number of counters in the set.
func (cs *CounterSet) Len() int {
	return len(cs.counters)
}

// Reset zeroes every counter in the set.
func (cs *CounterSet) Reset() {
	for _, c := range cs.counters {
		c.Reset()
	}
}

// Snapshot captures one TrialSample per counter for a trial that took
// the given elapsed duration. Samples are ordered by counter name for
// deterministic output.
func (cs *CounterSet) Snapshot(elapsed time.Duration) []TrialSample {
	samples := make([]TrialSample, 0, len(cs.counters))
	for _, name := range cs.Names() {
		samples = append(samples, TrialSample{
			CounterName: name,
			Value:       cs.counters[name].Value(),
			Elapsed:     elapsed,
		})
	}
	return samples
}

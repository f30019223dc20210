package measurement

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounter_IncrementAndAdd(t *testing.T) {
	c := NewCounter("ops")

	c.Increment()
	c.Increment()
	c.Add(40)

	assert.Equal(t, "ops", c.Name())
	assert.Equal(t, int64(42), c.Value())
}

func TestCounter_Add_NegativeIgnored(t *testing.T) {
	c := NewCounter("ops")
	c.Add(10)

	c.Add(-5)

	assert.Equal(t, int64(10), c.Value())
}

func TestCounter_Reset(t *testing.T) {
	c := NewCounter("ops")
	c.Add(99)

	c.Reset()

	assert.Equal(t, int64(0), c.Value())
}

func TestCounter_ConcurrentIncrement(t *testing.T) {
	c := NewCounter("ops")

	const goroutines = 50
	const perGoroutine = 200

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				c.Increment()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(goroutines*perGoroutine), c.Value())
}

func TestCounterSet_GetAndIncrement(t *testing.T) {
	cs := NewCounterSet([]Declaration{
		NewDeclaration("reads"),
		NewDeclaration("writes"),
	})

	reads, ok := cs.Get("reads")
	require.True(t, ok)
	reads.Increment()
	cs.Increment("writes")
	cs.Increment("missing") // no-op

	assert.Equal(t, int64(1), reads.Value())
	writes, _ := cs.Get("writes")
	assert.Equal(t, int64(1), writes.Value())

	_, ok = cs.Get("missing")
	assert.False(t, ok)
}

func TestCounterSet_DuplicateDeclarationsCollapse(t *testing.T) {
	cs := NewCounterSet([]Declaration{
		NewDeclaration("ops"),
		NewDeclaration("ops"),
	})

	assert.Equal(t, 1, cs.Len())
}

func TestCounterSet_Snapshot_SortedByName(t *testing.T) {
	cs := NewCounterSet([]Declaration{
		NewDeclaration("writes"),
		NewDeclaration("reads"),
	})
	cs.Increment("reads")
	cs.Increment("writes")
	cs.Increment("writes")

	samples := cs.Snapshot(2 * time.Second)

	require.Len(t, samples, 2)
	assert.Equal(t, "reads", samples[0].CounterName)
	assert.Equal(t, int64(1), samples[0].Value)
	assert.Equal(t, "writes", samples[1].CounterName)
	assert.Equal(t, int64(2), samples[1].Value)
	assert.Equal(t, 2*time.Second, samples[0].Elapsed)
}

func TestCounterSet_Reset(t *testing.T) {
	cs := NewCounterSet([]Declaration{NewDeclaration("ops")})
	cs.Increment("ops")

	cs.Reset()

	c, _ := cs.Get("ops")
	assert.Equal(t, int64(0), c.Value())
}

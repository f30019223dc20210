package benchmark

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressReporter_New(t *testing.T) {
	p := NewProgressReporter()
	require.NotNil(t, p)
	assert.NotNil(t, p.Channel())
	assert.Nil(t, p.LastUpdate())
}

func TestProgressReporter_ReportProgress(t *testing.T) {
	p := NewProgressReporter()
	defer p.Close()

	p.ReportProgress(2, 5, "trial completed", map[string]int64{
		"writes": 1200,
	})

	select {
	case update := <-p.Channel():
		assert.Equal(t, 2, update.Trial)
		assert.Equal(t, 5, update.Trials)
		assert.Equal(t, "trial completed", update.Message)
		assert.Equal(t, int64(1200), update.Counters["writes"])
		assert.False(t, update.Timestamp.IsZero())
	case <-time.After(time.Second):
		t.Fatal("expected progress update on channel")
	}

	last := p.LastUpdate()
	require.NotNil(t, last)
	assert.Equal(t, 2, last.Trial)
}

func TestProgressReporter_BufferFullDropsUpdates(t *testing.T) {
	p := NewProgressReporter()
	defer p.Close()

	// Overflow the 64-entry buffer without a consumer.
	for i := 0; i < 200; i++ {
		p.ReportProgress(i, 200, "update", nil)
	}

	// LastUpdate always reflects the newest report even when
	// the channel dropped it.
	last := p.LastUpdate()
	require.NotNil(t, last)
	assert.Equal(t, 199, last.Trial)
}

func TestProgressReporter_ReportAfterClose(t *testing.T) {
	p := NewProgressReporter()
	p.Close()

	// Must not panic on a closed channel.
	p.ReportProgress(1, 3, "late", nil)

	last := p.LastUpdate()
	require.NotNil(t, last)
	assert.Equal(t, "late", last.Message)
}

func TestProgressReporter_CloseIdempotent(t *testing.T) {
	p := NewProgressReporter()
	p.Close()
	p.Close()
}

func TestProgressReporter_ConcurrentReports(t *testing.T) {
	p := NewProgressReporter()
	defer p.Close()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(trial int) {
			defer wg.Done()
			p.ReportProgress(trial, 10, "concurrent", nil)
		}(i)
	}
	wg.Wait()

	assert.NotNil(t, p.LastUpdate())
}

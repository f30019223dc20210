package benchmark

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.benchmarks/pkg/measurement"
)

func TestFuncBenchmark_RunTrial_IncrementsCounters(t *testing.T) {
	f := NewFuncBenchmark(
		"inc", "Increment", "counts ops", "demo",
		func(
			_ context.Context,
			counters *measurement.CounterSet,
		) error {
			for i := 0; i < 42; i++ {
				counters.Increment("ops")
			}
			return nil
		},
	)
	require.NoError(t, f.DeclareCounter("ops"))

	counters := measurement.NewCounterSet(f.Declarations())
	require.NoError(t, f.RunTrial(context.Background(), counters))

	c, ok := counters.Get("ops")
	require.True(t, ok)
	assert.Equal(t, int64(42), c.Value())
}

func TestFuncBenchmark_RunTrial_NoTrialFunc(t *testing.T) {
	f := NewFuncBenchmark("empty", "Empty", "", "demo", nil)

	err := f.RunTrial(
		context.Background(),
		measurement.NewCounterSet(nil),
	)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no trial function")
}

func TestFuncBenchmark_SetupAndCleanupHooks(t *testing.T) {
	var setupCalled, cleanupCalled bool

	f := NewFuncBenchmark(
		"hooked", "Hooked", "", "demo",
		func(
			_ context.Context, _ *measurement.CounterSet,
		) error {
			return nil
		},
	).WithSetup(func(_ context.Context) error {
		setupCalled = true
		return nil
	}).WithCleanup(func(_ context.Context) error {
		cleanupCalled = true
		return nil
	})

	require.NoError(t, f.Configure(testConfig(t, f.ID())))
	require.NoError(t, f.Setup(context.Background()))
	require.NoError(t, f.Cleanup(context.Background()))

	assert.True(t, setupCalled)
	assert.True(t, cleanupCalled)
}

func TestFuncBenchmark_Setup_FailsWhenNotConfigured(t *testing.T) {
	f := NewFuncBenchmark("x", "X", "", "demo", nil).
		WithSetup(func(_ context.Context) error {
			t.Fatal("setup hook must not run before configure")
			return nil
		})

	assert.Error(t, f.Setup(context.Background()))
}

func TestFuncBenchmark_Cleanup_PropagatesHookError(t *testing.T) {
	hookErr := errors.New("teardown failed")
	f := NewFuncBenchmark("x", "X", "", "demo", nil).
		WithCleanup(func(_ context.Context) error {
			return hookErr
		})

	assert.ErrorIs(t, f.Cleanup(context.Background()), hookErr)
}

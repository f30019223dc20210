package assertion

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.benchmarks/pkg/measurement"
)

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func TestNewEngine_RegistersAllBuiltins(t *testing.T) {
	e := NewEngine()

	builtins := []Condition{
		GreaterThan, GreaterThanOrEqualTo,
		LessThan, LessThanOrEqualTo,
		Equal, Between,
	}

	for _, c := range builtins {
		assert.True(t, e.HasComparator(c),
			"missing built-in comparator: %s", c)
	}
}

func TestDefaultEngine_Register_Success(t *testing.T) {
	e := NewEngine()

	err := e.Register("within_10_percent", func(
		observed float64, spec Spec,
	) (bool, string) {
		low := spec.Threshold * 0.9
		high := spec.Threshold * 1.1
		return observed >= low && observed <= high, "within 10%"
	})

	require.NoError(t, err)
	assert.True(t, e.HasComparator("within_10_percent"))
}

func TestDefaultEngine_Register_Duplicate(t *testing.T) {
	e := NewEngine()

	err := e.Register(GreaterThan, func(
		_ float64, _ Spec,
	) (bool, string) {
		return true, "dup"
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestDefaultEngine_Evaluate_ThroughputReadsAverageRate(t *testing.T) {
	e := NewEngine()
	spec := mustThroughput(t, "ops", GreaterThan, 150)
	stats := measurement.Statistics{
		CounterName:  "ops",
		Trials:       3,
		AverageRate:  200,
		AverageTotal: 200,
	}

	v := e.Evaluate(spec, stats)

	assert.True(t, v.Pass)
	assert.Equal(t, 200.0, v.Observed)
	assert.Equal(t,
		"ops throughput assertion: observed 200 > 150 → PASS",
		v.Message)
}

func TestDefaultEngine_Evaluate_TotalReadsAverageTotal(t *testing.T) {
	e := NewEngine()
	spec := mustBetweenTotal(t, "ops", 400, 700)
	stats := measurement.Statistics{
		CounterName:  "ops",
		Trials:       3,
		AverageRate:  200,
		AverageTotal: 200,
	}

	v := e.Evaluate(spec, stats)

	assert.False(t, v.Pass)
	assert.Equal(t, 200.0, v.Observed)
	assert.Equal(t,
		"ops total assertion: observed 200 within [400, 700] → FAIL",
		v.Message)
}

func TestDefaultEngine_Evaluate_UnknownCondition(t *testing.T) {
	e := NewEngine()
	spec := Spec{
		CounterName: "ops",
		Kind:        KindTotal,
		Condition:   Condition("approx"),
		Threshold:   100,
	}

	v := e.Evaluate(spec, measurement.Statistics{AverageTotal: 100})

	assert.False(t, v.Pass)
	assert.Contains(t, v.Message, "unknown condition")
}

func TestDefaultEngine_EvaluateAll_PreservesDeclarationOrder(t *testing.T) {
	e := NewEngine()
	specs := []Spec{
		mustThroughput(t, "ops", GreaterThan, 50),
		mustTotal(t, "ops", LessThan, 10),
	}
	stats := map[string]measurement.Statistics{
		"ops": {
			CounterName:  "ops",
			Trials:       3,
			AverageRate:  200,
			AverageTotal: 200,
		},
	}

	verdicts, err := e.EvaluateAll(specs, stats)

	require.NoError(t, err)
	require.Len(t, verdicts, 2)
	assert.True(t, verdicts[0].Pass)
	assert.False(t, verdicts[1].Pass)
	assert.Equal(t, KindThroughput, verdicts[0].Spec.Kind)
	assert.Equal(t, KindTotal, verdicts[1].Spec.Kind)

	report := BuildReport(verdicts)
	assert.False(t, report.OverallPass)
}

func TestDefaultEngine_EvaluateAll_MissingStatistics(t *testing.T) {
	e := NewEngine()
	specs := []Spec{
		mustThroughput(t, "latency", GreaterThan, 50),
	}

	_, err := e.EvaluateAll(specs, map[string]measurement.Statistics{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, measurement.ErrNoSamples))

	var insufficient *measurement.InsufficientDataError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "latency", insufficient.CounterName)
}

func TestDefaultEngine_ValidateSpecs_AcceptsRegisteredCustomCondition(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.Register("near", func(
		_ float64, _ Spec,
	) (bool, string) {
		return true, "near"
	}))

	decls := []measurement.Declaration{
		measurement.NewDeclaration("ops"),
	}
	specs := []Spec{
		{
			CounterName: "ops",
			Kind:        KindThroughput,
			Condition:   "near",
			Threshold:   100,
		},
	}

	assert.NoError(t, e.ValidateSpecs(decls, specs))
	assert.Error(t, ValidateSpecs(decls, specs),
		"package-level validation only accepts built-ins")
}

func TestEvaluate_EndToEnd_ThroughputScenario(t *testing.T) {
	// Three trials with values 100, 200, 300 over one second each:
	// the average rate is 200 ops/sec, above the 150 threshold.
	samples := samplesFor(t, "ops",
		[]int64{100, 200, 300}, []float64{1, 1, 1})

	stats, err := measurement.Aggregate("ops", samples)
	require.NoError(t, err)
	assert.Equal(t, 200.0, stats.AverageRate)

	v := NewEngine().Evaluate(
		mustThroughput(t, "ops", GreaterThan, 150), stats)
	assert.True(t, v.Pass)
}

func TestEvaluate_EndToEnd_TotalBetweenScenario(t *testing.T) {
	// Same samples: average total is 200, below the [400, 700]
	// window.
	samples := samplesFor(t, "ops",
		[]int64{100, 200, 300}, []float64{1, 1, 1})

	stats, err := measurement.Aggregate("ops", samples)
	require.NoError(t, err)
	assert.Equal(t, 200.0, stats.AverageTotal)

	v := NewEngine().Evaluate(
		mustBetweenTotal(t, "ops", 400, 700), stats)
	assert.False(t, v.Pass)
	assert.Equal(t,
		"ops total assertion: observed 200 within [400, 700] → FAIL",
		v.Message)
}

func samplesFor(
	t *testing.T,
	name string,
	values []int64,
	seconds []float64,
) []measurement.TrialSample {
	t.Helper()
	require.Equal(t, len(values), len(seconds))

	samples := make([]measurement.TrialSample, len(values))
	for i := range values {
		samples[i] = measurement.TrialSample{
			CounterName: name,
			Value:       values[i],
			Elapsed:     secondsToDuration(seconds[i]),
		}
	}
	return samples
}

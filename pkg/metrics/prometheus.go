package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusMetrics implements Metrics on prometheus/client_golang.
// Each instance carries its own registry so multiple runners (and
// tests) never collide on metric registration.
type PrometheusMetrics struct {
	registry *prometheus.Registry

	runDuration   *prometheus.HistogramVec
	trialDuration *prometheus.HistogramVec
	runsTotal     *prometheus.CounterVec
	assertions    *prometheus.CounterVec
	activeRuns    prometheus.Gauge
}

// NewPrometheusMetrics creates a PrometheusMetrics with all
// collectors registered on a private registry.
func NewPrometheusMetrics() *PrometheusMetrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &PrometheusMetrics{
		registry: registry,

		runDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "benchmarks",
			Name:      "run_duration_seconds",
			Help:      "Benchmark run duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300, 600},
		}, []string{"benchmark", "status"}),

		trialDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "benchmarks",
			Name:      "trial_duration_seconds",
			Help:      "Individual trial duration in seconds",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 15, 30, 60},
		}, []string{"benchmark"}),

		runsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "benchmarks",
			Name:      "runs_total",
			Help:      "Total benchmark runs by status",
		}, []string{"benchmark", "status"}),

		assertions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "benchmarks",
			Name:      "assertions_total",
			Help:      "Total assertion verdicts by result",
		}, []string{"benchmark", "counter", "result"}),

		activeRuns: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "benchmarks",
			Name:      "active_runs",
			Help:      "Number of benchmark runs currently executing",
		}),
	}
}

// RecordRun records a completed benchmark run.
func (m *PrometheusMetrics) RecordRun(
	benchmarkID, status string,
	duration time.Duration,
) {
	m.runDuration.WithLabelValues(benchmarkID, status).
		Observe(duration.Seconds())
	m.runsTotal.WithLabelValues(benchmarkID, status).Inc()
}

// RecordTrial records one completed measured trial.
func (m *PrometheusMetrics) RecordTrial(
	benchmarkID string,
	duration time.Duration,
) {
	m.trialDuration.WithLabelValues(benchmarkID).
		Observe(duration.Seconds())
}

// RecordAssertion records an assertion verdict.
func (m *PrometheusMetrics) RecordAssertion(
	benchmarkID, counter string,
	passed bool,
) {
	result := "fail"
	if passed {
		result = "pass"
	}
	m.assertions.WithLabelValues(
		benchmarkID, counter, result,
	).Inc()
}

// SetActiveRuns sets the active-runs gauge.
func (m *PrometheusMetrics) SetActiveRuns(count int) {
	m.activeRuns.Set(float64(count))
}

// Registry exposes the private registry for custom collectors.
func (m *PrometheusMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler serving this instance's metrics
// in the Prometheus exposition format.
func (m *PrometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(
		m.registry, promhttp.HandlerOpts{},
	)
}

// Package observability holds the Prometheus instrumentation for the API.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the platform.
type Metrics struct {
	HTTPRequests   *prometheus.CounterVec   // labels: route, method, status
	HTTPDuration   *prometheus.HistogramVec // labels: route, method
	SynthesisCalls prometheus.Counter
	ScenarioRuns   prometheus.Counter
	OracleRequests *prometheus.CounterVec // labels: operation, outcome={success,error,fallback}
	AuthFailures   prometheus.Counter
}

// NewMetrics creates all metrics and registers them with reg. Pass a fresh
// registry in tests to avoid duplicate-registration panics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate_intel",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method, and status code.",
		}, []string{"route", "method", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "climate_intel",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"route", "method"}),
		SynthesisCalls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "climate_intel",
			Name:      "synthesis_calls_total",
			Help:      "Total climate data bundles synthesized.",
		}),
		ScenarioRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "climate_intel",
			Name:      "scenario_runs_total",
			Help:      "Total what-if scenario simulations.",
		}),
		OracleRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate_intel",
			Name:      "oracle_requests_total",
			Help:      "Model API requests by operation and outcome.",
		}, []string{"operation", "outcome"}),
		AuthFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "climate_intel",
			Name:      "auth_failures_total",
			Help:      "Rejected authentication attempts.",
		}),
	}

	reg.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.SynthesisCalls,
		m.ScenarioRuns,
		m.OracleRequests,
		m.AuthFailures,
	)
	return m
}

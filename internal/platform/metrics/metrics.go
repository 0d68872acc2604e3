// Package metrics owns the Prometheus collectors for discovery runs, the place
// directory client and the HTTP surface
//
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tripmaker"

// Metrics bundles every collector on its own registry
type Metrics struct {
	reg *prometheus.Registry

	runs          *prometheus.CounterVec
	runDuration   *prometheus.HistogramVec
	attempts      prometheus.Counter
	candidates    *prometheus.CounterVec
	dirRequests   *prometheus.CounterVec
	dirDuration   *prometheus.HistogramVec
	breakerState  *prometheus.GaugeVec
	httpRequests  *prometheus.CounterVec
	httpDurations *prometheus.HistogramVec
}

// New registers all collectors plus the go and process collectors on a fresh registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		reg: reg,

		runs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "discover_runs_total",
			Help:      "Discovery runs by outcome",
		}, []string{"status"}),

		runDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "discover_duration_seconds",
			Help:      "Wall time of discovery runs",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 60},
		}, []string{"status"}),

		attempts: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "discover_attempts_total",
			Help:      "Sampled points searched across all runs",
		}),

		candidates: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "discover_candidates_total",
			Help:      "Evaluated candidates by outcome (accepted, rating, distance, detail_error)",
		}, []string{"outcome"}),

		dirRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "directory_requests_total",
			Help:      "Place directory HTTP calls by endpoint and result",
		}, []string{"endpoint", "status"}),

		dirDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "directory_request_duration_seconds",
			Help:      "Latency of single place directory HTTP attempts",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),

		breakerState: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "directory_breaker_state",
			Help:      "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		}, []string{"name"}),

		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Served HTTP requests",
		}, []string{"method", "route", "status"}),

		httpDurations: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Served HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// Registry exposes the underlying registry, mainly for tests
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.reg
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// Run records one finished discovery run
func (m *Metrics) Run(status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(status).Inc()
	m.runDuration.WithLabelValues(status).Observe(elapsed.Seconds())
}

// Attempt counts one sampled point
func (m *Metrics) Attempt() {
	if m == nil {
		return
	}
	m.attempts.Inc()
}

// Candidate counts one evaluated candidate
func (m *Metrics) Candidate(outcome string) {
	if m == nil {
		return
	}
	m.candidates.WithLabelValues(outcome).Inc()
}

// DirectoryCall records one directory request, status is an HTTP status or a
// short failure class, "transport_error" or "rejected"
func (m *Metrics) DirectoryCall(endpoint, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.dirRequests.WithLabelValues(endpoint, status).Inc()
	m.dirDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// BreakerState publishes the numeric breaker state for name
func (m *Metrics) BreakerState(name string, state float64) {
	if m == nil {
		return
	}
	m.breakerState.WithLabelValues(name).Set(state)
}

// HTTPRequest matches middleware.AccessLogOptions.Observe
func (m *Metrics) HTTPRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDurations.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

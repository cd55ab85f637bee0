package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pbench/primebench/internal/bench"
)

// Metrics holds the Prometheus instruments exposed on /metrics.
//
// Each Metrics instance carries its own registry so that constructing it more
// than once (tests, restarts) never trips duplicate registration.
type Metrics struct {
	handler http.Handler

	requestsTotal  prometheus.Counter
	activeRequests prometheus.Gauge
	runsTotal      *prometheus.CounterVec
	runDuration    *prometheus.HistogramVec
	primesFound    *prometheus.GaugeVec
}

// Verify that Metrics can observe benchmark completions.
var _ bench.Observer = (*Metrics)(nil)

// NewMetrics creates the metric instruments and their registry, including the
// standard Go runtime and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	factory := promauto.With(reg)
	m := &Metrics{
		requestsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "primebench_requests_total",
			Help: "Total number of HTTP requests served.",
		}),
		activeRequests: factory.NewGauge(prometheus.GaugeOpts{
			Name: "primebench_active_requests",
			Help: "Number of HTTP requests currently in flight.",
		}),
		runsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "primebench_runs_total",
			Help: "Total number of completed strategy runs.",
		}, []string{"strategy"}),
		runDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "primebench_run_duration_seconds",
			Help:    "Wall-clock duration of strategy runs.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16),
		}, []string{"strategy"}),
		primesFound: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "primebench_primes_found",
			Help: "Number of primes found by the last run of each strategy.",
		}, []string{"strategy"}),
	}
	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	return m
}

// IncrementActiveRequests marks the start of an HTTP request.
func (m *Metrics) IncrementActiveRequests() {
	m.activeRequests.Inc()
}

// DecrementActiveRequests marks the end of an HTTP request.
func (m *Metrics) DecrementActiveRequests() {
	m.activeRequests.Dec()
}

// CountRequest records one served HTTP request.
func (m *Metrics) CountRequest() {
	m.requestsTotal.Inc()
}

// RunCompleted records a successful strategy run. It implements
// bench.Observer so the harness can report completions directly.
func (m *Metrics) RunCompleted(strategy string, duration time.Duration, primesFound int) {
	m.runsTotal.WithLabelValues(strategy).Inc()
	m.runDuration.WithLabelValues(strategy).Observe(duration.Seconds())
	m.primesFound.WithLabelValues(strategy).Set(float64(primesFound))
}

// WritePrometheus serves the metrics in the Prometheus exposition format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

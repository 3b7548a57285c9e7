// Package metrics exposes client-side Prometheus counters for API round trips
// and store merges.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics owns a private registry so tests and multiple instances never clash
// with the global default registerer.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	merges   *prometheus.CounterVec
}

// New registers the shutter collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shutter",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "API operations by name and outcome.",
		}, []string{"op", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "shutter",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "API round-trip latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		merges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shutter",
			Subsystem: "store",
			Name:      "merges_total",
			Help:      "Store merges by entity kind and event.",
		}, []string{"kind", "event"}),
	}
	m.registry.MustRegister(m.requests, m.duration, m.merges)
	return m
}

// ObserveRequest records one finished API operation. A nil receiver is a no-op.
func (m *Metrics) ObserveRequest(op string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	m.requests.WithLabelValues(op, outcome).Inc()
	m.duration.WithLabelValues(op).Observe(elapsed.Seconds())
}

// ObserveMerge implements store.MergeObserver.
func (m *Metrics) ObserveMerge(kind, event string) {
	if m == nil {
		return
	}
	m.merges.WithLabelValues(kind, event).Inc()
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

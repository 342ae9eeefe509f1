package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusMetrics is the Collector implementation backed by
// github.com/prometheus/client_golang. Each series is registered with
// promauto against the default registry at construction time.
type PrometheusMetrics struct {
	resolutionDuration *prometheus.HistogramVec
	cacheAccesses      *prometheus.CounterVec
	recursionLimitHits prometheus.Counter
	storeOps           *prometheus.CounterVec
	loadOps            *prometheus.CounterVec
}

// NewPrometheusMetrics registers and returns the engine's Prometheus series.
func NewPrometheusMetrics() *PrometheusMetrics {
	m := &PrometheusMetrics{}

	m.resolutionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "statekit_resolution_duration_seconds",
			Help:    "Duration of State.Get calls in seconds, by outcome",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)

	m.cacheAccesses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "statekit_cache_accesses_total",
			Help: "Total state value cache lookups, by hit/miss",
		},
		[]string{"result"},
	)

	m.recursionLimitHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "statekit_recursion_limit_exceeded_total",
			Help: "Total resolutions aborted by the recursion depth limit",
		},
	)

	m.storeOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "statekit_store_ops_total",
			Help: "Total store adapter calls, by client kind and success",
		},
		[]string{"client_kind", "status"},
	)

	m.loadOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "statekit_load_ops_total",
			Help: "Total load adapter calls, by client kind and success",
		},
		[]string{"client_kind", "status"},
	)

	return m
}

// RecordResolution implements Collector.
func (m *PrometheusMetrics) RecordResolution(outcome string, duration time.Duration) {
	m.resolutionDuration.With(prometheus.Labels{"outcome": outcome}).Observe(duration.Seconds())
}

// RecordCacheAccess implements Collector.
func (m *PrometheusMetrics) RecordCacheAccess(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheAccesses.With(prometheus.Labels{"result": result}).Inc()
}

// RecordRecursionLimitExceeded implements Collector.
func (m *PrometheusMetrics) RecordRecursionLimitExceeded() {
	m.recursionLimitHits.Inc()
}

// RecordStoreOp implements Collector.
func (m *PrometheusMetrics) RecordStoreOp(clientKind string, success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	m.storeOps.With(prometheus.Labels{"client_kind": clientKind, "status": status}).Inc()
}

// RecordLoadOp implements Collector.
func (m *PrometheusMetrics) RecordLoadOp(clientKind string, success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	m.loadOps.With(prometheus.Labels{"client_kind": clientKind, "status": status}).Inc()
}

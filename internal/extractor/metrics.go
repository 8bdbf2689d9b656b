package extractor

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for the fallback orchestrator.
type Metrics struct {
	Registry         *prometheus.Registry
	RequestsTotal    *prometheus.CounterVec
	AttemptsTotal    *prometheus.CounterVec
	UpstreamDuration prometheus.Histogram
	CacheHitsTotal   prometheus.Counter
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "extractor_requests_total",
			Help: "Total extraction requests by capability and result.",
		},
		[]string{"capability", "result"},
	)
	attempts := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "extractor_attempts_total",
			Help: "Total upstream candidate attempts by capability and outcome.",
		},
		[]string{"capability", "outcome"},
	)
	upstreamDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "extractor_upstream_duration_seconds",
			Help:    "Latency of upstream candidate requests.",
			Buckets: prometheus.DefBuckets,
		},
	)
	cacheHits := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "extractor_cache_hits_total",
			Help: "Total requests served from the result cache.",
		},
	)

	registry.MustRegister(requests, attempts, upstreamDuration, cacheHits)

	return &Metrics{
		Registry:         registry,
		RequestsTotal:    requests,
		AttemptsTotal:    attempts,
		UpstreamDuration: upstreamDuration,
		CacheHitsTotal:   cacheHits,
	}
}

// IncRequest increments the per-capability request counter.
func (m *Metrics) IncRequest(capability, result string) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(capability, result).Inc()
}

// IncAttempt increments the per-candidate attempt counter.
func (m *Metrics) IncAttempt(capability, outcome string) {
	if m == nil {
		return
	}
	m.AttemptsTotal.WithLabelValues(capability, outcome).Inc()
}

// ObserveUpstreamDuration records the latency of one candidate request.
func (m *Metrics) ObserveUpstreamDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.UpstreamDuration.Observe(d.Seconds())
}

// IncCacheHit increments the cache hit counter.
func (m *Metrics) IncCacheHit() {
	if m == nil {
		return
	}
	m.CacheHitsTotal.Inc()
}

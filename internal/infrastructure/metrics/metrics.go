// Package metrics exposes Prometheus metrics for HTTP traffic and swap activity
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nutriswap/backend/internal/domain"
)

// Metrics holds every collector the service exports. Each instance owns its
// registry, so several can coexist in one process.
type Metrics struct {
	registry  *prometheus.Registry
	namespace string

	requestDuration *prometheus.HistogramVec
	requestCount    *prometheus.CounterVec
	cacheLookups    *prometheus.CounterVec
	recommendations prometheus.Histogram
	swapsApplied    *prometheus.CounterVec
}

var _ domain.SwapMetrics = (*Metrics)(nil)

// New creates and registers the collectors under namespace
func New(namespace string) *Metrics {
	m := &Metrics{
		registry:  prometheus.NewRegistry(),
		namespace: namespace,

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		requestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		cacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "recommendation_cache_lookups_total",
				Help:      "Recommendation cache lookups by result",
			},
			[]string{"result"},
		),
		recommendations: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "recommendation_candidates",
				Help:      "Number of candidates returned per recommendation",
				Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
			},
		),
		swapsApplied: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "swaps_applied_total",
				Help:      "Applied swaps by goal",
			},
			[]string{"goal"},
		),
	}

	m.registry.MustRegister(
		m.requestDuration,
		m.requestCount,
		m.cacheLookups,
		m.recommendations,
		m.swapsApplied,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one HTTP request
func (m *Metrics) ObserveRequest(method, path string, status int, duration time.Duration) {
	statusStr := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, statusStr).Observe(duration.Seconds())
	m.requestCount.WithLabelValues(method, path, statusStr).Inc()
}

// CacheLookup records a recommendation cache hit or miss
func (m *Metrics) CacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// RecommendationsServed records how many candidates a recommendation returned
func (m *Metrics) RecommendationsServed(candidates int) {
	m.recommendations.Observe(float64(candidates))
}

// SwapApplied counts an applied swap under its goal
func (m *Metrics) SwapApplied(goalTarget string) {
	m.swapsApplied.WithLabelValues(goalTarget).Inc()
}

// TrackCacheEntries exports size as the current number of cached
// recommendations. Call it at most once per instance.
func (m *Metrics) TrackCacheEntries(size func() int) {
	m.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: m.namespace,
			Name:      "recommendation_cache_entries",
			Help:      "Entries currently held by the in-memory recommendation cache",
		},
		func() float64 { return float64(size()) },
	))
}

package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for the API.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	externalErrors  *prometheus.CounterVec
	cacheHits       *prometheus.CounterVec
	cacheMisses     *prometheus.CounterVec
	fetchOutcomes   *prometheus.CounterVec
	logins          *prometheus.CounterVec
	watchReloads    prometheus.Counter
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "turbo_request_duration_seconds",
				Help:    "Duration of requests by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		externalErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "turbo_external_errors_total",
				Help: "Total errors from external services.",
			},
			[]string{"service"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "turbo_cache_hits_total",
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "turbo_cache_misses_total",
				Help: "Total cache misses.",
			},
			[]string{"cache"},
		),
		fetchOutcomes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "turbo_integration_fetches_total",
				Help: "Integration fetches by provider and outcome source.",
			},
			[]string{"provider", "source"},
		),
		logins: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "turbo_logins_total",
				Help: "Login attempts by result.",
			},
			[]string{"result"},
		),
		watchReloads: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "turbo_taskboard_reload_hints_total",
				Help: "Reload hints broadcast by the task board change feed.",
			},
		),
	}
}

// RecordRequestDuration records the duration of an operation.
func (m *Metrics) RecordRequestDuration(operation string, d time.Duration) {
	m.requestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrExternalError increments the external error counter.
func (m *Metrics) IncrExternalError(service string) {
	m.externalErrors.WithLabelValues(service).Inc()
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// IncrFetch records an integration fetch outcome (live, mock or empty).
func (m *Metrics) IncrFetch(provider, source string) {
	m.fetchOutcomes.WithLabelValues(provider, source).Inc()
}

// IncrLogin records a login attempt result (success or failure).
func (m *Metrics) IncrLogin(result string) {
	m.logins.WithLabelValues(result).Inc()
}

// IncrWatchReload counts a broadcast task-board reload hint.
func (m *Metrics) IncrWatchReload() {
	m.watchReloads.Inc()
}

// FetchCount returns the current value of the fetch-outcome counter for a
// provider/source pair. Used by tests.
func (m *Metrics) FetchCount(provider, source string) float64 {
	counter := m.fetchOutcomes.WithLabelValues(provider, source)
	pb := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(pb); err != nil {
		return 0
	}
	if pb.Counter != nil && pb.Counter.Value != nil {
		return *pb.Counter.Value
	}
	return 0
}

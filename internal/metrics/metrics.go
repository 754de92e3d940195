package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the emissions service
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Ingestion Metrics
	DatasetsIngestedTotal prometheus.CounterVec
	RowsAcceptedTotal     prometheus.Counter
	RowsRejectedTotal     prometheus.Counter

	// Computation Metrics
	ComputationsTotal   prometheus.CounterVec
	ComputationDuration prometheus.HistogramVec

	// Cache Metrics
	CacheHitsTotal   prometheus.CounterVec
	CacheMissesTotal prometheus.CounterVec
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "verdant_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "verdant_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "verdant_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Ingestion Metrics
		DatasetsIngestedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "verdant_datasets_ingested_total",
				Help: "Total datasets ingested by source (upload or synthetic)",
			},
			[]string{"source"},
		),
		RowsAcceptedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "verdant_rows_accepted_total",
				Help: "Total flight rows accepted at the ingestion boundary",
			},
		),
		RowsRejectedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "verdant_rows_rejected_total",
				Help: "Total flight rows rejected by per-row validation",
			},
		),

		// Computation Metrics
		ComputationsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "verdant_computations_total",
				Help: "Calculator invocations by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		ComputationDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "verdant_computation_duration_seconds",
				Help:    "Calculator execution time in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"operation"},
		),

		// Cache Metrics
		CacheHitsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "verdant_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "verdant_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
	}
}

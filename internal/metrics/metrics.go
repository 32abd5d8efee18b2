// Package metrics exposes the Prometheus collectors for the analysis pipeline,
// the catalog synchronizer and the storage circuit breaker.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AnalysesTotal counts analysis requests by outcome (ok, no_face, invalid_input, detector_unavailable, error)
	AnalysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hairfit_analyses_total",
		Help: "Total number of photo analyses by outcome",
	}, []string{"outcome"})

	// AnalysisDuration measures end-to-end pipeline latency
	AnalysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "hairfit_analysis_duration_seconds",
		Help:    "Photo analysis latency in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// FaceShapesTotal counts classified shapes
	FaceShapesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hairfit_face_shapes_total",
		Help: "Total number of classifications by face shape",
	}, []string{"shape", "fallback"})

	// UndertonesTotal counts estimated undertones
	UndertonesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hairfit_undertones_total",
		Help: "Total number of undertone estimates by result",
	}, []string{"undertone", "fallback"})

	// DetectorDuration measures landmark detector latency
	DetectorDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hairfit_detector_duration_seconds",
		Help:    "Landmark detection latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"detector"})

	// CatalogRefreshesTotal counts remote listings by result (success, failure)
	CatalogRefreshesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hairfit_catalog_refreshes_total",
		Help: "Total number of catalog refresh attempts by result",
	}, []string{"result"})

	// CatalogRefreshDuration measures listing plus rebuild time
	CatalogRefreshDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "hairfit_catalog_refresh_duration_seconds",
		Help:    "Catalog refresh latency in seconds",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	})

	// CatalogEntries is the number of style entries in the installed snapshot
	CatalogEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hairfit_catalog_entries",
		Help: "Number of style entries in the current catalog snapshot",
	})

	// CatalogAssets is the number of image variants in the installed snapshot
	CatalogAssets = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hairfit_catalog_assets",
		Help: "Number of image variants in the current catalog snapshot",
	})

	// CatalogSkippedTotal counts object names rejected during rebuilds
	CatalogSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hairfit_catalog_skipped_objects_total",
		Help: "Total number of malformed or duplicate object names skipped",
	})

	// CatalogDegraded is 1 while the catalog serves stale data after a failed refresh
	CatalogDegraded = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hairfit_catalog_degraded",
		Help: "Whether the catalog is serving stale data after a failed refresh (1) or not (0)",
	})

	// CircuitBreakerState tracks breaker state (0=closed, 1=half-open, 2=open)
	CircuitBreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "hairfit_circuit_breaker_state",
		Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
	}, []string{"name"})

	// CircuitBreakerRequests counts calls through a breaker by result (success, failure, rejected)
	CircuitBreakerRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hairfit_circuit_breaker_requests_total",
		Help: "Total number of requests through a circuit breaker by result",
	}, []string{"name", "result"})

	// CircuitBreakerTransitions counts state changes
	CircuitBreakerTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hairfit_circuit_breaker_transitions_total",
		Help: "Total number of circuit breaker state transitions",
	}, []string{"name", "from", "to"})
)

// BoolLabel renders a boolean as a label value
func BoolLabel(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

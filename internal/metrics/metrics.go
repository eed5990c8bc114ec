// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Catalog storage metrics
	CatalogOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_operation_duration_seconds",
			Help:    "Duration of catalog storage operations in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"operation", "backend"},
	)

	CatalogOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_operation_errors_total",
			Help: "Total number of failed catalog storage operations",
		},
		[]string{"operation", "backend"},
	)

	CatalogContentItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_content_items",
			Help: "Number of content items observed at the last stats computation",
		},
	)

	// Tagging engine metrics
	TagsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tagging_tags_generated_total",
			Help: "Total number of tags emitted by the tagging engine",
		},
		[]string{"family", "tag"},
	)

	TaggingConfidence = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tagging_confidence_score",
			Help:    "Distribution of confidence scores produced by the tagging engine",
			Buckets: prometheus.LinearBuckets(10, 10, 10), // 10..100
		},
	)

	TaggingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tagging_duration_seconds",
			Help:    "Time spent generating tags in seconds",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
		[]string{"mode"}, // "single", "batch"
	)

	BatchItems = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tagging_batch_items_total",
			Help: "Total number of batch items by outcome",
		},
		[]string{"outcome"}, // "success", "failed", "skipped"
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Importer metrics
	ImportedItems = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "import_items_total",
			Help: "Total number of imported content items by source and outcome",
		},
		[]string{"source", "outcome"}, // source: "csv", "json", "tmdb"
	)

	TMDBRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tmdb_request_duration_seconds",
			Help:    "Duration of TMDB API calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	TMDBCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tmdb_cache_lookups_total",
			Help: "TMDB page cache lookups by result",
		},
		[]string{"result"}, // "hit", "miss"
	)

	// WebSocket Metrics
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections",
			Help: "Current number of active WebSocket connections",
		},
	)

	WSMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_sent_total",
			Help: "Total number of WebSocket messages sent",
		},
	)

	WSErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_errors_total",
			Help: "Total number of WebSocket errors",
		},
		[]string{"error_type"},
	)

	// Event bus metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Total number of catalog events published",
		},
		[]string{"topic", "result"}, // result: "success", "error"
	)

	EventsDelivered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_delivered_total",
			Help: "Total number of catalog events handled by subscribers",
		},
		[]string{"topic"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordCatalogOperation records a storage operation metric
func RecordCatalogOperation(operation, backend string, duration time.Duration, err error) {
	CatalogOperationDuration.WithLabelValues(operation, backend).Observe(duration.Seconds())
	if err != nil {
		CatalogOperationErrors.WithLabelValues(operation, backend).Inc()
	}
}

// TagFamilies groups the three classifier outputs for RecordTagging.
type TagFamilies struct {
	Availability []string
	Brand        []string
	Category     []string
}

// RecordTagging records the tags and score of one engine result.
func RecordTagging(mode string, tags TagFamilies, confidence int, duration time.Duration) {
	for _, t := range tags.Availability {
		TagsGenerated.WithLabelValues("availability", t).Inc()
	}
	for _, t := range tags.Brand {
		TagsGenerated.WithLabelValues("brand", t).Inc()
	}
	for _, t := range tags.Category {
		TagsGenerated.WithLabelValues("category", t).Inc()
	}
	TaggingConfidence.Observe(float64(confidence))
	TaggingDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

// RecordBatchOutcome records the item outcomes of a finished batch.
func RecordBatchOutcome(success, failed, skipped int) {
	BatchItems.WithLabelValues("success").Add(float64(success))
	BatchItems.WithLabelValues("failed").Add(float64(failed))
	BatchItems.WithLabelValues("skipped").Add(float64(skipped))
}

// RecordImport records one imported item.
func RecordImport(source string, ok bool) {
	outcome := "success"
	if !ok {
		outcome = "failed"
	}
	ImportedItems.WithLabelValues(source, outcome).Inc()
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordEventPublish records a published event.
func RecordEventPublish(topic string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	EventsPublished.WithLabelValues(topic, result).Inc()
}

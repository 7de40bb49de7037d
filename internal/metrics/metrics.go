// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	// API Metrics
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

	// Feed Assembly Metrics
	FeedAssembliesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_assemblies_total",
			Help: "Total number of feed pages assembled",
		},
		[]string{"outcome"}, // "ok", "short", "error"
	)

	FeedAssemblyDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "feed_assembly_duration_seconds",
			Help:    "Duration of feed page assembly in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	FeedItemsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_items_served_total",
			Help: "Total number of feed items served",
		},
		[]string{"kind"}, // "organic", "sponsored"
	)

	FeedShortPages = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_short_pages_total",
			Help: "Pages served with fewer organic items than requested",
		},
	)

	FeedSponsorDuplicates = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_sponsor_duplicate_slots_total",
			Help: "Sponsored slots filled by repeating a sponsored video",
		},
	)

	// Session Metrics
	SessionResets = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_session_resets_total",
			Help: "Total number of feed sessions created or reset",
		},
	)

	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "feed_sessions_active",
			Help: "Number of stored feed sessions at the last sweep",
		},
	)

	SessionsSwept = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_sessions_swept_total",
			Help: "Total number of idle feed sessions removed",
		},
	)

	// Event Metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Total number of events published",
		},
		[]string{"topic"},
	)

	EventPublishFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_publish_failures_total",
			Help: "Total number of failed event publishes",
		},
		[]string{"topic"},
	)

	ImpressionsRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_impressions_recorded_total",
			Help: "Total number of new video impressions written to the database",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
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

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		// Truncate long error messages
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		DBQueryErrors.WithLabelValues(operation, table, errorType).Inc()
	}
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

// RecordFeedAssembly records the outcome of one feed page assembly.
func RecordFeedAssembly(duration time.Duration, organic, sponsored int, short bool, err error) {
	FeedAssemblyDuration.Observe(duration.Seconds())
	switch {
	case err != nil:
		FeedAssembliesTotal.WithLabelValues("error").Inc()
		return
	case short:
		FeedAssembliesTotal.WithLabelValues("short").Inc()
		FeedShortPages.Inc()
	default:
		FeedAssembliesTotal.WithLabelValues("ok").Inc()
	}
	FeedItemsServed.WithLabelValues("organic").Add(float64(organic))
	FeedItemsServed.WithLabelValues("sponsored").Add(float64(sponsored))
}

// RecordEventPublish records a publish attempt on topic.
func RecordEventPublish(topic string, err error) {
	if err != nil {
		EventPublishFailures.WithLabelValues(topic).Inc()
		return
	}
	EventsPublished.WithLabelValues(topic).Inc()
}

// RecordBreakerTransition records a circuit breaker state change. States use
// the gobreaker string form ("closed", "half-open", "open").
func RecordBreakerTransition(name, from, to string) {
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
	var v float64
	switch to {
	case "half-open":
		v = 1
	case "open":
		v = 2
	}
	CircuitBreakerState.WithLabelValues(name).Set(v)
}

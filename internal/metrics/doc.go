// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered on the default registry through promauto and
exposed at /metrics in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: In-flight requests (gauge)

Database Metrics:
  - duckdb_query_duration_seconds: Query execution time (histogram)
    Labels: operation, table
  - duckdb_query_errors_total: Query failures (counter)
    Labels: operation, table, error_type

Feed Metrics:
  - feed_assemblies_total: Pages assembled (counter)
    Labels: outcome ("ok", "short", "error")
  - feed_assembly_duration_seconds: Assembly latency (histogram)
  - feed_items_served_total: Items served (counter)
    Labels: kind ("organic", "sponsored")
  - feed_short_pages_total: Pages with fewer organic items than requested
  - feed_sponsor_duplicate_slots_total: Sponsored slots filled by repetition

Session Metrics:
  - feed_session_resets_total: Sessions created or reset
  - feed_sessions_active: Stored sessions at the last sweep (gauge)
  - feed_sessions_swept_total: Idle sessions removed

Event Metrics:
  - events_published_total / events_publish_failures_total
    Labels: topic
  - feed_impressions_recorded_total: New impressions written to DuckDB

Circuit Breaker Metrics:
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open (gauge)
  - circuit_breaker_state_transitions_total
    Labels: name, from_state, to_state

# Usage

	start := time.Now()
	rows, err := db.QueryContext(ctx, query)
	metrics.RecordDBQuery("select", "videos", time.Since(start), err)
*/
package metrics

// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

// Package database is the DuckDB-backed video catalogue behind the feed.
//
// # Overview
//
// DB implements feed.DataStore: it loads organic and sponsored candidates,
// sponsor records and requester profiles. Eligibility rules (public, not
// deleted, influencer-owned for organic videos, blocked owners excluded) are
// applied in SQL so the assembler only post-filters.
//
// Files:
//   - database.go: connection lifecycle and pool tuning
//   - schema.go: tables and indexes
//   - feed_source.go: feed.DataStore queries
//   - impressions.go: per-user view rows and view counts
//   - seed.go: demo catalogue for local runs
//   - breaker.go: circuit breaker decorator
//   - profile_cache.go: TTL cache decorator for profiles
//
// # Decorators
//
// The server stacks the decorators as
//
//	ProfileCache -> BreakerStore -> DB
//
// so cached profiles are served even while the breaker is open.
//
// # Thread Safety
//
// All methods are safe for concurrent use. Impression writes retry DuckDB
// transaction conflicts a bounded number of times.
package database

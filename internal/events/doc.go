// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

/*
Package events carries feed impressions from the request path to storage.

When a page is served, the API hands the organic video IDs to an
ImpressionRecorder, which publishes an ImpressionEvent on the Bus. A Router
consumes the topic and writes each event to an ImpressionSink (the DuckDB
layer), which inserts video_views rows and bumps view counts.

# Backends

The Bus runs on NATS JetStream through watermill-nats when a URL is
configured. Deployments without NATS use an in-process GoChannel so the
same recorder and router code path is exercised. An EmbeddedServer can host
JetStream inside the process for single-node installs.

# Delivery

Publishing sets Nats-Msg-Id to the event ID so JetStream drops duplicates
within the stream's duplicate window. The consumer is idempotent: replayed
events insert nothing and leave view counts unchanged. Publish failures go
through a circuit breaker and never fail the feed request.
*/
package events

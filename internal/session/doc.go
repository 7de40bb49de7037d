// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

/*
Package session keeps the per-user browsing state of the feed.

A Session records which organic videos a user has already been shown so that
consecutive pages never repeat a video. Sessions are keyed by user ID (or by
a shared guest key for anonymous callers), reset whenever page 1 is
requested, and expire after an idle window.

Storage is pluggable through the Store interface:

  - MemoryStore: process-local map, for single-instance deployments
  - BadgerStore: BadgerDB-backed, survives restarts
  - NATSStore: NATS JetStream KeyValue bucket, shared by every instance

Manager implements the reset/touch/mark-seen lifecycle on top of a Store.
Sweep removes idle sessions and is driven by a supervised background service.
*/
package session

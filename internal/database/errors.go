// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package database

import (
	"errors"
	"io"
	"strings"

	"github.com/tomtom215/reelfeed/internal/feed"
)

var (
	// ErrUserNotFound is returned by UserProfile for unknown or deleted users.
	ErrUserNotFound = feed.ErrUserNotFound

	// ErrCircuitOpen is returned by BreakerStore while the breaker rejects calls.
	ErrCircuitOpen = errors.New("database circuit breaker is open")
)

// closeQuietly closes a resource and explicitly ignores any error.
// Use this for cleanup in error paths where Close() errors are not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}

// isTransactionConflict reports whether err is a DuckDB write-write conflict,
// which succeeds when retried.
func isTransactionConflict(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Transaction conflict") || strings.Contains(msg, "Conflict on")
}

// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/reelfeed/internal/logging"
	"github.com/tomtom215/reelfeed/internal/metrics"
)

const impressionRetries = 3

// RecordImpressions stores one view row per (video, user) pair and bumps
// view_count for pairs not seen before. Repeated impressions are no-ops.
// It returns how many new views were recorded.
func (db *DB) RecordImpressions(ctx context.Context, userID string, videoIDs []string, at time.Time) (int, error) {
	if userID == "" || len(videoIDs) == 0 {
		return 0, nil
	}

	var (
		added int
		err   error
	)
	for attempt := 1; attempt <= impressionRetries; attempt++ {
		start := time.Now()
		added, err = db.recordImpressionsTx(ctx, userID, videoIDs, at.UTC())
		metrics.RecordDBQuery("record_impressions", "video_views", time.Since(start), err)
		if !isTransactionConflict(err) {
			break
		}
		logging.Debug().
			Int("attempt", attempt).
			Str("user_id", userID).
			Msg("Impression write conflicted, retrying")
	}
	if err != nil {
		return 0, fmt.Errorf("failed to record impressions: %w", err)
	}
	return added, nil
}

func (db *DB) recordImpressionsTx(ctx context.Context, userID string, videoIDs []string, at time.Time) (added int, err error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	seen := make(map[string]struct{}, len(videoIDs))
	for _, id := range videoIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		var res sql.Result
		res, err = tx.ExecContext(ctx,
			`INSERT INTO video_views (video_id, user_id, viewed_at) VALUES (?, ?, ?) ON CONFLICT DO NOTHING`,
			id, userID, at)
		if err != nil {
			return 0, err
		}
		var n int64
		n, err = res.RowsAffected()
		if err != nil {
			return 0, err
		}
		if n == 0 {
			continue
		}
		if _, err = tx.ExecContext(ctx, `UPDATE videos SET view_count = view_count + 1 WHERE id = ?`, id); err != nil {
			return 0, err
		}
		added++
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return added, nil
}

// ViewCount returns the stored view count of a video.
func (db *DB) ViewCount(ctx context.Context, videoID string) (int64, error) {
	var n int64
	err := db.conn.QueryRowContext(ctx, `SELECT view_count FROM videos WHERE id = ?`, videoID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to read view count: %w", err)
	}
	return n, nil
}

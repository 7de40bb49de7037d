// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package database

import (
	"context"
	"fmt"
)

// Timestamps are stored as naive UTC TIMESTAMP values. TIMESTAMPTZ would
// need the ICU extension, which is never loaded.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id VARCHAR PRIMARY KEY,
		name VARCHAR NOT NULL DEFAULT '',
		username VARCHAR NOT NULL,
		role VARCHAR NOT NULL DEFAULT 'user',
		profile_pic VARCHAR NOT NULL DEFAULT '',
		cover_image VARCHAR NOT NULL DEFAULT '',
		is_deleted BOOLEAN NOT NULL DEFAULT false
	)`,
	`CREATE TABLE IF NOT EXISTS user_blocks (
		user_id VARCHAR NOT NULL,
		blocked_user_id VARCHAR NOT NULL,
		PRIMARY KEY (user_id, blocked_user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS videos (
		id VARCHAR PRIMARY KEY,
		owner_id VARCHAR NOT NULL,
		name VARCHAR NOT NULL DEFAULT '',
		caption VARCHAR NOT NULL DEFAULT '',
		url VARCHAR NOT NULL DEFAULT '',
		storage_key VARCHAR NOT NULL DEFAULT '',
		thumbnail_url VARCHAR NOT NULL DEFAULT '',
		is_private BOOLEAN NOT NULL DEFAULT false,
		is_deleted BOOLEAN NOT NULL DEFAULT false,
		sponsored BOOLEAN NOT NULL DEFAULT false,
		view_count BIGINT NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sponsors (
		id VARCHAR PRIMARY KEY,
		video_id VARCHAR NOT NULL,
		brand_name VARCHAR NOT NULL DEFAULT '',
		logo VARCHAR NOT NULL DEFAULT '',
		description VARCHAR NOT NULL DEFAULT '',
		url VARCHAR NOT NULL DEFAULT '',
		display_text VARCHAR NOT NULL DEFAULT 'Sponsored',
		cover_image VARCHAR NOT NULL DEFAULT '',
		shop_image VARCHAR NOT NULL DEFAULT '',
		shop_text VARCHAR NOT NULL DEFAULT '',
		username VARCHAR NOT NULL DEFAULT '',
		is_deleted BOOLEAN NOT NULL DEFAULT false
	)`,
	`CREATE TABLE IF NOT EXISTS video_views (
		video_id VARCHAR NOT NULL,
		user_id VARCHAR NOT NULL,
		viewed_at TIMESTAMP NOT NULL,
		PRIMARY KEY (video_id, user_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_videos_created_at ON videos(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_videos_owner ON videos(owner_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sponsors_video ON sponsors(video_id)`,
}

// initSchema creates all tables and indexes. Every statement is idempotent.
func (db *DB) initSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return nil
}

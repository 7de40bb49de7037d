// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/reelfeed/internal/feed"
	"github.com/tomtom215/reelfeed/internal/metrics"
	"github.com/tomtom215/reelfeed/internal/models"
)

var _ feed.DataStore = (*DB)(nil)

const videoColumns = `
	v.id, v.owner_id, v.name, v.caption, v.url, v.storage_key, v.thumbnail_url,
	v.sponsored, v.view_count, v.created_at,
	u.id, COALESCE(u.name, ''), COALESCE(u.username, ''), COALESCE(u.role, ''),
	COALESCE(u.profile_pic, ''), COALESCE(u.cover_image, '')`

// organicBase selects videos eligible for the organic feed: public, live,
// not sponsored and owned by a live influencer.
var organicBase = `SELECT ` + videoColumns + `
	FROM videos v
	JOIN users u ON u.id = v.owner_id
	WHERE v.is_private = false
	  AND v.is_deleted = false
	  AND v.sponsored = false
	  AND u.is_deleted = false
	  AND u.role = '` + models.RoleInfluencer + `'`

var sponsoredBase = `SELECT ` + videoColumns + `
	FROM videos v
	LEFT JOIN users u ON u.id = v.owner_id
	WHERE v.is_private = false
	  AND v.is_deleted = false
	  AND v.sponsored = true`

// OrganicCandidates returns up to f.Limit eligible organic videos, newest
// first, skipping excluded videos and blocked owners.
func (db *DB) OrganicCandidates(ctx context.Context, f feed.OrganicFilter) ([]*models.Video, error) {
	return db.queryOrganic(ctx, "organic_candidates", f, "ORDER BY v.created_at DESC, v.id LIMIT ?")
}

// SampleOrganic returns up to f.Limit eligible organic videos in random order.
func (db *DB) SampleOrganic(ctx context.Context, f feed.OrganicFilter) ([]*models.Video, error) {
	return db.queryOrganic(ctx, "sample_organic", f, "ORDER BY random() LIMIT ?")
}

func (db *DB) queryOrganic(ctx context.Context, op string, f feed.OrganicFilter, suffix string) ([]*models.Video, error) {
	if f.Limit <= 0 {
		return nil, nil
	}

	query, args := newQueryBuilder(organicBase).
		addNotIn("v.id", f.ExcludeVideoIDs).
		addNotIn("v.owner_id", f.BlockedOwnerIDs).
		addLimit(f.Limit).
		build(suffix)

	start := time.Now()
	videos, err := queryAndScan(ctx, db.conn, query, args, scanVideo)
	metrics.RecordDBQuery(op, "videos", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query organic videos: %w", err)
	}
	return videos, nil
}

// SponsoredCandidates returns up to f.Limit sponsored videos in random order.
func (db *DB) SponsoredCandidates(ctx context.Context, f feed.SponsoredFilter) ([]*models.Video, error) {
	if f.Limit <= 0 {
		return nil, nil
	}

	query, args := newQueryBuilder(sponsoredBase).
		addNotIn("v.owner_id", f.BlockedOwnerIDs).
		addLimit(f.Limit).
		build("ORDER BY random() LIMIT ?")

	start := time.Now()
	videos, err := queryAndScan(ctx, db.conn, query, args, scanVideo)
	metrics.RecordDBQuery("sponsored_candidates", "videos", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query sponsored videos: %w", err)
	}
	return videos, nil
}

// SponsorsForVideos returns the live sponsor record for each video that has
// one. When a video has several, the lowest sponsor ID wins.
func (db *DB) SponsorsForVideos(ctx context.Context, videoIDs []string) (map[string]*models.Sponsor, error) {
	result := make(map[string]*models.Sponsor, len(videoIDs))
	if len(videoIDs) == 0 {
		return result, nil
	}

	query := `SELECT id, video_id, brand_name, logo, description, url, display_text,
			cover_image, shop_image, shop_text, username
		FROM sponsors
		WHERE is_deleted = false AND video_id IN (` + placeholders(len(videoIDs)) + `)
		ORDER BY video_id, id`

	start := time.Now()
	sponsors, err := queryAndScan(ctx, db.conn, query, stringArgs(videoIDs), scanSponsor)
	metrics.RecordDBQuery("sponsors_for_videos", "sponsors", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query sponsors: %w", err)
	}

	for _, s := range sponsors {
		if _, ok := result[s.VideoID]; !ok {
			result[s.VideoID] = s
		}
	}
	return result, nil
}

// UserProfile returns the role and block list of a live user.
func (db *DB) UserProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	start := time.Now()
	profile := &models.UserProfile{}
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, role FROM users WHERE id = ? AND is_deleted = false`, userID,
	).Scan(&profile.ID, &profile.Role)
	if errors.Is(err, sql.ErrNoRows) {
		metrics.RecordDBQuery("user_profile", "users", time.Since(start), nil)
		return nil, ErrUserNotFound
	}
	metrics.RecordDBQuery("user_profile", "users", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	start = time.Now()
	blocked, err := queryAndScan(ctx, db.conn,
		`SELECT blocked_user_id FROM user_blocks WHERE user_id = ? ORDER BY blocked_user_id`,
		[]interface{}{userID},
		func(rows *sql.Rows) (string, error) {
			var id string
			err := rows.Scan(&id)
			return id, err
		})
	metrics.RecordDBQuery("user_blocks", "user_blocks", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query user blocks: %w", err)
	}
	profile.BlockedUserIDs = blocked
	return profile, nil
}

func scanVideo(rows *sql.Rows) (*models.Video, error) {
	var (
		v       models.Video
		ownerID sql.NullString
		owner   models.Owner
	)
	if err := rows.Scan(
		&v.ID, &v.OwnerID, &v.Name, &v.Caption, &v.URL, &v.StorageKey, &v.ThumbnailURL,
		&v.Sponsored, &v.ViewCount, &v.CreatedAt,
		&ownerID, &owner.Name, &owner.Username, &owner.Role, &owner.ProfilePic, &owner.CoverImage,
	); err != nil {
		return nil, err
	}
	if ownerID.Valid {
		owner.ID = ownerID.String
		v.Owner = &owner
	}
	v.CreatedAt = v.CreatedAt.UTC()
	return &v, nil
}

func scanSponsor(rows *sql.Rows) (*models.Sponsor, error) {
	var s models.Sponsor
	err := rows.Scan(&s.ID, &s.VideoID, &s.BrandName, &s.Logo, &s.Description, &s.URL,
		&s.DisplayText, &s.CoverImage, &s.ShopImage, &s.ShopText, &s.Username)
	return &s, err
}

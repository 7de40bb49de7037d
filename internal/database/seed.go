// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/reelfeed/internal/logging"
	"github.com/tomtom215/reelfeed/internal/models"
)

const (
	demoBucketURL = "https://reelfeed-media.s3.us-east-1.amazonaws.com/"

	// DemoViewerID is the seeded non-influencer account. It blocks
	// DemoBlockedInfluencerID.
	DemoViewerID            = "demo-viewer"
	DemoBlockedInfluencerID = "demo-inf-eli"
	demoBrandID             = "demo-brand-glow"
)

type demoUser struct {
	id, name, username, role string
}

var demoUsers = []demoUser{
	{"demo-inf-ava", "Ava Lin", "ava", models.RoleInfluencer},
	{"demo-inf-ben", "Ben Okafor", "benok", models.RoleInfluencer},
	{"demo-inf-cleo", "Cleo Marsh", "cleo", models.RoleInfluencer},
	{"demo-inf-dev", "Dev Patel", "devp", models.RoleInfluencer},
	{DemoBlockedInfluencerID, "Eli Stone", "eli", models.RoleInfluencer},
	{DemoViewerID, "Demo Viewer", "viewer", models.RoleUser},
	{demoBrandID, "Glow Labs", "glowlabs", models.RoleUser},
}

// Each influencer gets one video per age; the ages cover the recent tier,
// the week tier and the tail.
var demoAges = []time.Duration{
	2 * time.Hour,
	10 * time.Hour,
	2 * 24 * time.Hour,
	4 * 24 * time.Hour,
	10 * 24 * time.Hour,
	30 * 24 * time.Hour,
}

type demoSponsor struct {
	videoID, brand, text string
	deleted              bool
}

var demoSponsors = []demoSponsor{
	{"demo-ad-1", "Glow Labs", "Sponsored", false},
	{"demo-ad-2", "Glow Labs", "Paid partnership", false},
	{"demo-ad-3", "Glow Labs", "", true},
}

// SeedDemoData inserts a small demo catalogue. Rows that already exist are
// left untouched, so seeding twice is harmless.
func (db *DB) SeedDemoData(ctx context.Context) error {
	logging.Info().Msg("Seeding database with demo feed data")
	now := time.Now().UTC()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, u := range demoUsers {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO users (id, name, username, role, profile_pic)
			 VALUES (?, ?, ?, ?, ?) ON CONFLICT DO NOTHING`,
			u.id, u.name, u.username, u.role, demoBucketURL+"avatars/"+u.username+".jpg",
		); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.id, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO user_blocks (user_id, blocked_user_id) VALUES (?, ?) ON CONFLICT DO NOTHING`,
		DemoViewerID, DemoBlockedInfluencerID,
	); err != nil {
		return fmt.Errorf("failed to seed user block: %w", err)
	}

	insertVideo := func(id, owner string, age time.Duration, private, deleted, sponsored bool) error {
		key := "videos/" + id + ".mp4"
		_, err := tx.ExecContext(ctx,
			`INSERT INTO videos (id, owner_id, name, caption, url, storage_key, thumbnail_url,
				is_private, is_deleted, sponsored, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) ON CONFLICT DO NOTHING`,
			id, owner, "Clip "+id, "#reelfeed demo", demoBucketURL+key, key,
			demoBucketURL+"thumbs/"+id+".jpg", private, deleted, sponsored, now.Add(-age),
		)
		if err != nil {
			return fmt.Errorf("failed to seed video %s: %w", id, err)
		}
		return nil
	}

	for _, u := range demoUsers {
		if u.role != models.RoleInfluencer {
			continue
		}
		for i, age := range demoAges {
			if err := insertVideo(fmt.Sprintf("%s-v%d", u.id, i+1), u.id, age, false, false, false); err != nil {
				return err
			}
		}
	}

	// Ineligible rows keep the filters honest.
	if err := insertVideo("demo-private-1", "demo-inf-ava", time.Hour, true, false, false); err != nil {
		return err
	}
	if err := insertVideo("demo-deleted-1", "demo-inf-ben", time.Hour, false, true, false); err != nil {
		return err
	}
	if err := insertVideo("demo-viewer-v1", DemoViewerID, time.Hour, false, false, false); err != nil {
		return err
	}

	for i, s := range demoSponsors {
		if err := insertVideo(s.videoID, demoBrandID, time.Duration(i+1)*24*time.Hour, false, false, true); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO sponsors (id, video_id, brand_name, url, display_text, username, is_deleted)
			 VALUES (?, ?, ?, ?, ?, ?, ?) ON CONFLICT DO NOTHING`,
			"sponsor-"+s.videoID, s.videoID, s.brand, "https://glowlabs.example/shop",
			s.text, "glowlabs", s.deleted,
		); err != nil {
			return fmt.Errorf("failed to seed sponsor for %s: %w", s.videoID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed data: %w", err)
	}

	logging.Info().
		Int("users", len(demoUsers)).
		Int("sponsored", len(demoSponsors)).
		Msg("Demo data seeded")
	return nil
}

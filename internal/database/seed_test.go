// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package database

import (
	"context"
	"testing"

	"github.com/tomtom215/reelfeed/internal/feed"
)

func countRows(t *testing.T, db *DB, table string) int {
	t.Helper()
	var n int
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func TestSeedDemoData_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if err := db.SeedDemoData(ctx); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	videos := countRows(t, db, "videos")
	users := countRows(t, db, "users")
	sponsors := countRows(t, db, "sponsors")

	if err := db.SeedDemoData(ctx); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if got := countRows(t, db, "videos"); got != videos {
		t.Errorf("videos after reseed = %d, want %d", got, videos)
	}
	if got := countRows(t, db, "users"); got != users {
		t.Errorf("users after reseed = %d, want %d", got, users)
	}
	if got := countRows(t, db, "sponsors"); got != sponsors {
		t.Errorf("sponsors after reseed = %d, want %d", got, sponsors)
	}
}

func TestSeedDemoData_FeedShape(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	if err := db.SeedDemoData(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}

	organic, err := db.OrganicCandidates(ctx, feed.OrganicFilter{Limit: 1000})
	if err != nil {
		t.Fatalf("OrganicCandidates: %v", err)
	}
	influencers := 0
	for _, u := range demoUsers {
		if u.id != DemoViewerID && u.id != demoBrandID {
			influencers++
		}
	}
	if want := influencers * len(demoAges); len(organic) != want {
		t.Errorf("organic videos = %d, want %d", len(organic), want)
	}

	profile, err := db.UserProfile(ctx, DemoViewerID)
	if err != nil {
		t.Fatalf("UserProfile: %v", err)
	}
	if len(profile.BlockedUserIDs) != 1 || profile.BlockedUserIDs[0] != DemoBlockedInfluencerID {
		t.Errorf("viewer blocks = %v", profile.BlockedUserIDs)
	}

	sponsored, err := db.SponsoredCandidates(ctx, feed.SponsoredFilter{Limit: 10})
	if err != nil {
		t.Fatalf("SponsoredCandidates: %v", err)
	}
	if len(sponsored) != len(demoSponsors) {
		t.Errorf("sponsored = %d, want %d", len(sponsored), len(demoSponsors))
	}

	records, err := db.SponsorsForVideos(ctx, videoIDs(sponsored))
	if err != nil {
		t.Fatalf("SponsorsForVideos: %v", err)
	}
	if len(records) != len(demoSponsors)-1 {
		t.Errorf("live sponsor records = %d, want %d", len(records), len(demoSponsors)-1)
	}
}

// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tomtom215/reelfeed/internal/feed"
	"github.com/tomtom215/reelfeed/internal/models"
)

func TestProfileCache_CachesHits(t *testing.T) {
	t.Parallel()

	stub := newStubStore()
	stub.profiles["u1"] = &models.UserProfile{ID: "u1", Role: models.RoleUser, BlockedUserIDs: []string{"x"}}
	pc := NewProfileCache(stub, time.Minute)
	defer pc.Close()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		p, err := pc.UserProfile(ctx, "u1")
		if err != nil || p.ID != "u1" {
			t.Fatalf("UserProfile = %v, %v", p, err)
		}
	}
	if got := stub.count("profile"); got != 1 {
		t.Errorf("underlying calls = %d, want 1", got)
	}
	if s := pc.Stats(); s.Hits != 2 {
		t.Errorf("Hits = %d, want 2", s.Hits)
	}
}

func TestProfileCache_BlockListFreshness(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		ttl         time.Duration
		wantBlocked bool
	}{
		{"disabled cache sees new block", 0, true},
		{"enabled cache serves cached block list", 30 * time.Second, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			stub := newStubStore()
			stub.profiles["u1"] = &models.UserProfile{ID: "u1", Role: models.RoleUser}
			pc := NewProfileCache(stub, tt.ttl)
			defer pc.Close()
			ctx := context.Background()

			if _, err := pc.UserProfile(ctx, "u1"); err != nil {
				t.Fatalf("UserProfile: %v", err)
			}

			stub.mu.Lock()
			stub.profiles["u1"] = &models.UserProfile{ID: "u1", Role: models.RoleUser, BlockedUserIDs: []string{"owner-x"}}
			stub.mu.Unlock()

			p, err := pc.UserProfile(ctx, "u1")
			if err != nil {
				t.Fatalf("UserProfile: %v", err)
			}
			blocked := len(p.BlockedUserIDs) == 1 && p.BlockedUserIDs[0] == "owner-x"
			if blocked != tt.wantBlocked {
				t.Errorf("BlockedUserIDs = %v, want owner-x blocked = %v", p.BlockedUserIDs, tt.wantBlocked)
			}
		})
	}
}

func TestProfileCache_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	stub := newStubStore()
	pc := NewProfileCache(stub, time.Minute)
	defer pc.Close()
	ctx := context.Background()

	if _, err := pc.UserProfile(ctx, "u2"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
	stub.mu.Lock()
	stub.profiles["u2"] = &models.UserProfile{ID: "u2"}
	stub.mu.Unlock()

	if _, err := pc.UserProfile(ctx, "u2"); err != nil {
		t.Errorf("profile created after miss should be found: %v", err)
	}
}

func TestProfileCache_PassesOtherCallsThrough(t *testing.T) {
	t.Parallel()

	stub := newStubStore()
	pc := NewProfileCache(stub, 0)
	defer pc.Close()
	ctx := context.Background()

	if _, err := pc.OrganicCandidates(ctx, feed.OrganicFilter{Limit: 1}); err != nil {
		t.Fatalf("OrganicCandidates: %v", err)
	}
	stub.profiles["u3"] = &models.UserProfile{ID: "u3"}
	for i := 0; i < 2; i++ {
		if _, err := pc.UserProfile(ctx, "u3"); err != nil {
			t.Fatalf("UserProfile: %v", err)
		}
	}
	if got := stub.count("profile"); got != 2 {
		t.Errorf("disabled cache should not cache: calls = %d", got)
	}
	if got := stub.count("organic"); got != 1 {
		t.Errorf("organic calls = %d, want 1", got)
	}
}

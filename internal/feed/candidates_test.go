// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package feed

import (
	"context"
	"testing"
	"time"

	"github.com/tomtom215/reelfeed/internal/models"
	"github.com/tomtom215/reelfeed/internal/session"
)

func TestTierOf(t *testing.T) {
	t.Parallel()
	a, _ := newTestAssembler(t, newMockDataStore(), 1)

	tests := []struct {
		name string
		age  time.Duration
		want int
	}{
		{"one hour", time.Hour, tierRecent},
		{"just under a day", 24*time.Hour - time.Second, tierRecent},
		{"exactly a day", 24 * time.Hour, tierWeek},
		{"three days", 72 * time.Hour, tierWeek},
		{"exactly a week", 7 * 24 * time.Hour, tierOlder},
		{"a month", 30 * 24 * time.Hour, tierOlder},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.tierOf(organicVideo("v", "o", tt.age), testNow); got != tt.want {
				t.Errorf("tierOf(%v) = %d, want %d", tt.age, got, tt.want)
			}
		})
	}
}

func TestDrainTiers_Order(t *testing.T) {
	t.Parallel()
	a, _ := newTestAssembler(t, newMockDataStore(), 3)

	pool := []*models.Video{
		organicVideo("old1", "o1", 10*24*time.Hour),
		organicVideo("wk1", "o1", 2*24*time.Hour),
		organicVideo("new1", "o2", time.Hour),
		organicVideo("old2", "o2", 9*24*time.Hour),
		organicVideo("new2", "o1", 2*time.Hour),
		organicVideo("wk2", "o3", 3*24*time.Hour),
	}

	got := a.drainTiers(pool, 5, testNow)
	if len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}
	wantTiers := []int{tierRecent, tierRecent, tierWeek, tierWeek, tierOlder}
	for i, v := range got {
		if tier := a.tierOf(v, testNow); tier != wantTiers[i] {
			t.Errorf("position %d: %s in tier %d, want %d", i, v.ID, tier, wantTiers[i])
		}
	}
}

func TestSelectOrganic_TopsUpWithSample(t *testing.T) {
	t.Parallel()

	store := newMockDataStore(
		organicVideo("a", "o1", time.Hour),
		organicVideo("b", "o2", time.Hour),
	)
	// The newest-first fetch only returns one video.
	store.organicCap = 1
	a, _ := newTestAssembler(t, store, 1)

	sess := session.New("u", 1, testNow)
	got, err := a.selectOrganic(context.Background(), sess, nil, 2, testNow)
	if err != nil {
		t.Fatalf("selectOrganic: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID == got[1].ID {
		t.Errorf("sample duplicated pool video %s", got[0].ID)
	}
	if store.sampleCalls != 1 {
		t.Errorf("sampleCalls = %d, want 1", store.sampleCalls)
	}
}

func TestSelectOrganic_FiltersSeenAndBlocked(t *testing.T) {
	t.Parallel()

	// A misbehaving source that ignores the filter.
	leaky := &leakySource{mockDataStore: newMockDataStore(
		organicVideo("seen", "o1", time.Hour),
		organicVideo("blocked", "bad", time.Hour),
		organicVideo("ok", "o2", time.Hour),
	)}
	a, _ := newTestAssembler(t, leaky, 1)

	sess := session.New("u", 1, testNow)
	sess.Seen["seen"] = struct{}{}

	got, err := a.selectOrganic(context.Background(), sess, []string{"bad"}, 5, testNow)
	if err != nil {
		t.Fatalf("selectOrganic: %v", err)
	}
	if len(got) != 1 || got[0].ID != "ok" {
		ids := make([]string, len(got))
		for i, v := range got {
			ids[i] = v.ID
		}
		t.Errorf("got %v, want [ok]", ids)
	}
}

type leakySource struct{ *mockDataStore }

func (l *leakySource) OrganicCandidates(_ context.Context, _ OrganicFilter) ([]*models.Video, error) {
	return l.videos, nil
}

func (l *leakySource) SampleOrganic(_ context.Context, _ OrganicFilter) ([]*models.Video, error) {
	return l.videos, nil
}

// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package feed

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelfeed/internal/models"
	"github.com/tomtom215/reelfeed/internal/session"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// mockDataStore applies the eligibility rules a real source must enforce.
type mockDataStore struct {
	mu       sync.Mutex
	videos   []*models.Video
	sponsors map[string]*models.Sponsor
	profiles map[string]*models.UserProfile

	organicErr   error
	sampleErr    error
	sponsoredErr error
	sponsorErr   error
	profileErr   error

	// organicCap truncates OrganicCandidates below the requested limit.
	organicCap int

	organicCalls   int
	sampleCalls    int
	sponsoredCalls int
	lastOrganic    OrganicFilter
}

func newMockDataStore(videos ...*models.Video) *mockDataStore {
	return &mockDataStore{
		videos:   videos,
		sponsors: make(map[string]*models.Sponsor),
		profiles: make(map[string]*models.UserProfile),
	}
}

func toSet(ids []string) map[string]struct{} {
	s := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (m *mockDataStore) eligibleOrganic(f OrganicFilter) []*models.Video {
	exclude := toSet(f.ExcludeVideoIDs)
	blocked := toSet(f.BlockedOwnerIDs)

	var out []*models.Video
	for _, v := range m.videos {
		if v.IsPrivate || v.IsDeleted || v.Sponsored {
			continue
		}
		if v.Owner == nil || v.Owner.Role != models.RoleInfluencer {
			continue
		}
		if _, ok := blocked[v.OwnerID]; ok {
			continue
		}
		if _, ok := exclude[v.ID]; ok {
			continue
		}
		out = append(out, v)
	}
	return out
}

func (m *mockDataStore) OrganicCandidates(_ context.Context, f OrganicFilter) ([]*models.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.organicCalls++
	m.lastOrganic = f
	if m.organicErr != nil {
		return nil, m.organicErr
	}

	out := m.eligibleOrganic(f)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > f.Limit {
		out = out[:f.Limit]
	}
	if m.organicCap > 0 && len(out) > m.organicCap {
		out = out[:m.organicCap]
	}
	return out, nil
}

func (m *mockDataStore) SampleOrganic(_ context.Context, f OrganicFilter) ([]*models.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sampleCalls++
	if m.sampleErr != nil {
		return nil, m.sampleErr
	}

	out := m.eligibleOrganic(f)
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *mockDataStore) SponsoredCandidates(_ context.Context, f SponsoredFilter) ([]*models.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sponsoredCalls++
	if m.sponsoredErr != nil {
		return nil, m.sponsoredErr
	}

	blocked := toSet(f.BlockedOwnerIDs)
	var out []*models.Video
	for _, v := range m.videos {
		if !v.Sponsored || v.IsPrivate || v.IsDeleted {
			continue
		}
		if _, ok := blocked[v.OwnerID]; ok {
			continue
		}
		out = append(out, v)
	}
	if len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *mockDataStore) SponsorsForVideos(_ context.Context, ids []string) (map[string]*models.Sponsor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sponsorErr != nil {
		return nil, m.sponsorErr
	}
	out := make(map[string]*models.Sponsor)
	for _, id := range ids {
		if sp, ok := m.sponsors[id]; ok && !sp.IsDeleted {
			out[id] = sp
		}
	}
	return out, nil
}

func (m *mockDataStore) UserProfile(_ context.Context, userID string) (*models.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.profileErr != nil {
		return nil, m.profileErr
	}
	p, ok := m.profiles[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	return p, nil
}

// prefixTransformer marks every rewritten URL with "cdn:".
type prefixTransformer struct{}

func (prefixTransformer) VideoURL(v *models.Video) string {
	if v.StorageKey != "" {
		return "cdn:" + v.StorageKey
	}
	return v.URL
}

func (prefixTransformer) AssetURL(raw string) string {
	if raw == "" {
		return ""
	}
	return "cdn:" + raw
}

func organicVideo(id, owner string, age time.Duration) *models.Video {
	return &models.Video{
		ID:           id,
		OwnerID:      owner,
		Owner:        &models.Owner{ID: owner, Username: owner, Role: models.RoleInfluencer, ProfilePic: owner + ".png"},
		Name:         "video " + id,
		StorageKey:   "videos/" + id + ".mp4",
		ThumbnailURL: "thumbs/" + id + ".jpg",
		CreatedAt:    testNow.Add(-age),
	}
}

func sponsoredVideo(id, owner string) *models.Video {
	v := organicVideo(id, owner, time.Hour)
	v.Sponsored = true
	return v
}

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestAssembler(t *testing.T, store DataStore, seed int64) (*Assembler, *testClock) {
	t.Helper()
	clock := &testClock{t: testNow}
	sessions := session.NewManager(session.NewMemoryStore(), session.Config{IdleTTL: time.Hour},
		session.WithClock(clock.Now))

	a, err := NewAssembler(DefaultConfig(), store, sessions, prefixTransformer{},
		WithRandom(NewRandom(seed)),
		WithClock(clock.Now),
		WithLogger(zerolog.Nop()),
	)
	if err != nil {
		t.Fatalf("NewAssembler: %v", err)
	}
	return a, clock
}

func itemIDs(items []models.FeedItem, sponsored bool) []string {
	var ids []string
	for _, it := range items {
		if it.Sponsored == sponsored {
			ids = append(ids, it.ID)
		}
	}
	return ids
}

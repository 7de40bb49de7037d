// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package feed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelfeed/internal/models"
	"github.com/tomtom215/reelfeed/internal/session"
)

const day = 24 * time.Hour

// scenarioStore has 12 organic videos (5 recent, 4 week-old, 3 older) across
// four owners and two sponsored videos.
func scenarioStore() *mockDataStore {
	var videos []*models.Video
	for i := 0; i < 5; i++ {
		videos = append(videos, organicVideo(fmt.Sprintf("recent%d", i), fmt.Sprintf("owner%d", i%4), time.Duration(i+1)*time.Hour))
	}
	for i := 0; i < 4; i++ {
		videos = append(videos, organicVideo(fmt.Sprintf("week%d", i), fmt.Sprintf("owner%d", (i+1)%4), time.Duration(i+2)*day))
	}
	for i := 0; i < 3; i++ {
		videos = append(videos, organicVideo(fmt.Sprintf("older%d", i), fmt.Sprintf("owner%d", (i+2)%4), time.Duration(i+10)*day))
	}
	videos = append(videos, sponsoredVideo("promoA", "brandA"), sponsoredVideo("promoB", "brandB"))

	store := newMockDataStore(videos...)
	store.sponsors["promoA"] = &models.Sponsor{VideoID: "promoA", BrandName: "Brand A", Logo: "logos/a.png"}
	store.sponsors["promoB"] = &models.Sponsor{VideoID: "promoB", BrandName: "Brand B"}
	return store
}

func TestAssemble_ExampleScenario(t *testing.T) {
	t.Parallel()
	a, _ := newTestAssembler(t, scenarioStore(), 11)
	ctx := context.Background()

	page1, err := a.Assemble(ctx, Request{UserID: "u1", PerPage: 10, Page: 1})
	if err != nil {
		t.Fatalf("page 1: %v", err)
	}
	if len(page1.Items) != 12 || page1.OrganicCount != 10 || page1.SponsoredCount != 2 {
		t.Fatalf("page 1: items=%d organic=%d sponsored=%d, want 12/10/2", len(page1.Items), page1.OrganicCount, page1.SponsoredCount)
	}
	if !page1.SessionReset || page1.Short {
		t.Errorf("page 1: reset=%v short=%v, want true/false", page1.SessionReset, page1.Short)
	}
	for i, item := range page1.Items {
		wantSponsored := i == 3 || i == 7
		if item.Sponsored != wantSponsored {
			t.Errorf("page 1 position %d sponsored = %v, want %v", i, item.Sponsored, wantSponsored)
		}
	}

	organic1 := itemIDs(page1.Items, false)
	older := 0
	for _, id := range organic1 {
		if strings.HasPrefix(id, "older") {
			older++
		}
	}
	if older != 1 {
		t.Errorf("page 1 has %d older videos, want 1 (all recent and week videos first)", older)
	}

	page2, err := a.Assemble(ctx, Request{UserID: "u1", PerPage: 10, Page: 2})
	if err != nil {
		t.Fatalf("page 2: %v", err)
	}
	if page2.SessionReset {
		t.Error("page 2 should continue the session")
	}
	if page2.OrganicCount != 2 || page2.SponsoredCount != 2 || !page2.Short {
		t.Fatalf("page 2: organic=%d sponsored=%d short=%v, want 2/2/true", page2.OrganicCount, page2.SponsoredCount, page2.Short)
	}
	for i, item := range page2.Items {
		if item.Sponsored != (i >= 2) {
			t.Errorf("page 2 position %d sponsored = %v", i, item.Sponsored)
		}
	}

	shown := make(map[string]bool)
	for _, id := range organic1 {
		shown[id] = true
	}
	for _, id := range itemIDs(page2.Items, false) {
		if shown[id] {
			t.Errorf("page 2 repeated %s", id)
		}
		if !strings.HasPrefix(id, "older") {
			t.Errorf("page 2 organic %s, want an older video", id)
		}
	}
}

func TestAssemble_NoRepeatsUntilReset(t *testing.T) {
	t.Parallel()
	store := scenarioStore()
	a, _ := newTestAssembler(t, store, 5)
	ctx := context.Background()

	seen := make(map[string]bool)
	for page := 1; page <= 4; page++ {
		resp, err := a.Assemble(ctx, Request{UserID: "u1", PerPage: 3, Page: page})
		if err != nil {
			t.Fatalf("page %d: %v", page, err)
		}
		for _, id := range itemIDs(resp.Items, false) {
			if seen[id] {
				t.Fatalf("page %d repeated %s", page, id)
			}
			seen[id] = true
		}
	}
	if len(seen) != 12 {
		t.Errorf("served %d distinct videos over 4 pages, want 12", len(seen))
	}

	exhausted, err := a.Assemble(ctx, Request{UserID: "u1", PerPage: 3, Page: 5})
	if err != nil {
		t.Fatalf("page 5: %v", err)
	}
	if exhausted.OrganicCount != 0 || !exhausted.Short {
		t.Errorf("exhausted session served %d organic videos", exhausted.OrganicCount)
	}

	restart, err := a.Assemble(ctx, Request{UserID: "u1", PerPage: 3, Page: 1})
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	if !restart.SessionReset || restart.OrganicCount != 3 {
		t.Errorf("page 1 after exhaustion: reset=%v organic=%d", restart.SessionReset, restart.OrganicCount)
	}
}

func TestAssemble_SessionExpiry(t *testing.T) {
	t.Parallel()
	a, clock := newTestAssembler(t, scenarioStore(), 5)
	ctx := context.Background()

	if _, err := a.Assemble(ctx, Request{UserID: "u1", PerPage: 5, Page: 1}); err != nil {
		t.Fatalf("page 1: %v", err)
	}
	clock.Advance(2 * time.Hour)

	resp, err := a.Assemble(ctx, Request{UserID: "u1", PerPage: 5, Page: 2})
	if err != nil {
		t.Fatalf("page 2: %v", err)
	}
	if !resp.SessionReset {
		t.Error("expired session should reset on page 2")
	}
}

func TestAssemble_OwnerSpreadOnPage(t *testing.T) {
	t.Parallel()

	for seed := int64(1); seed <= 10; seed++ {
		a, _ := newTestAssembler(t, scenarioStore(), seed)
		resp, err := a.Assemble(context.Background(), Request{UserID: "u1", PerPage: 10, Page: 1})
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}

		var organic []models.FeedItem
		for _, it := range resp.Items {
			if !it.Sponsored {
				organic = append(organic, it)
			}
		}
		for i := 1; i < len(organic); i++ {
			if organic[i].Owner.ID != organic[i-1].Owner.ID {
				continue
			}
			for _, rest := range organic[i:] {
				if rest.Owner.ID != organic[i].Owner.ID {
					t.Fatalf("seed %d: owner %s repeated at %d", seed, organic[i].Owner.ID, i)
				}
			}
		}
	}
}

func TestAssemble_BlockedOwners(t *testing.T) {
	t.Parallel()
	store := scenarioStore()
	store.profiles["u1"] = &models.UserProfile{ID: "u1", BlockedUserIDs: []string{"owner0", "brandA"}}
	a, _ := newTestAssembler(t, store, 2)

	resp, err := a.Assemble(context.Background(), Request{UserID: "u1", PerPage: 20, Page: 1})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	for _, it := range resp.Items {
		if it.Owner != nil && (it.Owner.ID == "owner0" || it.Owner.ID == "brandA") {
			t.Errorf("blocked owner %s served in %s", it.Owner.ID, it.InstanceID)
		}
	}
	if got := store.lastOrganic.BlockedOwnerIDs; len(got) != 2 {
		t.Errorf("block list not passed to source: %v", got)
	}
}

func TestAssemble_UnknownUserHasNoBlocks(t *testing.T) {
	t.Parallel()
	a, _ := newTestAssembler(t, scenarioStore(), 2)

	resp, err := a.Assemble(context.Background(), Request{UserID: "ghost", PerPage: 10, Page: 1})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if resp.OrganicCount != 10 {
		t.Errorf("OrganicCount = %d, want 10", resp.OrganicCount)
	}
}

func TestAssemble_OnlyOrganicMarkedSeen(t *testing.T) {
	t.Parallel()
	store := scenarioStore()
	sessions := session.NewManager(session.NewMemoryStore(), session.Config{}, session.WithClock(func() time.Time { return testNow }))
	a, err := NewAssembler(nil, store, sessions, prefixTransformer{}, WithRandom(NewRandom(4)), WithClock(func() time.Time { return testNow }))
	if err != nil {
		t.Fatalf("NewAssembler: %v", err)
	}
	ctx := context.Background()

	if _, err := a.Assemble(ctx, Request{UserID: "u1", PerPage: 10, Page: 1}); err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	sess, _, err := sessions.Resolve(ctx, "u1", 2)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if sess.HasSeen("promoA") || sess.HasSeen("promoB") {
		t.Error("sponsored videos must not be marked seen")
	}
	if len(sess.Seen) != 10 {
		t.Errorf("seen = %d, want 10", len(sess.Seen))
	}
}

func TestAssemble_Rendering(t *testing.T) {
	t.Parallel()
	a, _ := newTestAssembler(t, scenarioStore(), 8)

	resp, err := a.Assemble(context.Background(), Request{PerPage: 8, Page: 1})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	for _, it := range resp.Items {
		if !strings.HasPrefix(it.URL, "cdn:videos/") {
			t.Errorf("%s: URL = %q not rewritten", it.InstanceID, it.URL)
		}
		if !strings.HasPrefix(it.Owner.ProfilePic, "cdn:") {
			t.Errorf("%s: owner profile pic %q not rewritten", it.InstanceID, it.Owner.ProfilePic)
		}
		if !it.Sponsored {
			if it.InstanceID != it.ID || it.SponsorInfo != nil {
				t.Errorf("organic item %+v has sponsored fields", it)
			}
			continue
		}
		if it.InstanceID == it.ID {
			t.Errorf("sponsored InstanceID %q should differ from video ID", it.InstanceID)
		}
		if it.SponsorInfo == nil {
			t.Errorf("%s: missing sponsorInfo", it.InstanceID)
			continue
		}
		if it.SponsorInfo.DisplayText != models.DefaultSponsorDisplayText {
			t.Errorf("DisplayText = %q", it.SponsorInfo.DisplayText)
		}
		if it.SponsorInfo.Logo != "" && !strings.HasPrefix(it.SponsorInfo.Logo, "cdn:") {
			t.Errorf("sponsor logo %q not rewritten", it.SponsorInfo.Logo)
		}
	}
}

func TestAssemble_SharedVideoNotMutated(t *testing.T) {
	t.Parallel()
	store := newMockDataStore(sponsoredVideo("promo", "brand"), organicVideo("v1", "o1", time.Hour))
	a, _ := newTestAssembler(t, store, 1)

	if _, err := a.Assemble(context.Background(), Request{PerPage: 12, Page: 1}); err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	for _, v := range store.videos {
		if strings.HasPrefix(v.URL, "cdn:") || strings.HasPrefix(v.ThumbnailURL, "cdn:") {
			t.Errorf("source video %s was mutated: %+v", v.ID, v)
		}
	}
}

func TestAssemble_InvalidRequest(t *testing.T) {
	t.Parallel()
	a, _ := newTestAssembler(t, scenarioStore(), 1)

	tests := []struct {
		name string
		req  Request
	}{
		{"negative perPage", Request{PerPage: -1, Page: 1}},
		{"perPage above max", Request{PerPage: 101, Page: 1}},
		{"page zero", Request{PerPage: 10, Page: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := a.Assemble(context.Background(), tt.req); !errors.Is(err, ErrInvalidRequest) {
				t.Errorf("err = %v, want ErrInvalidRequest", err)
			}
		})
	}
}

func TestAssemble_DefaultPerPage(t *testing.T) {
	t.Parallel()
	a, _ := newTestAssembler(t, scenarioStore(), 1)

	resp, err := a.Assemble(context.Background(), Request{Page: 1})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if resp.PerPage != 10 {
		t.Errorf("PerPage = %d, want 10", resp.PerPage)
	}
}

func TestAssemble_ErrorPropagation(t *testing.T) {
	t.Parallel()
	errDB := errors.New("duckdb unavailable")

	tests := []struct {
		name   string
		set    func(*mockDataStore)
		userID string
		msg    string
	}{
		{"organic", func(m *mockDataStore) { m.organicErr = errDB }, "", "load organic candidates"},
		{"sponsored", func(m *mockDataStore) { m.sponsoredErr = errDB }, "", "load sponsored candidates"},
		{"sponsor records", func(m *mockDataStore) { m.sponsorErr = errDB }, "", "load sponsor records"},
		{"profile", func(m *mockDataStore) { m.profileErr = errDB }, "u1", "load user profile"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := scenarioStore()
			tt.set(store)
			a, _ := newTestAssembler(t, store, 1)

			_, err := a.Assemble(context.Background(), Request{UserID: tt.userID, PerPage: 10, Page: 1})
			if !errors.Is(err, errDB) {
				t.Fatalf("err = %v, want wrapped errDB", err)
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("err = %q, want it to mention %q", err, tt.msg)
			}
		})
	}
}

func TestAssemble_ShortPageWarnsOnce(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	clock := &testClock{t: testNow}
	sessions := session.NewManager(session.NewMemoryStore(), session.Config{}, session.WithClock(clock.Now))
	a, err := NewAssembler(nil, scenarioStore(), sessions, prefixTransformer{},
		WithRandom(NewRandom(1)), WithClock(clock.Now),
		WithLogger(zerolog.New(&buf).Level(zerolog.WarnLevel)))
	if err != nil {
		t.Fatalf("NewAssembler: %v", err)
	}

	for i := 0; i < 3; i++ {
		resp, err := a.Assemble(context.Background(), Request{PerPage: 50, Page: 1})
		if err != nil {
			t.Fatalf("Assemble: %v", err)
		}
		if !resp.Short {
			t.Fatal("expected a short page")
		}
	}
	if n := strings.Count(buf.String(), "running short"); n != 1 {
		t.Errorf("short-page warning logged %d times, want 1", n)
	}
}

func TestNewAssembler_Validation(t *testing.T) {
	t.Parallel()
	sessions := session.NewManager(session.NewMemoryStore(), session.Config{})

	if _, err := NewAssembler(&Config{}, newMockDataStore(), sessions, prefixTransformer{}); err == nil {
		t.Error("zero config should fail validation")
	}
	if _, err := NewAssembler(nil, nil, sessions, prefixTransformer{}); err == nil {
		t.Error("nil store should be rejected")
	}
}

// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/reelfeed/internal/models"
	"github.com/tomtom215/reelfeed/internal/session"
)

// recency tiers in drain order
const (
	tierRecent = iota
	tierWeek
	tierOlder
	tierCount
)

func (a *Assembler) tierOf(v *models.Video, now time.Time) int {
	age := v.Age(now)
	switch {
	case age < a.cfg.RecentWindow:
		return tierRecent
	case age < a.cfg.WeekWindow:
		return tierWeek
	default:
		return tierOlder
	}
}

// drainTiers buckets pool by recency, shuffles each bucket and takes videos
// from the newest bucket first until limit videos are collected.
func (a *Assembler) drainTiers(pool []*models.Video, limit int, now time.Time) []*models.Video {
	var tiers [tierCount][]*models.Video
	for _, v := range pool {
		t := a.tierOf(v, now)
		tiers[t] = append(tiers[t], v)
	}

	picked := make([]*models.Video, 0, limit)
	for _, tier := range tiers {
		shuffle(a.rnd, tier)
		for _, v := range tier {
			if len(picked) == limit {
				return picked
			}
			picked = append(picked, v)
		}
	}
	return picked
}

// selectOrganic returns up to perPage organic videos the session has not
// seen, ordered by recency tier.
func (a *Assembler) selectOrganic(ctx context.Context, sess *session.Session, blocked []string, perPage int, now time.Time) ([]*models.Video, error) {
	seen := sess.SeenIDs()
	guard := newEligibility(sess, blocked)

	pool, err := a.store.OrganicCandidates(ctx, OrganicFilter{
		ExcludeVideoIDs: seen,
		BlockedOwnerIDs: blocked,
		Limit:           perPage * a.cfg.OverFetchFactor,
	})
	if err != nil {
		return nil, fmt.Errorf("load organic candidates: %w", err)
	}

	picked := a.drainTiers(guard.filter(pool), perPage, now)
	if len(picked) >= perPage {
		return picked, nil
	}

	exclude := make([]string, 0, len(seen)+len(picked))
	exclude = append(exclude, seen...)
	for _, v := range picked {
		exclude = append(exclude, v.ID)
	}

	extra, err := a.store.SampleOrganic(ctx, OrganicFilter{
		ExcludeVideoIDs: exclude,
		BlockedOwnerIDs: blocked,
		Limit:           perPage - len(picked),
	})
	if err != nil {
		return nil, fmt.Errorf("sample organic candidates: %w", err)
	}

	for _, v := range guard.filter(extra) {
		if len(picked) == perPage {
			break
		}
		picked = append(picked, v)
	}
	return picked, nil
}

// eligibility re-checks source output against the session and block list.
// It also drops duplicates across calls.
type eligibility struct {
	sess    *session.Session
	blocked map[string]struct{}
	taken   map[string]struct{}
}

func newEligibility(sess *session.Session, blocked []string) *eligibility {
	e := &eligibility{
		sess:    sess,
		blocked: make(map[string]struct{}, len(blocked)),
		taken:   make(map[string]struct{}),
	}
	for _, id := range blocked {
		e.blocked[id] = struct{}{}
	}
	return e
}

func (e *eligibility) filter(videos []*models.Video) []*models.Video {
	out := videos[:0:0]
	for _, v := range videos {
		if v == nil || e.sess.HasSeen(v.ID) {
			continue
		}
		if _, ok := e.blocked[v.OwnerID]; ok {
			continue
		}
		if _, ok := e.taken[v.ID]; ok {
			continue
		}
		e.taken[v.ID] = struct{}{}
		out = append(out, v)
	}
	return out
}

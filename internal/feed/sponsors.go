// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package feed

import (
	"context"
	"fmt"

	"github.com/tomtom215/reelfeed/internal/models"
)

// sponsorBudget returns how many sponsored slots a page of perPage gets.
func (a *Assembler) sponsorBudget(perPage int) int {
	return perPage / a.cfg.SponsorDivisor
}

// selectSponsored fills the sponsored budget. When fewer distinct sponsored
// videos than slots are available, videos are reused round-robin; each slot
// gets its own InstanceID. The returned repeat count is the number of
// reused slots.
func (a *Assembler) selectSponsored(ctx context.Context, blocked []string, perPage int) ([]FeedSlot, int, error) {
	budget := a.sponsorBudget(perPage)
	if budget == 0 {
		return nil, 0, nil
	}

	raw, err := a.store.SponsoredCandidates(ctx, SponsoredFilter{
		BlockedOwnerIDs: blocked,
		Limit:           budget * a.cfg.SponsorOverFetch,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("load sponsored candidates: %w", err)
	}

	videos := sponsoredEligible(raw, blocked)
	shuffle(a.rnd, videos)
	if len(videos) > budget {
		videos = videos[:budget]
	}
	if len(videos) == 0 {
		return nil, 0, nil
	}

	ids := make([]string, len(videos))
	for i, v := range videos {
		ids[i] = v.ID
	}
	sponsors, err := a.store.SponsorsForVideos(ctx, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("load sponsor records: %w", err)
	}

	slots := make([]FeedSlot, 0, budget)
	for i := 0; i < budget; i++ {
		v := videos[i%len(videos)]
		sp := sponsors[v.ID]
		if sp != nil && sp.IsDeleted {
			sp = nil
		}
		slots = append(slots, FeedSlot{
			InstanceID: fmt.Sprintf("%s_%d", v.ID, i),
			Video:      v,
			Sponsored:  true,
			Sponsor:    sp,
		})
	}
	shuffle(a.rnd, slots)

	return slots, budget - len(videos), nil
}

func sponsoredEligible(videos []*models.Video, blocked []string) []*models.Video {
	skip := make(map[string]struct{}, len(blocked))
	for _, id := range blocked {
		skip[id] = struct{}{}
	}
	seen := make(map[string]struct{}, len(videos))

	out := make([]*models.Video, 0, len(videos))
	for _, v := range videos {
		if v == nil || !v.Sponsored || v.IsDeleted || v.IsPrivate {
			continue
		}
		if _, ok := skip[v.OwnerID]; ok {
			continue
		}
		if _, ok := seen[v.ID]; ok {
			continue
		}
		seen[v.ID] = struct{}{}
		out = append(out, v)
	}
	return out
}

// splice places one sponsored slot after every 'every' organic slots and
// appends any sponsored slots that did not fit.
func splice(organic []*models.Video, sponsored []FeedSlot, every int) []FeedSlot {
	out := make([]FeedSlot, 0, len(organic)+len(sponsored))
	next := 0
	for i, v := range organic {
		out = append(out, FeedSlot{InstanceID: v.ID, Video: v})
		if (i+1)%every == 0 && next < len(sponsored) {
			out = append(out, sponsored[next])
			next++
		}
	}
	return append(out, sponsored[next:]...)
}

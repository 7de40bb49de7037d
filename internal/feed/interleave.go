// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package feed

import "github.com/tomtom215/reelfeed/internal/models"

// interleaveByOwner reorders videos so that no owner appears twice in a row
// while another owner still has videos left. It is greedy: each step
// shuffles the owners and emits from the first one that differs from the
// previous owner. The result holds at most limit videos.
func interleaveByOwner(rnd Random, videos []*models.Video, limit int) []*models.Video {
	queues := make(map[string][]*models.Video)
	owners := make([]string, 0)
	for _, v := range videos {
		if _, ok := queues[v.OwnerID]; !ok {
			owners = append(owners, v.OwnerID)
		}
		queues[v.OwnerID] = append(queues[v.OwnerID], v)
	}
	for _, owner := range owners {
		shuffle(rnd, queues[owner])
	}

	if limit > len(videos) {
		limit = len(videos)
	}
	out := make([]*models.Video, 0, limit)
	last := ""
	first := true

	for len(out) < limit && len(owners) > 0 {
		shuffle(rnd, owners)

		pick := -1
		for i, owner := range owners {
			if first || owner != last {
				pick = i
				break
			}
		}
		if pick < 0 {
			// Only the previous owner has videos left.
			pick = 0
		}

		owner := owners[pick]
		q := queues[owner]
		out = append(out, q[0])
		queues[owner] = q[1:]
		if len(queues[owner]) == 0 {
			owners = append(owners[:pick], owners[pick+1:]...)
		}
		last = owner
		first = false
	}
	return out
}

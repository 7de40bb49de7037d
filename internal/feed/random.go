// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package feed

import (
	"math/rand"
	"sync"
	"time"
)

// Random is the source of every shuffle in the package.
type Random interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// LockedRand is a *rand.Rand safe for concurrent use.
type LockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandom returns a LockedRand seeded with seed, or from the clock when
// seed is zero.
func NewRandom(seed int64) *LockedRand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &LockedRand{rng: rand.New(rand.NewSource(seed))} //nolint:gosec // math/rand is fine for feed shuffling
}

// Intn returns a value in [0, n).
func (r *LockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}

// Shuffle performs a Fisher-Yates shuffle of n elements.
func (r *LockedRand) Shuffle(n int, swap func(i, j int)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rng.Shuffle(n, swap)
}

func shuffle[T any](rnd Random, s []T) {
	rnd.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
}

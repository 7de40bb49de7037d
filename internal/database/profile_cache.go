// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package database

import (
	"context"
	"time"

	"github.com/tomtom215/reelfeed/internal/cache"
	"github.com/tomtom215/reelfeed/internal/feed"
	"github.com/tomtom215/reelfeed/internal/models"
)

var _ feed.DataStore = (*ProfileCache)(nil)

// ProfileCache caches successful UserProfile lookups for a fixed TTL and
// passes every other call straight through. Errors are never cached. A
// cached profile carries its block list, so a new block takes effect only
// after the TTL; a zero TTL (the default) reads it on every request.
type ProfileCache struct {
	feed.DataStore
	profiles *cache.Cache[*models.UserProfile]
}

// NewProfileCache wraps next. A non-positive ttl disables caching.
func NewProfileCache(next feed.DataStore, ttl time.Duration) *ProfileCache {
	p := &ProfileCache{DataStore: next}
	if ttl > 0 {
		p.profiles = cache.NewWithCleanup[*models.UserProfile](ttl, ttl)
	}
	return p
}

// UserProfile implements feed.ProfileSource.
func (p *ProfileCache) UserProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	if p.profiles == nil {
		return p.DataStore.UserProfile(ctx, userID)
	}
	if profile, ok := p.profiles.Get(userID); ok {
		return profile, nil
	}
	profile, err := p.DataStore.UserProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	p.profiles.Set(userID, profile)
	return profile, nil
}

// Stats returns the underlying cache statistics.
func (p *ProfileCache) Stats() cache.Stats {
	if p.profiles == nil {
		return cache.Stats{}
	}
	return p.profiles.GetStats()
}

// Close stops the cache cleanup loop.
func (p *ProfileCache) Close() {
	if p.profiles != nil {
		p.profiles.Close()
	}
}

// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

/*
Package cache provides a thread-safe in-memory TTL cache.

The feed service uses it to keep requester profiles (role and block list)
for a short window so that paging through a feed does not hit DuckDB for the
same profile on every request.

# Usage

	profiles := cache.NewWithCleanup[*models.UserProfile](30*time.Second, time.Minute)
	defer profiles.Close()

	if p, ok := profiles.Get(userID); ok {
	    return p, nil
	}
	p, err := db.UserProfile(ctx, userID)
	if err == nil {
	    profiles.Set(userID, p)
	}

# Expiration

Expired entries are dropped lazily on Get and in bulk by a background
cleanup loop. Close stops the loop.

# Statistics

GetStats and HitRate expose hits, misses, evictions and key counts for
monitoring.
*/
package cache

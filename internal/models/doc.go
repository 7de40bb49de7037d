// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

/*
Package models holds the data types shared across Reelfeed.

The types fall into two groups:

  - Source records (Video, Owner, Sponsor, UserProfile) as loaded from the
    database. They are treated as read-only once loaded; the feed assembler
    wraps them in slots rather than mutating them.
  - Rendered output (FeedItem, SponsorInfo, OwnerInfo) as returned by the
    feed endpoint after CDN rewriting.

JSON field names follow the camelCase convention of the public feed API.
*/
package models

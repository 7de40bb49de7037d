// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

// Package feed assembles personalized pages of short videos.
//
// # Pipeline
//
// One call to Assembler.Assemble runs these stages in order:
//
//  1. Resolve the caller's browsing session (reset on page 1 or expiry).
//  2. Load the caller's block list.
//  3. Select sponsored videos (budget = perPage / SponsorDivisor).
//  4. Load organic candidates newest first, bucket them into recency tiers
//     (under 24h, under 7 days, older), shuffle each tier and drain the tiers
//     in order. A random sample tops up a short pool.
//  5. Interleave organic videos so the same owner does not appear twice in
//     a row while another owner still has videos.
//  6. Record the organic video IDs as seen in the session.
//  7. Splice one sponsored slot after every SponsorEvery organic slots and
//     append the leftovers.
//  8. Render each slot and rewrite its URLs for the CDN.
//
// # Data Access
//
// The package never talks to a database directly. It depends on the
// DataStore interface, implemented by internal/database and decorated there
// with a circuit breaker and a profile cache. Eligibility (not private, not
// deleted, not sponsored, owner is an influencer, owner not blocked, video
// not seen) is expressed through OrganicFilter and enforced by the source;
// the assembler re-checks seen IDs and blocked owners on whatever comes back.
//
// # Determinism
//
// All shuffles draw from the injected Random. Tests seed it so that pages
// are reproducible.
//
// # Thread Safety
//
// Assembler is safe for concurrent use. Two concurrent requests for the same
// session are last-write-wins on the seen set.
package feed

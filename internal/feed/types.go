// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package feed

import (
	"context"
	"errors"

	"github.com/tomtom215/reelfeed/internal/models"
)

var (
	// ErrInvalidRequest is returned for out-of-range paging parameters.
	ErrInvalidRequest = errors.New("invalid feed request")

	// ErrUserNotFound is returned by ProfileSource when the user does not exist.
	// The assembler treats it as a user with no blocks.
	ErrUserNotFound = errors.New("user not found")
)

// Request asks for one page of a user's feed.
type Request struct {
	// UserID is empty for anonymous callers.
	UserID string

	// PerPage of zero selects the configured default.
	PerPage int

	// Page is 1-based. Page 1 always starts a fresh session.
	Page int

	RequestID string
}

// Response is one assembled feed page.
type Response struct {
	Items   []models.FeedItem
	Page    int
	PerPage int

	// SessionReset is true when this page started a new session.
	SessionReset bool

	OrganicCount   int
	SponsoredCount int

	// SponsorRepeats counts sponsored slots that reuse a video already
	// placed on this page.
	SponsorRepeats int

	// Short is true when fewer organic videos than PerPage were available.
	Short bool
}

// FeedSlot is one position on a page before rendering. The wrapped video is
// shared and never mutated; slot-specific data lives on the slot.
type FeedSlot struct {
	InstanceID string
	Video      *models.Video
	Sponsored  bool
	Sponsor    *models.Sponsor
}

// OrganicFilter describes which organic videos a source may return.
//
// Sources must only return videos that are public, not deleted, not
// sponsored and owned by an influencer.
type OrganicFilter struct {
	ExcludeVideoIDs []string
	BlockedOwnerIDs []string
	Limit           int
}

// SponsoredFilter describes which sponsored videos a source may return:
// sponsored, public, not deleted and not owned by a blocked user.
type SponsoredFilter struct {
	BlockedOwnerIDs []string
	Limit           int
}

// VideoSource loads candidate videos.
type VideoSource interface {
	// OrganicCandidates returns up to Limit eligible videos, newest first.
	OrganicCandidates(ctx context.Context, f OrganicFilter) ([]*models.Video, error)

	// SampleOrganic returns up to Limit eligible videos in random order.
	SampleOrganic(ctx context.Context, f OrganicFilter) ([]*models.Video, error)

	// SponsoredCandidates returns up to Limit eligible sponsored videos.
	SponsoredCandidates(ctx context.Context, f SponsoredFilter) ([]*models.Video, error)
}

// SponsorSource loads sponsor records.
type SponsorSource interface {
	// SponsorsForVideos returns the non-deleted sponsor record of each
	// video that has one, keyed by video ID.
	SponsorsForVideos(ctx context.Context, videoIDs []string) (map[string]*models.Sponsor, error)
}

// ProfileSource loads requester profiles.
type ProfileSource interface {
	// UserProfile returns ErrUserNotFound for unknown users.
	UserProfile(ctx context.Context, userID string) (*models.UserProfile, error)
}

// DataStore is everything the assembler reads.
type DataStore interface {
	VideoSource
	SponsorSource
	ProfileSource
}

// Transformer rewrites stored URLs into client-facing ones.
type Transformer interface {
	VideoURL(v *models.Video) string
	AssetURL(raw string) string
}

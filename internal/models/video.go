// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package models

import "time"

// Owner roles.
const (
	// RoleInfluencer is the only role whose videos appear in the organic feed.
	RoleInfluencer = "influencer"
	RoleUser       = "user"
	RoleAdmin      = "admin"
)

// Video is a stored video record as loaded by the feed data source.
type Video struct {
	ID      string `json:"id"`
	OwnerID string `json:"ownerId"`

	// Owner is the joined owner projection. It may be nil when the source
	// did not join owner data.
	Owner *Owner `json:"owner,omitempty"`

	Name         string `json:"name"`
	Caption      string `json:"caption,omitempty"`
	URL          string `json:"url"`
	StorageKey   string `json:"-"` // object key in the storage bucket
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`

	IsPrivate bool `json:"-"`
	IsDeleted bool `json:"-"`
	Sponsored bool `json:"sponsored"`

	ViewCount int64     `json:"viewCount"`
	CreatedAt time.Time `json:"createdAt"`
}

// Age returns how old the video is relative to now.
func (v *Video) Age(now time.Time) time.Duration {
	return now.Sub(v.CreatedAt)
}

// Owner is the public projection of a video owner.
type Owner struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Username   string `json:"username"`
	Role       string `json:"role"`
	ProfilePic string `json:"profilePic,omitempty"`
	CoverImage string `json:"coverImage,omitempty"`
}

// Sponsor is the brand record attached to a sponsored video.
type Sponsor struct {
	ID          string `json:"id"`
	VideoID     string `json:"videoId"`
	BrandName   string `json:"brandName"`
	Logo        string `json:"logo,omitempty"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
	DisplayText string `json:"displayText"`
	CoverImage  string `json:"coverImage,omitempty"`
	ShopImage   string `json:"shopImage,omitempty"`
	ShopText    string `json:"shopText,omitempty"`
	Username    string `json:"username,omitempty"`
	IsDeleted   bool   `json:"-"`
}

// DefaultSponsorDisplayText is used when a sponsor record has no display text.
const DefaultSponsorDisplayText = "Sponsored"

// UserProfile is the requester data the feed needs: role and block list.
type UserProfile struct {
	ID             string   `json:"id"`
	Role           string   `json:"role"`
	BlockedUserIDs []string `json:"blockedUserIds"`
}

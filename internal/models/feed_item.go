// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package models

import "time"

// FeedItem is one rendered entry of a feed page.
//
// InstanceID is unique within a page. Organic items use the video ID;
// sponsored items use "<videoID>_<slot>" because the same sponsored video
// may fill more than one slot.
type FeedItem struct {
	InstanceID   string       `json:"instanceId"`
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Caption      string       `json:"caption,omitempty"`
	URL          string       `json:"url"`
	ThumbnailURL string       `json:"thumbnailUrl,omitempty"`
	ViewCount    int64        `json:"viewCount"`
	CreatedAt    time.Time    `json:"createdAt"`
	Sponsored    bool         `json:"sponsored"`
	SponsorInfo  *SponsorInfo `json:"sponsorInfo"`
	Owner        *OwnerInfo   `json:"owner"`
}

// SponsorInfo is the rendered sponsor block of a sponsored item.
type SponsorInfo struct {
	BrandName   string `json:"brandName"`
	Logo        string `json:"logo,omitempty"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
	DisplayText string `json:"displayText"`
	CoverImage  string `json:"coverImage,omitempty"`
	ShopImage   string `json:"shopImage,omitempty"`
	ShopText    string `json:"shopText,omitempty"`
	Username    string `json:"username,omitempty"`
}

// OwnerInfo is the rendered owner block of a feed item.
type OwnerInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Username   string `json:"username"`
	ProfilePic string `json:"profilePic,omitempty"`
	CoverImage string `json:"coverImage,omitempty"`
}

// NewOwnerInfo renders an owner projection. It returns nil for a nil owner.
func NewOwnerInfo(o *Owner) *OwnerInfo {
	if o == nil {
		return nil
	}
	return &OwnerInfo{
		ID:         o.ID,
		Name:       o.Name,
		Username:   o.Username,
		ProfilePic: o.ProfilePic,
		CoverImage: o.CoverImage,
	}
}

// NewSponsorInfo renders a sponsor record. It returns nil for a nil sponsor.
func NewSponsorInfo(s *Sponsor) *SponsorInfo {
	if s == nil {
		return nil
	}
	text := s.DisplayText
	if text == "" {
		text = DefaultSponsorDisplayText
	}
	return &SponsorInfo{
		BrandName:   s.BrandName,
		Logo:        s.Logo,
		Description: s.Description,
		URL:         s.URL,
		DisplayText: text,
		CoverImage:  s.CoverImage,
		ShopImage:   s.ShopImage,
		ShopText:    s.ShopText,
		Username:    s.Username,
	}
}

// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package feed

import (
	"fmt"
	"time"
)

// Config holds the feed assembly parameters.
type Config struct {
	// DefaultPerPage is used when a request omits perPage.
	DefaultPerPage int `json:"default_per_page"`

	// MaxPerPage is the largest accepted perPage.
	MaxPerPage int `json:"max_per_page"`

	// OverFetchFactor multiplies perPage to size the organic pool.
	OverFetchFactor int `json:"over_fetch_factor"`

	// SponsorDivisor sets the sponsored budget to perPage / SponsorDivisor.
	SponsorDivisor int `json:"sponsor_divisor"`

	// SponsorOverFetch multiplies the budget to size the sponsored pool.
	SponsorOverFetch int `json:"sponsor_over_fetch"`

	// SponsorEvery places one sponsored slot after this many organic slots.
	SponsorEvery int `json:"sponsor_every"`

	RecentWindow time.Duration `json:"recent_window"`
	WeekWindow   time.Duration `json:"week_window"`

	// Seed seeds the shuffle source. Zero seeds from the clock.
	Seed int64 `json:"seed"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		DefaultPerPage:   10,
		MaxPerPage:       100,
		OverFetchFactor:  5,
		SponsorDivisor:   4,
		SponsorOverFetch: 2,
		SponsorEvery:     3,
		RecentWindow:     24 * time.Hour,
		WeekWindow:       7 * 24 * time.Hour,
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.MaxPerPage < 1 {
		return fmt.Errorf("max_per_page must be positive, got %d", c.MaxPerPage)
	}
	if c.DefaultPerPage < 1 || c.DefaultPerPage > c.MaxPerPage {
		return fmt.Errorf("default_per_page must be in [1, %d], got %d", c.MaxPerPage, c.DefaultPerPage)
	}
	if c.OverFetchFactor < 1 {
		return fmt.Errorf("over_fetch_factor must be positive, got %d", c.OverFetchFactor)
	}
	if c.SponsorDivisor < 1 {
		return fmt.Errorf("sponsor_divisor must be positive, got %d", c.SponsorDivisor)
	}
	if c.SponsorOverFetch < 1 {
		return fmt.Errorf("sponsor_over_fetch must be positive, got %d", c.SponsorOverFetch)
	}
	if c.SponsorEvery < 1 {
		return fmt.Errorf("sponsor_every must be positive, got %d", c.SponsorEvery)
	}
	if c.RecentWindow <= 0 {
		return fmt.Errorf("recent_window must be positive, got %v", c.RecentWindow)
	}
	if c.WeekWindow <= c.RecentWindow {
		return fmt.Errorf("week_window must be greater than recent_window (%v), got %v", c.RecentWindow, c.WeekWindow)
	}
	return nil
}

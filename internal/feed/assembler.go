// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package feed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/reelfeed/internal/models"
	"github.com/tomtom215/reelfeed/internal/session"
)

// Assembler builds feed pages. It is safe for concurrent use.
type Assembler struct {
	cfg      *Config
	store    DataStore
	sessions *session.Manager
	urls     Transformer
	rnd      Random
	now      func() time.Time
	logger   zerolog.Logger

	// shortWarn limits short-page warnings to one per minute.
	shortWarn rate.Sometimes
}

// Option customizes an Assembler.
type Option func(*Assembler)

// WithRandom overrides the shuffle source.
func WithRandom(rnd Random) Option {
	return func(a *Assembler) { a.rnd = rnd }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(a *Assembler) { a.now = now }
}

// WithLogger sets the component logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func WithLogger(logger zerolog.Logger) Option {
	return func(a *Assembler) { a.logger = logger }
}

// NewAssembler creates an Assembler. A nil cfg selects DefaultConfig.
func NewAssembler(cfg *Config, store DataStore, sessions *session.Manager, urls Transformer, opts ...Option) (*Assembler, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid feed config: %w", err)
	}
	if store == nil || sessions == nil || urls == nil {
		return nil, errors.New("feed assembler requires a data store, session manager and URL transformer")
	}

	a := &Assembler{
		cfg:       cfg,
		store:     store,
		sessions:  sessions,
		urls:      urls,
		now:       time.Now,
		logger:    zerolog.Nop(),
		shortWarn: rate.Sometimes{Interval: time.Minute},
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.rnd == nil {
		a.rnd = NewRandom(cfg.Seed)
	}
	a.logger = a.logger.With().Str("component", "feed").Logger()
	return a, nil
}

// Config returns the assembler configuration.
func (a *Assembler) Config() Config {
	return *a.cfg
}

// Assemble builds one feed page for req.
func (a *Assembler) Assemble(ctx context.Context, req Request) (*Response, error) {
	perPage, err := a.perPage(req.PerPage)
	if err != nil {
		return nil, err
	}
	if req.Page < 1 {
		return nil, fmt.Errorf("%w: page must be at least 1, got %d", ErrInvalidRequest, req.Page)
	}
	now := a.now()

	sess, reset, err := a.sessions.Resolve(ctx, req.UserID, req.Page)
	if err != nil {
		return nil, fmt.Errorf("resolve session: %w", err)
	}

	blocked, err := a.blockedOwners(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	sponsored, repeats, err := a.selectSponsored(ctx, blocked, perPage)
	if err != nil {
		return nil, err
	}

	pool, err := a.selectOrganic(ctx, sess, blocked, perPage, now)
	if err != nil {
		return nil, err
	}
	organic := interleaveByOwner(a.rnd, pool, perPage)

	if len(organic) > 0 {
		ids := make([]string, len(organic))
		for i, v := range organic {
			ids[i] = v.ID
		}
		if err := a.sessions.MarkSeen(ctx, sess, ids); err != nil {
			return nil, fmt.Errorf("mark seen: %w", err)
		}
	}

	slots := splice(organic, sponsored, a.cfg.SponsorEvery)
	items := make([]models.FeedItem, len(slots))
	for i := range slots {
		items[i] = a.render(&slots[i])
	}

	resp := &Response{
		Items:          items,
		Page:           req.Page,
		PerPage:        perPage,
		SessionReset:   reset,
		OrganicCount:   len(organic),
		SponsoredCount: len(sponsored),
		SponsorRepeats: repeats,
		Short:          len(organic) < perPage,
	}

	if resp.Short {
		a.logger.Debug().
			Str("request_id", req.RequestID).
			Int("page", req.Page).
			Int("per_page", perPage).
			Int("organic", resp.OrganicCount).
			Msg("short feed page")
		a.shortWarn.Do(func() {
			a.logger.Warn().
				Int("per_page", perPage).
				Int("organic", resp.OrganicCount).
				Msg("feed pages are running short of organic videos")
		})
	}

	return resp, nil
}

func (a *Assembler) perPage(requested int) (int, error) {
	switch {
	case requested == 0:
		return a.cfg.DefaultPerPage, nil
	case requested < 0 || requested > a.cfg.MaxPerPage:
		return 0, fmt.Errorf("%w: perPage must be in [1, %d], got %d", ErrInvalidRequest, a.cfg.MaxPerPage, requested)
	default:
		return requested, nil
	}
}

func (a *Assembler) blockedOwners(ctx context.Context, userID string) ([]string, error) {
	if userID == "" {
		return nil, nil
	}
	profile, err := a.store.UserProfile(ctx, userID)
	if errors.Is(err, ErrUserNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load user profile: %w", err)
	}
	return profile.BlockedUserIDs, nil
}

// render builds the client-facing item for a slot with rewritten URLs.
func (a *Assembler) render(slot *FeedSlot) models.FeedItem {
	v := slot.Video
	item := models.FeedItem{
		InstanceID:   slot.InstanceID,
		ID:           v.ID,
		Name:         v.Name,
		Caption:      v.Caption,
		URL:          a.urls.VideoURL(v),
		ThumbnailURL: a.urls.AssetURL(v.ThumbnailURL),
		ViewCount:    v.ViewCount,
		CreatedAt:    v.CreatedAt,
		Sponsored:    slot.Sponsored,
		Owner:        models.NewOwnerInfo(v.Owner),
	}
	if item.Owner != nil {
		item.Owner.ProfilePic = a.urls.AssetURL(item.Owner.ProfilePic)
		item.Owner.CoverImage = a.urls.AssetURL(item.Owner.CoverImage)
	}
	if slot.Sponsored {
		item.SponsorInfo = models.NewSponsorInfo(slot.Sponsor)
		if item.SponsorInfo != nil {
			item.SponsorInfo.Logo = a.urls.AssetURL(item.SponsorInfo.Logo)
			item.SponsorInfo.CoverImage = a.urls.AssetURL(item.SponsorInfo.CoverImage)
			item.SponsorInfo.ShopImage = a.urls.AssetURL(item.SponsorInfo.ShopImage)
		}
	}
	return item
}

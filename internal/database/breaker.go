// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package database

import (
	"context"
	"errors"
	"fmt"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/reelfeed/internal/config"
	"github.com/tomtom215/reelfeed/internal/feed"
	"github.com/tomtom215/reelfeed/internal/logging"
	"github.com/tomtom215/reelfeed/internal/metrics"
	"github.com/tomtom215/reelfeed/internal/models"
)

// BreakerStoreName labels the feed data source breaker in metrics and logs.
const BreakerStoreName = "feed-datastore"

var _ feed.DataStore = (*BreakerStore)(nil)

// BreakerStore wraps a feed data source with a circuit breaker. After
// FailureThreshold consecutive failures it rejects calls with ErrCircuitOpen
// until Timeout has passed, then lets MaxRequests probes through.
//
// Unknown users and cancelled requests are not counted as failures.
type BreakerStore struct {
	next feed.DataStore
	cb   *gobreaker.CircuitBreaker[interface{}]
	name string
}

// NewBreakerStore wraps next.
func NewBreakerStore(next feed.DataStore, cfg *config.BreakerConfig) *BreakerStore {
	name := BreakerStoreName
	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			trip := counts.ConsecutiveFailures >= threshold
			if trip {
				logging.Warn().
					Uint32("consecutive_failures", counts.ConsecutiveFailures).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return trip
		},

		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, ErrUserNotFound) ||
				errors.Is(err, context.Canceled)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).
				Msg("[CIRCUIT BREAKER] State transition")
			metrics.RecordBreakerTransition(name, fromStr, toStr)
		},
	})

	return &BreakerStore{next: next, cb: cb, name: name}
}

// State returns the breaker state as "closed", "half-open" or "open".
func (b *BreakerStore) State() string {
	return stateToString(b.cb.State())
}

func (b *BreakerStore) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := b.cb.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		logging.Debug().Str("breaker", b.name).Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
		return nil, fmt.Errorf("%w: %v", ErrCircuitOpen, err)
	}
	return result, err
}

// castResult type-asserts the breaker result.
func castResult[T any](result interface{}, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// OrganicCandidates implements feed.VideoSource.
func (b *BreakerStore) OrganicCandidates(ctx context.Context, f feed.OrganicFilter) ([]*models.Video, error) {
	return castResult[[]*models.Video](b.execute(func() (interface{}, error) {
		v, err := b.next.OrganicCandidates(ctx, f)
		return v, err
	}))
}

// SampleOrganic implements feed.VideoSource.
func (b *BreakerStore) SampleOrganic(ctx context.Context, f feed.OrganicFilter) ([]*models.Video, error) {
	return castResult[[]*models.Video](b.execute(func() (interface{}, error) {
		v, err := b.next.SampleOrganic(ctx, f)
		return v, err
	}))
}

// SponsoredCandidates implements feed.VideoSource.
func (b *BreakerStore) SponsoredCandidates(ctx context.Context, f feed.SponsoredFilter) ([]*models.Video, error) {
	return castResult[[]*models.Video](b.execute(func() (interface{}, error) {
		v, err := b.next.SponsoredCandidates(ctx, f)
		return v, err
	}))
}

// SponsorsForVideos implements feed.SponsorSource.
func (b *BreakerStore) SponsorsForVideos(ctx context.Context, videoIDs []string) (map[string]*models.Sponsor, error) {
	return castResult[map[string]*models.Sponsor](b.execute(func() (interface{}, error) {
		m, err := b.next.SponsorsForVideos(ctx, videoIDs)
		return m, err
	}))
}

// UserProfile implements feed.ProfileSource.
func (b *BreakerStore) UserProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	return castResult[*models.UserProfile](b.execute(func() (interface{}, error) {
		p, err := b.next.UserProfile(ctx, userID)
		return p, err
	}))
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

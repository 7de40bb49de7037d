// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelfeed/internal/metrics"
)

// Defaults used when Config leaves a field empty.
const (
	DefaultIdleTTL  = time.Hour
	DefaultGuestKey = "guest"

	seedRange = 10000
)

// Config configures a Manager.
type Config struct {
	// IdleTTL is how long a session may go untouched before it expires.
	IdleTTL time.Duration

	// GuestKey is the session key shared by all anonymous callers.
	GuestKey string
}

// Intn is the random source used for session seeds.
type Intn interface {
	Intn(n int) int
}

// Manager implements the session lifecycle on top of a Store.
type Manager struct {
	store  Store
	cfg    Config
	now    func() time.Time
	logger zerolog.Logger

	rng   Intn
	rngMu sync.Mutex
}

// Option customizes a Manager.
type Option func(*Manager)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithRand overrides the random source for session seeds.
func WithRand(rng Intn) Option {
	return func(m *Manager) { m.rng = rng }
}

// WithLogger sets the component logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func WithLogger(logger zerolog.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// NewManager creates a Manager over store.
func NewManager(store Store, cfg Config, opts ...Option) *Manager {
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = DefaultIdleTTL
	}
	if cfg.GuestKey == "" {
		cfg.GuestKey = DefaultGuestKey
	}

	m := &Manager{
		store:  store,
		cfg:    cfg,
		now:    time.Now,
		logger: zerolog.Nop(),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // session seed is not security sensitive
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With().Str("component", "sessions").Logger()
	return m
}

// Key returns the store key for userID. Anonymous callers share the guest key.
func (m *Manager) Key(userID string) string {
	if userID == "" {
		return m.cfg.GuestKey
	}
	return userID
}

// Resolve returns the session to use for a request of page for userID.
//
// An existing session is reused and touched only when it is present, not
// expired and page is not 1. Otherwise a fresh session replaces it. The
// returned flag reports whether a fresh session was created.
func (m *Manager) Resolve(ctx context.Context, userID string, page int) (*Session, bool, error) {
	key := m.Key(userID)
	now := m.now()

	if page != 1 {
		sess, err := m.store.Get(ctx, key)
		switch {
		case err == nil && !sess.Expired(now, m.cfg.IdleTTL):
			sess.LastTouchedAt = now
			if err := m.store.Put(ctx, sess); err != nil {
				return nil, false, fmt.Errorf("touch session: %w", err)
			}
			return sess, false, nil
		case err != nil && !errors.Is(err, ErrSessionNotFound):
			return nil, false, fmt.Errorf("load session: %w", err)
		}
	}

	sess := New(key, m.seed(), now)
	if err := m.store.Put(ctx, sess); err != nil {
		return nil, false, fmt.Errorf("store session: %w", err)
	}
	metrics.SessionResets.Inc()
	m.logger.Debug().Str("session", key).Int("page", page).Msg("session reset")
	return sess, true, nil
}

// MarkSeen adds ids to the session's seen set, touches it and persists it.
func (m *Manager) MarkSeen(ctx context.Context, sess *Session, ids []string) error {
	if sess.Seen == nil {
		sess.Seen = make(map[string]struct{}, len(ids))
	}
	for _, id := range ids {
		sess.Seen[id] = struct{}{}
	}
	sess.LastTouchedAt = m.now()

	if err := m.store.Put(ctx, sess); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// Sweep deletes sessions idle longer than the TTL and returns the count.
func (m *Manager) Sweep(ctx context.Context) (int, error) {
	cutoff := m.now().Add(-m.cfg.IdleTTL)
	n, err := m.store.DeleteIdle(ctx, cutoff)
	if err != nil {
		return n, fmt.Errorf("sweep sessions: %w", err)
	}
	metrics.SessionsSwept.Add(float64(n))

	if count, err := m.store.Count(ctx); err == nil {
		metrics.SessionsActive.Set(float64(count))
	}
	return n, nil
}

// Ping checks that the store is reachable.
func (m *Manager) Ping(ctx context.Context) error {
	_, err := m.store.Count(ctx)
	return err
}

func (m *Manager) seed() int {
	m.rngMu.Lock()
	defer m.rngMu.Unlock()
	return m.rng.Intn(seedRange)
}

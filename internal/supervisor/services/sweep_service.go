// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Sweeper deletes expired sessions. Satisfied by *session.Manager.
type Sweeper interface {
	Sweep(ctx context.Context) (int, error)
}

// SessionSweepService periodically evicts idle sessions.
type SessionSweepService struct {
	sweeper  Sweeper
	interval time.Duration
	timeout  time.Duration
	logger   zerolog.Logger
}

// NewSessionSweepService creates the sweeper service. interval defaults to
// thirty minutes.
//
//nolint:gocritic // zerolog.Logger is passed by value
func NewSessionSweepService(sweeper Sweeper, interval time.Duration, logger zerolog.Logger) *SessionSweepService {
	if interval <= 0 {
		interval = 30 * time.Minute
	}
	return &SessionSweepService{
		sweeper:  sweeper,
		interval: interval,
		timeout:  30 * time.Second,
		logger:   logger.With().Str("service", "session-sweeper").Logger(),
	}
}

// Serve sweeps on every tick until ctx is canceled. Sweep failures are
// logged and retried on the next tick.
func (s *SessionSweepService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Debug().Dur("interval", s.interval).Msg("Session sweeper running")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *SessionSweepService) sweep(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	n, err := s.sweeper.Sweep(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Session sweep failed")
		return
	}
	if n > 0 {
		s.logger.Info().Int("evicted", n).Dur("duration", time.Since(start)).Msg("Idle sessions evicted")
	}
}

func (s *SessionSweepService) String() string {
	return "session-sweeper"
}

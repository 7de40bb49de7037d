// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package services

import (
	"context"
	"fmt"
)

// EventRouter is the blocking lifecycle of *events.Router.
type EventRouter interface {
	Run(ctx context.Context) error
}

// EventRouterService runs the impressions router under supervision. The
// router closes itself when ctx is canceled.
type EventRouterService struct {
	router EventRouter
}

// NewEventRouterService wraps router.
func NewEventRouterService(router EventRouter) *EventRouterService {
	return &EventRouterService{router: router}
}

// Serve blocks in Run until ctx is canceled or the router fails.
func (s *EventRouterService) Serve(ctx context.Context) error {
	err := s.router.Run(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return fmt.Errorf("impressions router failed: %w", err)
	}
	return fmt.Errorf("impressions router stopped unexpectedly")
}

func (s *EventRouterService) String() string {
	return "impressions-router"
}

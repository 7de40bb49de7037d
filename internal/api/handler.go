// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package api

import (
	"context"
	"sync"
	"time"

	"github.com/tomtom215/reelfeed/internal/feed"
)

// FeedService assembles feed pages.
type FeedService interface {
	Assemble(ctx context.Context, req feed.Request) (*feed.Response, error)
}

// ImpressionPublisher records which organic videos were served. Failures
// are logged by the caller and never fail the request.
type ImpressionPublisher interface {
	Record(ctx context.Context, userID string, videoIDs []string, page int) error
}

// HealthChecker is a dependency probed by the readiness endpoint.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthCheckFunc adapts a function to HealthChecker.
type HealthCheckFunc func(ctx context.Context) error

// Ping calls f(ctx).
func (f HealthCheckFunc) Ping(ctx context.Context) error { return f(ctx) }

type namedCheck struct {
	name    string
	checker HealthChecker
}

// Handler contains dependencies for API handlers.
type Handler struct {
	feed           FeedService
	impressions    ImpressionPublisher
	checks         []namedCheck
	startTime      time.Time
	version        string
	requestTimeout time.Duration
	publishTimeout time.Duration

	publishes sync.WaitGroup
}

// HandlerOption customizes a Handler.
type HandlerOption func(*Handler)

// WithImpressions publishes impressions for every served page.
func WithImpressions(p ImpressionPublisher) HandlerOption {
	return func(h *Handler) { h.impressions = p }
}

// WithHealthCheck adds a readiness dependency.
func WithHealthCheck(name string, c HealthChecker) HandlerOption {
	return func(h *Handler) { h.checks = append(h.checks, namedCheck{name: name, checker: c}) }
}

// WithRequestTimeout bounds feed assembly. Zero disables the bound.
func WithRequestTimeout(d time.Duration) HandlerOption {
	return func(h *Handler) { h.requestTimeout = d }
}

// WithVersion sets the version reported by health endpoints.
func WithVersion(v string) HandlerOption {
	return func(h *Handler) { h.version = v }
}

// NewHandler creates the API handler.
func NewHandler(svc FeedService, opts ...HandlerOption) *Handler {
	h := &Handler{
		feed:           svc,
		startTime:      time.Now(),
		version:        "dev",
		publishTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Wait blocks until every impression publish started by Feed has finished.
func (h *Handler) Wait() {
	h.publishes.Wait()
}

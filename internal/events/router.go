// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"

	"github.com/tomtom215/reelfeed/internal/logging"
	"github.com/tomtom215/reelfeed/internal/metrics"
)

// ImpressionsHandlerName names the consumer that persists impressions.
const ImpressionsHandlerName = "impressions-to-duckdb"

// ImpressionSink persists impressions. RecordImpressions returns how many
// (user, video) pairs were new.
type ImpressionSink interface {
	RecordImpressions(ctx context.Context, userID string, videoIDs []string, at time.Time) (int, error)
}

// Router wraps the Watermill router that consumes impression events.
type Router struct {
	router *message.Router
	config RouterConfig
	logger watermill.LoggerAdapter
}

// NewRouter creates a router with recovery, retry and correlation
// middleware. Outer to inner: CorrelationID, Recoverer, Retry.
func NewRouter(cfg *RouterConfig, logger watermill.LoggerAdapter) (*Router, error) {
	if logger == nil {
		logger = watermill.NopLogger{}
	}
	if cfg == nil {
		def := DefaultRouterConfig()
		cfg = &def
	}

	wmRouter, err := message.NewRouter(message.RouterConfig{CloseTimeout: cfg.CloseTimeout}, logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill router: %w", err)
	}

	wmRouter.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
		middleware.Retry{
			MaxRetries:      cfg.RetryMaxRetries,
			InitialInterval: cfg.RetryInitialInterval,
			MaxInterval:     cfg.RetryMaxInterval,
			Multiplier:      cfg.RetryMultiplier,
			Logger:          logger,
		}.Middleware,
	)

	return &Router{router: wmRouter, config: *cfg, logger: logger}, nil
}

// AddImpressionsHandler subscribes sink to topic.
func (r *Router) AddImpressionsHandler(topic string, sub message.Subscriber, sink ImpressionSink) {
	if topic == "" {
		topic = DefaultImpressionsTopic
	}
	r.router.AddConsumerHandler(ImpressionsHandlerName, topic, sub, NewImpressionsHandler(sink))
}

// NewImpressionsHandler decodes impression events and writes them to sink.
// Malformed events are logged and acknowledged; sink errors are returned so
// the retry middleware and redelivery can handle them.
func NewImpressionsHandler(sink ImpressionSink) message.NoPublishHandlerFunc {
	return func(msg *message.Message) error {
		event, err := UnmarshalEvent(msg.Payload)
		if err != nil {
			// Redelivery cannot fix a bad payload.
			var vErr *ValidationError
			logging.Warn().Err(err).
				Str("message_id", msg.UUID).
				Bool("invalid_field", errors.As(err, &vErr)).
				Msg("Dropping malformed impression event")
			return nil
		}

		ctx := msg.Context()
		if event.RequestID != "" {
			ctx = logging.ContextWithRequestID(ctx, event.RequestID)
		}
		if cid := middleware.MessageCorrelationID(msg); cid != "" {
			ctx = logging.ContextWithCorrelationID(ctx, cid)
		}

		inserted, err := sink.RecordImpressions(ctx, event.UserID, event.VideoIDs, event.ServedAt)
		if err != nil {
			return fmt.Errorf("record impressions for %s: %w", event.UserID, err)
		}
		metrics.ImpressionsRecorded.Add(float64(inserted))
		return nil
	}
}

// Run blocks until ctx is canceled or the router is closed.
func (r *Router) Run(ctx context.Context) error {
	return r.router.Run(ctx)
}

// Running is closed once all handlers are subscribed.
func (r *Router) Running() chan struct{} {
	return r.router.Running()
}

// IsRunning reports whether the router has started and not yet closed.
func (r *Router) IsRunning() bool {
	return r.router.IsRunning()
}

// Close stops the router, waiting up to CloseTimeout for handlers.
func (r *Router) Close() error {
	return r.router.Close()
}

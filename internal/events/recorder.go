// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package events

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"

	"github.com/tomtom215/reelfeed/internal/logging"
)

// Publisher is the subset of Bus used by ImpressionRecorder.
type Publisher interface {
	Publish(ctx context.Context, topic string, msg *message.Message) error
}

// ImpressionRecorder publishes impression events for served feed pages.
type ImpressionRecorder struct {
	pub   Publisher
	topic string
	now   func() time.Time
}

// NewImpressionRecorder creates a recorder publishing on topic.
func NewImpressionRecorder(pub Publisher, topic string) *ImpressionRecorder {
	if topic == "" {
		topic = DefaultImpressionsTopic
	}
	return &ImpressionRecorder{pub: pub, topic: topic, now: time.Now}
}

// Record publishes one event for the organic videos on a page. Empty pages
// and anonymous viewers publish nothing.
func (r *ImpressionRecorder) Record(ctx context.Context, userID string, videoIDs []string, page int) error {
	if userID == "" || len(videoIDs) == 0 {
		return nil
	}

	event := NewImpressionEvent(userID, videoIDs, page, r.now())
	event.RequestID = logging.RequestIDFromContext(ctx)

	data, err := MarshalEvent(event)
	if err != nil {
		return err
	}

	msg := message.NewMessage(event.EventID, data)
	msg.Metadata.Set("user_id", userID)
	if event.RequestID != "" {
		middleware.SetCorrelationID(event.RequestID, msg)
	}

	if err := r.pub.Publish(ctx, r.topic, msg); err != nil {
		logging.Ctx(ctx).Warn().Err(err).
			Str("user_id", userID).
			Int("videos", len(videoIDs)).
			Msg("Failed to publish impression event")
		return fmt.Errorf("publish impression event: %w", err)
	}
	return nil
}

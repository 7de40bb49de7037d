// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package events

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// SchemaVersion is the current ImpressionEvent schema version.
const SchemaVersion = 1

// ImpressionEvent records the organic videos served to a user on one page.
type ImpressionEvent struct {
	SchemaVersion int       `json:"schema_version,omitempty"`
	EventID       string    `json:"event_id"`
	UserID        string    `json:"user_id"`
	VideoIDs      []string  `json:"video_ids"`
	Page          int       `json:"page"`
	RequestID     string    `json:"request_id,omitempty"`
	ServedAt      time.Time `json:"served_at"`
}

// NewImpressionEvent creates an event with a fresh ID.
func NewImpressionEvent(userID string, videoIDs []string, page int, servedAt time.Time) *ImpressionEvent {
	ids := make([]string, len(videoIDs))
	copy(ids, videoIDs)
	return &ImpressionEvent{
		SchemaVersion: SchemaVersion,
		EventID:       uuid.New().String(),
		UserID:        userID,
		VideoIDs:      ids,
		Page:          page,
		ServedAt:      servedAt.UTC(),
	}
}

// Validate checks required fields.
func (e *ImpressionEvent) Validate() error {
	if e.EventID == "" {
		return &ValidationError{Field: "event_id", Message: "required"}
	}
	if e.UserID == "" {
		return &ValidationError{Field: "user_id", Message: "required"}
	}
	if len(e.VideoIDs) == 0 {
		return &ValidationError{Field: "video_ids", Message: "must not be empty"}
	}
	if e.Page < 1 {
		return &ValidationError{Field: "page", Message: "must be >= 1"}
	}
	if e.ServedAt.IsZero() {
		return &ValidationError{Field: "served_at", Message: "required"}
	}
	return nil
}

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// MarshalEvent validates and encodes an event.
func MarshalEvent(e *ImpressionEvent) ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("validate event: %w", err)
	}
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return data, nil
}

// UnmarshalEvent decodes and validates an event.
func UnmarshalEvent(data []byte) (*ImpressionEvent, error) {
	var e ImpressionEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("unmarshal event: %w", err)
	}
	if e.SchemaVersion == 0 {
		e.SchemaVersion = SchemaVersion
	}
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("validate event: %w", err)
	}
	return &e, nil
}

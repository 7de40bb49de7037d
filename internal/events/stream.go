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

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// Connect opens a NATS connection and a JetStream context on url.
func Connect(url string, opts ...nats.Option) (*nats.Conn, jetstream.JetStream, error) {
	opts = append([]nats.Option{
		nats.Name("reelfeed"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
	}, opts...)

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to NATS: %w", err)
	}
	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, nil, fmt.Errorf("create JetStream context: %w", err)
	}
	return nc, js, nil
}

// EnsureStream creates the stream described by cfg or updates it in place.
func EnsureStream(ctx context.Context, js jetstream.JetStream, cfg StreamConfig) (jetstream.Stream, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("stream name is required")
	}
	if len(cfg.Subjects) == 0 {
		return nil, fmt.Errorf("stream %s: at least one subject is required", cfg.Name)
	}
	replicas := cfg.Replicas
	if replicas < 1 {
		replicas = 1
	}

	sc := jetstream.StreamConfig{
		Name:       cfg.Name,
		Subjects:   cfg.Subjects,
		Retention:  jetstream.LimitsPolicy,
		MaxAge:     cfg.MaxAge,
		Duplicates: cfg.DuplicateWindow,
		Replicas:   replicas,
		Storage:    jetstream.FileStorage,
		Discard:    jetstream.DiscardOld,
	}

	_, err := js.Stream(ctx, cfg.Name)
	switch {
	case err == nil:
		stream, updateErr := js.UpdateStream(ctx, sc)
		if updateErr != nil {
			return nil, fmt.Errorf("update stream %s: %w", cfg.Name, updateErr)
		}
		return stream, nil
	case errors.Is(err, jetstream.ErrStreamNotFound):
		stream, createErr := js.CreateStream(ctx, sc)
		if createErr != nil {
			return nil, fmt.Errorf("create stream %s: %w", cfg.Name, createErr)
		}
		return stream, nil
	default:
		return nil, fmt.Errorf("lookup stream %s: %w", cfg.Name, err)
	}
}

// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package main

import (
	"context"
	"errors"
	"fmt"

	natsgo "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/tomtom215/reelfeed/internal/config"
	"github.com/tomtom215/reelfeed/internal/events"
	"github.com/tomtom215/reelfeed/internal/logging"
)

// Messaging holds the NATS connection (when enabled) and the impression
// pipeline built on top of it.
type Messaging struct {
	server *events.EmbeddedServer
	conn   *natsgo.Conn
	js     jetstream.JetStream
	url    string

	bus      *events.Bus
	router   *events.Router
	recorder *events.ImpressionRecorder
}

// InitNATS starts the embedded server or connects to an external one and
// ensures the impressions stream exists. With NATS disabled it returns an
// empty Messaging; the impression pipeline then runs in-process.
func InitNATS(ctx context.Context, cfg *config.Config) (*Messaging, error) {
	m := &Messaging{}
	if !cfg.NATS.Enabled {
		logging.Info().Msg("NATS disabled, impressions use the in-process bus")
		return m, nil
	}

	m.url = cfg.NATS.URL
	if cfg.NATS.EmbeddedServer {
		srv, err := events.NewEmbeddedServer(serverConfig(&cfg.NATS))
		if err != nil {
			return nil, fmt.Errorf("start embedded NATS: %w", err)
		}
		m.server = srv
		m.url = srv.ClientURL()
		logging.Info().Str("url", m.url).Msg("Embedded NATS server started")
	}

	conn, js, err := events.Connect(m.url)
	if err != nil {
		m.Shutdown(ctx)
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	m.conn = conn
	m.js = js

	if _, err := events.EnsureStream(ctx, js, streamConfig(&cfg.NATS)); err != nil {
		m.Shutdown(ctx)
		return nil, fmt.Errorf("ensure impressions stream: %w", err)
	}
	logging.Info().Str("url", m.url).Str("stream", streamConfig(&cfg.NATS).Name).Msg("NATS JetStream ready")
	return m, nil
}

// JetStream returns the JetStream handle, or nil when NATS is disabled.
func (m *Messaging) JetStream() jetstream.JetStream {
	return m.js
}

// InitEvents builds the impression bus, its recorder and the router that
// drains it into sink.
func (m *Messaging) InitEvents(cfg *config.Config, sink events.ImpressionSink) error {
	wmLogger := logging.NewWatermillAdapter(logging.WithComponent("events"))

	bus, err := events.NewBus(busConfig(cfg, m.url), wmLogger)
	if err != nil {
		return fmt.Errorf("create event bus: %w", err)
	}
	router, err := events.NewRouter(routerConfig(&cfg.NATS), wmLogger)
	if err != nil {
		_ = bus.Close()
		return fmt.Errorf("create event router: %w", err)
	}

	topic := impressionsTopic(&cfg.NATS)
	router.AddImpressionsHandler(topic, bus.Subscriber(), sink)

	m.bus = bus
	m.router = router
	m.recorder = events.NewImpressionRecorder(bus, topic)
	logging.Info().Str("backend", bus.Backend()).Str("topic", topic).Msg("Impression pipeline configured")
	return nil
}

// Ping reports whether the NATS connection is usable.
func (m *Messaging) Ping(_ context.Context) error {
	if m.conn == nil {
		return nil
	}
	if !m.conn.IsConnected() {
		return errors.New("NATS connection is " + m.conn.Status().String())
	}
	return nil
}

// Shutdown closes components in reverse order of creation. The router is
// stopped by its supervisor.
func (m *Messaging) Shutdown(ctx context.Context) {
	if m.bus != nil {
		if err := m.bus.Close(); err != nil {
			logging.Warn().Err(err).Msg("Error closing event bus")
		}
	}
	if m.conn != nil {
		if err := m.conn.Drain(); err != nil {
			m.conn.Close()
		}
	}
	if m.server != nil {
		if err := m.server.Shutdown(ctx); err != nil {
			logging.Warn().Err(err).Msg("Error stopping embedded NATS server")
		}
	}
}

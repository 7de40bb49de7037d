// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package events

import "time"

// DefaultImpressionsTopic is the subject impression events are published on.
const DefaultImpressionsTopic = "feed.impressions"

// ServerConfig holds embedded NATS server configuration.
type ServerConfig struct {
	Host              string
	Port              int // -1 picks a random port
	StoreDir          string
	JetStreamMaxMem   int64
	JetStreamMaxStore int64
}

// DefaultServerConfig returns production defaults for the embedded server.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:              "127.0.0.1",
		Port:              4222,
		StoreDir:          "/data/nats/jetstream",
		JetStreamMaxMem:   256 << 20, // 256MB
		JetStreamMaxStore: 1 << 30,   // 1GB
	}
}

// StreamConfig defines the impressions stream.
type StreamConfig struct {
	Name            string
	Subjects        []string
	MaxAge          time.Duration
	DuplicateWindow time.Duration
	Replicas        int
}

// DefaultStreamConfig returns the impressions stream defaults.
func DefaultStreamConfig() StreamConfig {
	return StreamConfig{
		Name:            "FEED_IMPRESSIONS",
		Subjects:        []string{DefaultImpressionsTopic},
		MaxAge:          24 * time.Hour,
		DuplicateWindow: 2 * time.Minute,
		Replicas:        1,
	}
}

// BusConfig selects and tunes the pub/sub backend. An empty URL selects the
// in-process GoChannel backend.
type BusConfig struct {
	URL              string
	StreamName       string // bind subscribers to this stream when set
	DurableName      string
	SubscribersCount int
	AckWaitTimeout   time.Duration
	MaxReconnects    int
	ReconnectWait    time.Duration

	// Publish circuit breaker
	BreakerFailureThreshold uint32
	BreakerTimeout          time.Duration
}

// DefaultBusConfig returns defaults for url.
func DefaultBusConfig(url string) BusConfig {
	return BusConfig{
		URL:                     url,
		StreamName:              "FEED_IMPRESSIONS",
		DurableName:             "impressions-recorder",
		SubscribersCount:        2,
		AckWaitTimeout:          30 * time.Second,
		MaxReconnects:           -1, // unlimited
		ReconnectWait:           2 * time.Second,
		BreakerFailureThreshold: 5,
		BreakerTimeout:          30 * time.Second,
	}
}

// RouterConfig holds configuration for the Watermill Router.
type RouterConfig struct {
	// CloseTimeout is how long to wait for handlers to finish when closing.
	CloseTimeout time.Duration

	RetryMaxRetries      int
	RetryInitialInterval time.Duration
	RetryMaxInterval     time.Duration
	RetryMultiplier      float64
}

// DefaultRouterConfig returns production defaults for the Router.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		CloseTimeout:         30 * time.Second,
		RetryMaxRetries:      3,
		RetryInitialInterval: 100 * time.Millisecond,
		RetryMaxInterval:     5 * time.Second,
		RetryMultiplier:      2.0,
	}
}

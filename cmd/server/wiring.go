// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package main

import (
	"github.com/tomtom215/reelfeed/internal/config"
	"github.com/tomtom215/reelfeed/internal/events"
	"github.com/tomtom215/reelfeed/internal/feed"
	"github.com/tomtom215/reelfeed/internal/logging"
	"github.com/tomtom215/reelfeed/internal/session"
)

func loggingConfig(cfg *config.LoggingConfig) logging.Config {
	lc := logging.DefaultConfig()
	if cfg.Level != "" {
		lc.Level = cfg.Level
	}
	if cfg.Format != "" {
		lc.Format = cfg.Format
	}
	lc.Caller = cfg.Caller
	return lc
}

func feedConfig(cfg *config.FeedConfig) *feed.Config {
	return &feed.Config{
		DefaultPerPage:   cfg.DefaultPerPage,
		MaxPerPage:       cfg.MaxPerPage,
		OverFetchFactor:  cfg.OverFetchFactor,
		SponsorDivisor:   cfg.SponsorDivisor,
		SponsorOverFetch: cfg.SponsorOverFetch,
		SponsorEvery:     cfg.SponsorEvery,
		RecentWindow:     cfg.RecentWindow,
		WeekWindow:       cfg.WeekWindow,
		Seed:             cfg.Seed,
	}
}

func sessionConfig(cfg *config.SessionConfig) session.Config {
	return session.Config{IdleTTL: cfg.IdleTTL, GuestKey: cfg.GuestKey}
}

func sessionFactoryConfig(cfg *config.SessionConfig) session.FactoryConfig {
	return session.FactoryConfig{
		Type:         session.StoreType(cfg.Store),
		Path:         cfg.Path,
		TTL:          cfg.IdleTTL,
		NATSBucket:   cfg.NATSBucket,
		NATSReplicas: cfg.NATSReplicas,
	}
}

func serverConfig(cfg *config.NATSConfig) *events.ServerConfig {
	sc := events.DefaultServerConfig()
	if cfg.Host != "" {
		sc.Host = cfg.Host
	}
	if cfg.Port != 0 {
		sc.Port = cfg.Port
	}
	if cfg.StoreDir != "" {
		sc.StoreDir = cfg.StoreDir
	}
	if cfg.MaxMemory > 0 {
		sc.JetStreamMaxMem = cfg.MaxMemory
	}
	if cfg.MaxStore > 0 {
		sc.JetStreamMaxStore = cfg.MaxStore
	}
	return &sc
}

func impressionsTopic(cfg *config.NATSConfig) string {
	if cfg.ImpressionsTopic != "" {
		return cfg.ImpressionsTopic
	}
	return events.DefaultImpressionsTopic
}

func streamConfig(cfg *config.NATSConfig) events.StreamConfig {
	sc := events.DefaultStreamConfig()
	if cfg.StreamName != "" {
		sc.Name = cfg.StreamName
	}
	sc.Subjects = []string{impressionsTopic(cfg)}
	return sc
}

// busConfig maps settings onto the event bus. An empty url selects the
// in-process transport.
func busConfig(cfg *config.Config, url string) events.BusConfig {
	bc := events.DefaultBusConfig(url)
	if url == "" {
		bc.StreamName = ""
	} else if cfg.NATS.StreamName != "" {
		bc.StreamName = cfg.NATS.StreamName
	}
	if cfg.NATS.DurableName != "" {
		bc.DurableName = cfg.NATS.DurableName
	}
	if cfg.NATS.SubscribersCount > 0 {
		bc.SubscribersCount = cfg.NATS.SubscribersCount
	}
	if cfg.Breaker.FailureThreshold > 0 {
		bc.BreakerFailureThreshold = cfg.Breaker.FailureThreshold
	}
	if cfg.Breaker.Timeout > 0 {
		bc.BreakerTimeout = cfg.Breaker.Timeout
	}
	return bc
}

func routerConfig(cfg *config.NATSConfig) *events.RouterConfig {
	rc := events.DefaultRouterConfig()
	if cfg.RouterRetryCount > 0 {
		rc.RetryMaxRetries = cfg.RouterRetryCount
	}
	if cfg.RouterRetryInterval > 0 {
		rc.RetryInitialInterval = cfg.RouterRetryInterval
	}
	if cfg.RouterCloseTimeout > 0 {
		rc.CloseTimeout = cfg.RouterCloseTimeout
	}
	return &rc
}

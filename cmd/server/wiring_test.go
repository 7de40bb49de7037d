// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package main

import (
	"testing"
	"time"

	"github.com/tomtom215/reelfeed/internal/config"
	"github.com/tomtom215/reelfeed/internal/events"
	"github.com/tomtom215/reelfeed/internal/session"
)

func TestFeedConfig_MapsEveryField(t *testing.T) {
	fc := feedConfig(&config.FeedConfig{
		DefaultPerPage:   12,
		MaxPerPage:       60,
		OverFetchFactor:  4,
		SponsorDivisor:   3,
		SponsorOverFetch: 2,
		SponsorEvery:     3,
		RecentWindow:     time.Hour,
		WeekWindow:       48 * time.Hour,
		Seed:             7,
	})
	if err := fc.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if fc.DefaultPerPage != 12 || fc.MaxPerPage != 60 || fc.SponsorDivisor != 3 || fc.Seed != 7 || fc.WeekWindow != 48*time.Hour {
		t.Errorf("feedConfig = %+v", fc)
	}
}

func TestSessionConfigs(t *testing.T) {
	sc := &config.SessionConfig{
		Store:        "badger",
		Path:         "/tmp/sessions",
		IdleTTL:      30 * time.Minute,
		GuestKey:     "anon",
		NATSBucket:   "b",
		NATSReplicas: 3,
	}
	if got := sessionConfig(sc); got.IdleTTL != 30*time.Minute || got.GuestKey != "anon" {
		t.Errorf("sessionConfig = %+v", got)
	}
	fc := sessionFactoryConfig(sc)
	if fc.Type != session.StoreBadger || fc.Path != "/tmp/sessions" || fc.TTL != 30*time.Minute || fc.NATSReplicas != 3 {
		t.Errorf("sessionFactoryConfig = %+v", fc)
	}
}

func TestStreamConfig_UsesTopic(t *testing.T) {
	sc := streamConfig(&config.NATSConfig{StreamName: "IMPR", ImpressionsTopic: "views.served"})
	if sc.Name != "IMPR" || len(sc.Subjects) != 1 || sc.Subjects[0] != "views.served" {
		t.Errorf("streamConfig = %+v", sc)
	}

	def := streamConfig(&config.NATSConfig{})
	if def.Name != events.DefaultStreamConfig().Name || def.Subjects[0] != events.DefaultImpressionsTopic {
		t.Errorf("default streamConfig = %+v", def)
	}
}

func TestBusConfig(t *testing.T) {
	cfg := &config.Config{
		NATS: config.NATSConfig{
			StreamName:       "IMPR",
			DurableName:      "recorder",
			SubscribersCount: 4,
		},
		Breaker: config.BreakerConfig{FailureThreshold: 9, Timeout: time.Minute},
	}

	tests := []struct {
		name       string
		url        string
		wantStream string
	}{
		{"in-process", "", ""},
		{"nats", "nats://127.0.0.1:4222", "IMPR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bc := busConfig(cfg, tt.url)
			if bc.URL != tt.url || bc.StreamName != tt.wantStream {
				t.Errorf("URL=%q StreamName=%q", bc.URL, bc.StreamName)
			}
			if bc.DurableName != "recorder" || bc.SubscribersCount != 4 {
				t.Errorf("consumer = %q/%d", bc.DurableName, bc.SubscribersCount)
			}
			if bc.BreakerFailureThreshold != 9 || bc.BreakerTimeout != time.Minute {
				t.Errorf("breaker = %d/%v", bc.BreakerFailureThreshold, bc.BreakerTimeout)
			}
		})
	}
}

func TestServerAndRouterConfig(t *testing.T) {
	sc := serverConfig(&config.NATSConfig{Port: -1, StoreDir: "/tmp/js"})
	if sc.Port != -1 || sc.StoreDir != "/tmp/js" || sc.Host != events.DefaultServerConfig().Host {
		t.Errorf("serverConfig = %+v", sc)
	}

	rc := routerConfig(&config.NATSConfig{RouterRetryCount: 7, RouterCloseTimeout: time.Second})
	if rc.RetryMaxRetries != 7 || rc.CloseTimeout != time.Second || rc.RetryMultiplier != events.DefaultRouterConfig().RetryMultiplier {
		t.Errorf("routerConfig = %+v", rc)
	}
}

func TestLoggingConfig(t *testing.T) {
	lc := loggingConfig(&config.LoggingConfig{Level: "debug", Format: "console", Caller: true})
	if lc.Level != "debug" || lc.Format != "console" || !lc.Caller || lc.Output == nil {
		t.Errorf("loggingConfig = %+v", lc)
	}
	if def := loggingConfig(&config.LoggingConfig{}); def.Level != "info" {
		t.Errorf("default level = %q", def.Level)
	}
}

// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the config file locations searched in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/reelfeed/config.yaml",
	"/etc/reelfeed/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8080,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Database: DatabaseConfig{
			Path:         "/data/reelfeed.duckdb",
			MaxMemory:    "1GB",
			Threads:      0,
			SeedDemoData: false,
		},
		Feed: FeedConfig{
			DefaultPerPage:   10,
			MaxPerPage:       100,
			OverFetchFactor:  5,
			SponsorDivisor:   4,
			SponsorOverFetch: 2,
			SponsorEvery:     3,
			RecentWindow:     24 * time.Hour,
			WeekWindow:       7 * 24 * time.Hour,
			Seed:             0,
			RequestTimeout:   10 * time.Second,
		},
		Session: SessionConfig{
			Store:         "memory",
			Path:          "/data/sessions",
			IdleTTL:       time.Hour,
			SweepInterval: 30 * time.Minute,
			GuestKey:      "guest",
			NATSBucket:    "feed-sessions",
			NATSReplicas:  1,
		},
		CDN: CDNConfig{
			BaseURL: "",
		},
		NATS: NATSConfig{
			Enabled:             false,
			URL:                 "nats://127.0.0.1:4222",
			EmbeddedServer:      true,
			Host:                "127.0.0.1",
			Port:                4222,
			StoreDir:            "/data/nats/jetstream",
			MaxMemory:           256 << 20, // 256MB
			MaxStore:            1 << 30,   // 1GB
			ImpressionsTopic:    "feed.impressions",
			StreamName:          "FEED_IMPRESSIONS",
			DurableName:         "impressions-recorder",
			SubscribersCount:    2,
			RouterRetryCount:    3,
			RouterRetryInterval: 100 * time.Millisecond,
			RouterCloseTimeout:  30 * time.Second,
		},
		Security: SecurityConfig{
			AuthMode:          "jwt",
			JWTSecret:         "",
			TokenTTL:          24 * time.Hour,
			AllowAnonymous:    true,
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Cache: CacheConfig{
			ProfileTTL: 0,
		},
		Breaker: BreakerConfig{
			MaxRequests:      3,
			Interval:         time.Minute,
			Timeout:          30 * time.Second,
			FailureThreshold: 5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// HTTP_PORT -> server.port, SESSION_STORE -> session.store, ...
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated env values.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for
// known slice fields. Values from YAML are already slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
// Unmapped variables are ignored.
var envMappings = map[string]string{
	// Server
	"http_port":    "server.port",
	"http_host":    "server.host",
	"http_timeout": "server.timeout",
	"environment":  "server.environment",

	// Database
	"duckdb_path":       "database.path",
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",
	"seed_demo_data":    "database.seed_demo_data",

	// Feed
	"feed_default_per_page":   "feed.default_per_page",
	"feed_max_per_page":       "feed.max_per_page",
	"feed_over_fetch_factor":  "feed.over_fetch_factor",
	"feed_sponsor_divisor":    "feed.sponsor_divisor",
	"feed_sponsor_over_fetch": "feed.sponsor_over_fetch",
	"feed_sponsor_every":      "feed.sponsor_every",
	"feed_recent_window":      "feed.recent_window",
	"feed_week_window":        "feed.week_window",
	"feed_seed":               "feed.seed",
	"feed_request_timeout":    "feed.request_timeout",

	// Sessions
	"session_store":          "session.store",
	"session_store_path":     "session.path",
	"session_idle_ttl":       "session.idle_ttl",
	"session_sweep_interval": "session.sweep_interval",
	"session_guest_key":      "session.guest_key",
	"session_nats_bucket":    "session.nats_bucket",
	"session_nats_replicas":  "session.nats_replicas",

	// CDN
	"cdn_base_url": "cdn.base_url",

	// NATS
	"nats_enabled":               "nats.enabled",
	"nats_url":                   "nats.url",
	"nats_embedded":              "nats.embedded_server",
	"nats_host":                  "nats.host",
	"nats_port":                  "nats.port",
	"nats_store_dir":             "nats.store_dir",
	"nats_max_memory":            "nats.max_memory",
	"nats_max_store":             "nats.max_store",
	"nats_impressions_topic":     "nats.impressions_topic",
	"nats_stream_name":           "nats.stream_name",
	"nats_durable_name":          "nats.durable_name",
	"nats_subscribers":           "nats.subscribers_count",
	"nats_router_retry_count":    "nats.router_retry_count",
	"nats_router_retry_interval": "nats.router_retry_interval",
	"nats_router_close_timeout":  "nats.router_close_timeout",

	// Security
	"auth_mode":           "security.auth_mode",
	"jwt_secret":          "security.jwt_secret",
	"token_ttl":           "security.token_ttl",
	"allow_anonymous":     "security.allow_anonymous",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	// Cache and breaker
	"profile_cache_ttl":         "cache.profile_ttl",
	"breaker_max_requests":      "breaker.max_requests",
	"breaker_interval":          "breaker.interval",
	"breaker_timeout":           "breaker.timeout",
	"breaker_failure_threshold": "breaker.failure_threshold",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf paths.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package config

import "time"

// Config holds all application configuration.
//
// Loading order (Koanf v2):
//  1. Defaults from defaultConfig
//  2. Optional YAML config file
//  3. Environment variables
//
// Config is immutable after Load() and safe for concurrent reads.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Feed     FeedConfig     `koanf:"feed"`
	Session  SessionConfig  `koanf:"session"`
	CDN      CDNConfig      `koanf:"cdn"`
	NATS     NATSConfig     `koanf:"nats"`
	Security SecurityConfig `koanf:"security"`
	Cache    CacheConfig    `koanf:"cache"`
	Breaker  BreakerConfig  `koanf:"breaker"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // development, staging or production
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	Path         string `koanf:"path"` // ":memory:" for an ephemeral database
	MaxMemory    string `koanf:"max_memory"`
	Threads      int    `koanf:"threads"` // 0 = runtime.NumCPU()
	SeedDemoData bool   `koanf:"seed_demo_data"`
}

// FeedConfig holds feed assembly parameters.
//
// Environment Variables:
//   - FEED_DEFAULT_PER_PAGE: page size when perPage is omitted (default: 10)
//   - FEED_MAX_PER_PAGE: largest accepted perPage (default: 100)
//   - FEED_SPONSOR_DIVISOR: sponsored budget is perPage / divisor (default: 4)
//   - FEED_SPONSOR_EVERY: organic slots between sponsored slots (default: 3)
//   - FEED_SEED: shuffle seed, 0 seeds from the clock (default: 0)
type FeedConfig struct {
	DefaultPerPage   int           `koanf:"default_per_page"`
	MaxPerPage       int           `koanf:"max_per_page"`
	OverFetchFactor  int           `koanf:"over_fetch_factor"`
	SponsorDivisor   int           `koanf:"sponsor_divisor"`
	SponsorOverFetch int           `koanf:"sponsor_over_fetch"`
	SponsorEvery     int           `koanf:"sponsor_every"`
	RecentWindow     time.Duration `koanf:"recent_window"`
	WeekWindow       time.Duration `koanf:"week_window"`
	Seed             int64         `koanf:"seed"`
	RequestTimeout   time.Duration `koanf:"request_timeout"`
}

// SessionConfig holds feed session settings.
type SessionConfig struct {
	Store         string        `koanf:"store"` // memory, badger or nats
	Path          string        `koanf:"path"`  // BadgerDB directory
	IdleTTL       time.Duration `koanf:"idle_ttl"`
	SweepInterval time.Duration `koanf:"sweep_interval"`
	GuestKey      string        `koanf:"guest_key"`
	NATSBucket    string        `koanf:"nats_bucket"`
	NATSReplicas  int           `koanf:"nats_replicas"`
}

// CDNConfig holds the public base URL that bucket object URLs are rewritten
// to. Empty disables rewriting.
type CDNConfig struct {
	BaseURL string `koanf:"base_url"`
}

// NATSConfig holds NATS JetStream settings for the event bus and the NATS
// session store.
type NATSConfig struct {
	Enabled        bool   `koanf:"enabled"`
	URL            string `koanf:"url"`
	EmbeddedServer bool   `koanf:"embedded_server"`
	Host           string `koanf:"host"`
	Port           int    `koanf:"port"`
	StoreDir       string `koanf:"store_dir"`
	MaxMemory      int64  `koanf:"max_memory"`
	MaxStore       int64  `koanf:"max_store"`

	ImpressionsTopic string `koanf:"impressions_topic"`
	StreamName       string `koanf:"stream_name"`
	DurableName      string `koanf:"durable_name"`
	SubscribersCount int    `koanf:"subscribers_count"`

	// Router (Watermill middleware) settings
	RouterRetryCount    int           `koanf:"router_retry_count"`
	RouterRetryInterval time.Duration `koanf:"router_retry_interval"`
	RouterCloseTimeout  time.Duration `koanf:"router_close_timeout"`
}

// SecurityConfig holds authentication, rate limiting and CORS settings.
type SecurityConfig struct {
	AuthMode          string        `koanf:"auth_mode"` // jwt or none
	JWTSecret         string        `koanf:"jwt_secret"`
	TokenTTL          time.Duration `koanf:"token_ttl"`
	AllowAnonymous    bool          `koanf:"allow_anonymous"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// CacheConfig holds in-process cache settings.
type CacheConfig struct {
	ProfileTTL time.Duration `koanf:"profile_ttl"` // 0 disables the profile cache
}

// BreakerConfig holds circuit breaker settings for the feed data source.
type BreakerConfig struct {
	MaxRequests      uint32        `koanf:"max_requests"` // probes allowed while half-open
	Interval         time.Duration `koanf:"interval"`     // closed-state count reset period
	Timeout          time.Duration `koanf:"timeout"`      // open-state duration
	FailureThreshold uint32        `koanf:"failure_threshold"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// Load reads configuration from defaults, an optional config file and the
// environment, then validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateDatabase,
		c.validateFeed,
		c.validateSession,
		c.validateCDN,
		c.validateNATS,
		c.validateSecurity,
		c.validateBreaker,
		c.validateLogging,
	}
	for _, validate := range validators {
		if err := validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("DUCKDB_PATH is required")
	}
	if c.Database.MaxMemory == "" {
		return fmt.Errorf("DUCKDB_MAX_MEMORY is required")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be >= 0")
	}
	return nil
}

func (c *Config) validateFeed() error {
	f := c.Feed
	if f.MaxPerPage < 1 {
		return fmt.Errorf("FEED_MAX_PER_PAGE must be positive")
	}
	if f.DefaultPerPage < 1 || f.DefaultPerPage > f.MaxPerPage {
		return fmt.Errorf("FEED_DEFAULT_PER_PAGE must be between 1 and FEED_MAX_PER_PAGE (%d)", f.MaxPerPage)
	}
	if f.OverFetchFactor < 1 || f.SponsorDivisor < 1 || f.SponsorOverFetch < 1 || f.SponsorEvery < 1 {
		return fmt.Errorf("FEED_OVER_FETCH_FACTOR, FEED_SPONSOR_DIVISOR, FEED_SPONSOR_OVER_FETCH and FEED_SPONSOR_EVERY must be positive")
	}
	if f.RecentWindow <= 0 || f.WeekWindow <= f.RecentWindow {
		return fmt.Errorf("FEED_WEEK_WINDOW must be greater than FEED_RECENT_WINDOW and both must be positive")
	}
	if f.RequestTimeout < 0 {
		return fmt.Errorf("FEED_REQUEST_TIMEOUT must be >= 0")
	}
	return nil
}

var validSessionStores = map[string]bool{
	"memory": true,
	"badger": true,
	"nats":   true,
}

func (c *Config) validateSession() error {
	s := c.Session
	if !validSessionStores[s.Store] {
		return fmt.Errorf("SESSION_STORE must be one of: memory, badger, nats")
	}
	if s.IdleTTL <= 0 {
		return fmt.Errorf("SESSION_IDLE_TTL must be positive")
	}
	if s.SweepInterval <= 0 {
		return fmt.Errorf("SESSION_SWEEP_INTERVAL must be positive")
	}
	if s.GuestKey == "" {
		return fmt.Errorf("SESSION_GUEST_KEY is required")
	}
	if s.Store == "nats" {
		if !c.NATS.Enabled {
			return fmt.Errorf("SESSION_STORE=nats requires NATS_ENABLED=true")
		}
		if s.NATSBucket == "" {
			return fmt.Errorf("SESSION_NATS_BUCKET is required when SESSION_STORE is nats")
		}
		if s.NATSReplicas < 1 {
			return fmt.Errorf("SESSION_NATS_REPLICAS must be at least 1")
		}
	}
	return nil
}

func (c *Config) validateCDN() error {
	if c.CDN.BaseURL == "" {
		return nil
	}
	return validateCDNBaseURL(c.CDN.BaseURL)
}

// NATS resource limits
const (
	minNATSMemory = 16 << 20 // 16MB
	minNATSStore  = 64 << 20 // 64MB
)

func (c *Config) validateNATS() error {
	if !c.NATS.Enabled {
		return nil
	}
	n := c.NATS
	if !n.EmbeddedServer {
		if err := validateNATSURL(n.URL); err != nil {
			return fmt.Errorf("NATS_URL: %w", err)
		}
	}
	if n.EmbeddedServer {
		if n.StoreDir == "" {
			return fmt.Errorf("NATS_STORE_DIR is required when the embedded server is enabled")
		}
		if n.MaxMemory < minNATSMemory {
			return fmt.Errorf("NATS_MAX_MEMORY must be at least %d bytes", minNATSMemory)
		}
		if n.MaxStore < minNATSStore {
			return fmt.Errorf("NATS_MAX_STORE must be at least %d bytes", minNATSStore)
		}
		if n.Port < 1 || n.Port > 65535 {
			return fmt.Errorf("NATS_PORT must be between 1 and 65535")
		}
	}
	if n.ImpressionsTopic == "" || n.StreamName == "" || n.DurableName == "" {
		return fmt.Errorf("NATS_IMPRESSIONS_TOPIC, NATS_STREAM_NAME and NATS_DURABLE_NAME are required")
	}
	if n.SubscribersCount < 1 {
		return fmt.Errorf("NATS_SUBSCRIBERS must be at least 1")
	}
	if n.RouterRetryCount < 0 {
		return fmt.Errorf("NATS_ROUTER_RETRY_COUNT must be >= 0")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if err := c.validateAuthMode(); err != nil {
		return err
	}
	if err := c.validateCORS(); err != nil {
		return err
	}
	if err := c.validateRateLimits(); err != nil {
		return err
	}
	if c.Security.AuthMode == "jwt" {
		return c.validateJWTSecret()
	}
	return nil
}

var validAuthModes = map[string]bool{
	"none": true,
	"jwt":  true,
}

func (c *Config) validateAuthMode() error {
	if !validAuthModes[c.Security.AuthMode] {
		return fmt.Errorf("AUTH_MODE must be one of: none, jwt")
	}
	// Refuse to start unauthenticated in production.
	if c.Security.AuthMode == "none" && c.IsProduction() {
		return fmt.Errorf("AUTH_MODE=none is not allowed when ENVIRONMENT=production")
	}
	return nil
}

func (c *Config) validateJWTSecret() error {
	if c.Security.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when AUTH_MODE is jwt")
	}
	if len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters for security")
	}
	if containsPlaceholder(c.Security.JWTSecret) {
		return fmt.Errorf("JWT_SECRET contains a placeholder value - generate a secure secret with: openssl rand -base64 32")
	}
	if c.Security.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	return nil
}

// validateCORS rejects wildcard origins in production when authentication
// is enabled.
func (c *Config) validateCORS() error {
	if c.Security.AuthMode != "none" && c.hasWildcardCORS() && c.IsProduction() {
		return fmt.Errorf("CORS_ORIGINS=* (wildcard) is not allowed in production with authentication enabled")
	}
	return nil
}

func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// ShouldWarnAboutCORS returns true if CORS configuration should be flagged
// at startup.
func (c *Config) ShouldWarnAboutCORS() bool {
	return c.Security.AuthMode != "none" && c.hasWildcardCORS()
}

const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

func (c *Config) validateBreaker() error {
	if c.Breaker.FailureThreshold < 1 {
		return fmt.Errorf("BREAKER_FAILURE_THRESHOLD must be at least 1")
	}
	if c.Breaker.Timeout <= 0 {
		return fmt.Errorf("BREAKER_TIMEOUT must be positive")
	}
	return nil
}

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// IsProduction reports whether ENVIRONMENT is production.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "production" || env == "prod"
}

// IsDevelopment reports whether ENVIRONMENT is development or unset.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "" || env == "development" || env == "dev"
}

var placeholderPatterns = []string{
	"REPLACE",
	"CHANGEME",
	"CHANGE_ME",
	"YOUR_SECRET",
	"PLACEHOLDER",
	"EXAMPLE",
}

func containsPlaceholder(value string) bool {
	upper := strings.ToUpper(value)
	for _, pattern := range placeholderPatterns {
		if strings.Contains(upper, pattern) {
			return true
		}
	}
	return false
}

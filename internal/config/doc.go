// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

/*
Package config provides centralized configuration management for Reelfeed.

# Configuration Sources

Configuration is layered with Koanf v2, later layers overriding earlier ones:

  - Built-in defaults (defaultConfig)
  - An optional YAML file: $CONFIG_PATH, config.yaml, config.yml or
    /etc/reelfeed/config.yaml
  - Environment variables, through an explicit name mapping

Only mapped environment variables are read, so unrelated variables in the
process environment never leak into the configuration.

# Configuration Structure

  - ServerConfig: HTTP listener and environment
  - DatabaseConfig: DuckDB path and tuning
  - FeedConfig: page sizing, sponsored cadence and recency windows
  - SessionConfig: feed session backend and expiry
  - CDNConfig: public base URL for media
  - NATSConfig: JetStream event bus and embedded server
  - SecurityConfig: auth mode, rate limiting, CORS
  - CacheConfig and BreakerConfig: data source decorators
  - LoggingConfig: zerolog level and format

# Example

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
	db, err := database.New(&cfg.Database)

# Validation

Validate returns the first problem found, naming the environment variable
to fix. Production mode refuses AUTH_MODE=none and wildcard CORS.
*/
package config

// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

/*
Package main is the entry point for the Reelfeed server.

Reelfeed assembles paginated short-video feeds: organic videos ordered by
recency tier with owners interleaved, sponsored videos spliced in at a
fixed cadence, and a per-viewer session that keeps a video from repeating
until the viewer starts over at page 1.

# Application Architecture

	RootSupervisor ("reelfeed")
	├── DataSupervisor ("data-layer")
	│   └── Session sweeper
	├── MessagingSupervisor ("messaging-layer")
	│   └── Impressions router (Watermill)
	└── APISupervisor ("api-layer")
	    └── HTTP server (chi)

Initialization order:

 1. Configuration: Koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog
 3. Database: DuckDB, optional demo seed
 4. NATS: embedded or external server, JetStream impressions stream
 5. Sessions: memory, BadgerDB or NATS KV store
 6. Feed assembler: DuckDB source behind a circuit breaker and profile cache
 7. Events: impression bus (NATS or in-process), router, recorder
 8. Authentication: JWT identity middleware
 9. HTTP: chi router with Swagger docs and Prometheus metrics
 10. Supervisor tree

# Configuration

Common environment variables:

	HTTP_PORT=8080
	DUCKDB_PATH=/data/reelfeed.duckdb
	SEED_DEMO_DATA=true
	SESSION_STORE=memory|badger|nats
	NATS_ENABLED=true NATS_EMBEDDED=true
	AUTH_MODE=jwt JWT_SECRET=<32+ chars>
	CDN_BASE_URL=https://cdn.example.com

# Signal Handling

SIGINT and SIGTERM cancel the root context. The supervisor drains the HTTP
server and stops the router, then the bus, NATS and the database are closed
in reverse order of creation.
*/
package main

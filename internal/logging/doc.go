// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

// Package logging provides the process-wide zerolog logger for Reelfeed.
//
// The package owns one global logger configured at startup with Init and
// read everywhere else through the level helpers (Info, Warn, Error, ...)
// or through Ctx, which decorates log lines with the request and
// correlation IDs that the HTTP middleware places on the context.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Str("addr", addr).Msg("HTTP server listening")
//	logging.Ctx(r.Context()).Warn().Err(err).Msg("feed assembly failed")
//
// Components that want their own tag take a zerolog.Logger by value:
//
//	logger := logging.WithComponent("feed")
//	asm := feed.NewAssembler(cfg, store, sessions, logger)
//
// # Adapters
//
// Two libraries used by the service expect their own logger types:
//
//   - SlogHandler adapts zerolog to log/slog for the suture supervisor
//     event hook (sutureslog).
//   - WatermillAdapter implements watermill.LoggerAdapter for the
//     impression event router and publishers.
//
// # Environment
//
//	LOG_LEVEL   trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  json, console (default: json)
//	LOG_CALLER  true, false (default: false)
package logging

// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

/*
Package supervisor runs Reelfeed's long-lived services under a suture v4
supervisor tree.

	reelfeed
	├── data-layer
	│   └── session-sweeper
	├── messaging-layer
	│   └── impressions-router (when NATS is enabled)
	└── api-layer
	    └── http-server

Each layer is its own supervisor so a crash-looping event router backs off
without restarting the HTTP server. Supervisor events are logged through
sutureslog, which writes to the zerolog stream via logging.NewSlogLogger.

Shutdown is driven by canceling the context passed to Serve. Services that
do not return within TreeConfig.ShutdownTimeout are listed by
UnstoppedServiceReport.
*/
package supervisor

// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

/*
Package services adapts Reelfeed components to suture.Service.

Each wrapper translates a component's own lifecycle into Serve(ctx):

  - HTTPServerService: ListenAndServe plus Shutdown with a drain timeout.
  - SessionSweepService: a ticker calling session.Manager.Sweep.
  - EventRouterService: the blocking Run(ctx) of the impressions router.

Return values follow suture's rules: ctx.Err() on requested shutdown, any
other error to request a restart with backoff.
*/
package services

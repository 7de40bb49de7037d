// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

/*
Package api exposes the feed over HTTP using the chi router.

Routes:

	GET /api/v1/feed?perPage=&pageNo=   one feed page (pageNo alias: page)
	GET /health/live                    liveness
	GET /health/ready                   readiness (pings registered dependencies)
	GET /metrics                        Prometheus exposition
	GET /swagger/*                      OpenAPI UI

Every JSON response uses the APIResponse envelope. Errors carry a
machine-readable code: VALIDATION_ERROR for bad paging input, UNAUTHORIZED
from the identity middleware, SERVICE_UNAVAILABLE when the storage breaker is
open or assembly times out, INTERNAL_ERROR otherwise.

After a page is written the handler publishes an impression event with the
organic video IDs for authenticated callers. Publish failures are logged and
never change the response.
*/
package api

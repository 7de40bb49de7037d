// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

/*
Package middleware provides the chi middleware shared by all HTTP routes.

  - RequestIDWithLogging: assigns or propagates X-Request-ID and attaches a
    request-scoped zerolog logger to the context.
  - PrometheusMetrics: records request counts, latency and in-flight requests,
    labelled by chi route pattern so path parameters do not explode
    cardinality.
  - SecurityHeaders: standard hardening headers for JSON APIs.

The API router installs them in this order:

	r.Use(middleware.RequestIDWithLogging)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors)
	r.Use(httprate)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.PrometheusMetrics)
*/
package middleware

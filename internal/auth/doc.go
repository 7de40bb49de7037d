// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

// Package auth resolves the identity of feed callers.
//
// Tokens are HS256 JWTs issued by JWTManager and carried either as
// "Authorization: Bearer <token>" or in the "token" cookie. Middleware.Identify
// stores the resulting Identity on the request context; handlers read it with
// IdentityFromContext. Anonymous callers resolve to Guest, which the session
// layer maps to the shared guest key.
package auth

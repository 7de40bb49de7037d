// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/tomtom215/reelfeed/internal/logging"
)

type contextKey string

const identityContextKey contextKey = "identity"

// TokenCookieName is the cookie checked when no Authorization header is sent.
const TokenCookieName = "token"

var (
	errMissingToken  = errors.New("missing token")
	errInvalidHeader = errors.New("invalid authorization header")
)

// Identity is the caller resolved for a request. Guests have an empty UserID.
type Identity struct {
	UserID string
	Role   string
}

// IsGuest reports whether the caller is anonymous.
func (i Identity) IsGuest() bool {
	return i.UserID == ""
}

// Guest is the anonymous identity.
var Guest = Identity{}

// ContextWithIdentity stores id on ctx.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, id)
}

// IdentityFromContext returns the identity stored on ctx, or Guest.
func IdentityFromContext(ctx context.Context) Identity {
	if id, ok := ctx.Value(identityContextKey).(Identity); ok {
		return id
	}
	return Guest
}

// ErrorWriter renders an authentication failure.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, status int, code, message string)

func plainErrorWriter(w http.ResponseWriter, _ *http.Request, status int, _, message string) {
	http.Error(w, message, status)
}

// Middleware resolves caller identity.
type Middleware struct {
	jwtManager     *JWTManager
	authMode       string
	allowAnonymous bool
	writeError     ErrorWriter
}

// NewMiddleware creates the identity middleware. jwtManager may be nil only
// when authMode is "none". A nil writeError falls back to plain-text errors.
func NewMiddleware(jwtManager *JWTManager, authMode string, allowAnonymous bool, writeError ErrorWriter) *Middleware {
	if writeError == nil {
		writeError = plainErrorWriter
	}
	return &Middleware{
		jwtManager:     jwtManager,
		authMode:       authMode,
		allowAnonymous: allowAnonymous,
		writeError:     writeError,
	}
}

// Identify places the caller's Identity on the request context.
//
//   - auth_mode=none: every caller is a guest.
//   - Bearer header or token cookie: validated; invalid tokens get 401.
//   - no token: guest when anonymous access is allowed, 401 otherwise.
func (m *Middleware) Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.authMode == "none" || m.jwtManager == nil {
			next.ServeHTTP(w, r.WithContext(ContextWithIdentity(r.Context(), Guest)))
			return
		}

		token, err := extractToken(r)
		switch {
		case errors.Is(err, errMissingToken):
			if !m.allowAnonymous {
				m.writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithIdentity(r.Context(), Guest)))
			return
		case err != nil:
			m.writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", err.Error())
			return
		}

		claims, err := m.jwtManager.ValidateToken(token)
		if err != nil {
			logging.Ctx(r.Context()).Debug().Err(err).Msg("Token validation failed")
			m.writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "invalid token")
			return
		}

		id := Identity{UserID: claims.UserID, Role: claims.Role}
		ctx := ContextWithIdentity(r.Context(), id)
		ctx = logging.ContextWithLogger(ctx, logging.Ctx(ctx).With().Str("user_id", id.UserID).Logger())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractToken reads a Bearer token from the Authorization header, falling
// back to the token cookie.
func extractToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		cookie, err := r.Cookie(TokenCookieName)
		if err != nil || cookie.Value == "" {
			return "", errMissingToken
		}
		return cookie.Value, nil
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", errInvalidHeader
	}
	return strings.TrimSpace(parts[1]), nil
}

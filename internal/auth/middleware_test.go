// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

// identityRecorder captures the identity seen by the wrapped handler.
func identityRecorder(got *Identity, called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		*got = IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestIdentify(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	valid, err := m.GenerateToken("user-1", "user")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name           string
		mode           string
		allowAnonymous bool
		header         string
		cookie         string
		wantStatus     int
		wantUser       string
	}{
		{"bearer token", "jwt", true, "Bearer " + valid, "", http.StatusOK, "user-1"},
		{"lowercase bearer", "jwt", true, "bearer " + valid, "", http.StatusOK, "user-1"},
		{"cookie token", "jwt", false, "", valid, http.StatusOK, "user-1"},
		{"missing token allowed", "jwt", true, "", "", http.StatusOK, ""},
		{"missing token denied", "jwt", false, "", "", http.StatusUnauthorized, ""},
		{"invalid token", "jwt", true, "Bearer nope", "", http.StatusUnauthorized, ""},
		{"basic scheme", "jwt", true, "Basic dXNlcjpwYXNz", "", http.StatusUnauthorized, ""},
		{"empty bearer", "jwt", true, "Bearer ", "", http.StatusUnauthorized, ""},
		{"auth none ignores token", "none", false, "Bearer " + valid, "", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			mw := NewMiddleware(m, tt.mode, tt.allowAnonymous, nil)

			var got Identity
			var called bool
			h := mw.Identify(identityRecorder(&got, &called))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/feed", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: tt.cookie})
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				if called {
					t.Error("next handler should not run")
				}
				return
			}
			if got.UserID != tt.wantUser {
				t.Errorf("UserID = %q, want %q", got.UserID, tt.wantUser)
			}
			if got.IsGuest() != (tt.wantUser == "") {
				t.Errorf("IsGuest = %v", got.IsGuest())
			}
		})
	}
}

func TestIdentify_CustomErrorWriter(t *testing.T) {
	t.Parallel()

	var gotCode string
	mw := NewMiddleware(newTestManager(t), "jwt", false, func(w http.ResponseWriter, _ *http.Request, status int, code, _ string) {
		gotCode = code
		w.WriteHeader(status)
	})

	rec := httptest.NewRecorder()
	mw.Identify(http.NotFoundHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusUnauthorized || gotCode != "UNAUTHORIZED" {
		t.Errorf("status=%d code=%q", rec.Code, gotCode)
	}
}

func TestIdentityFromContext_DefaultsToGuest(t *testing.T) {
	t.Parallel()

	if id := IdentityFromContext(context.Background()); !id.IsGuest() {
		t.Errorf("IdentityFromContext = %+v, want guest", id)
	}
	ctx := ContextWithIdentity(context.Background(), Identity{UserID: "u"})
	if id := IdentityFromContext(ctx); id.UserID != "u" {
		t.Errorf("UserID = %q", id.UserID)
	}
}

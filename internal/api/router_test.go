// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/reelfeed/internal/config"
)

func TestRouter_NotFoundEnvelope(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, RouterConfig{}, true)
	rec := s.get(t, "/api/v1/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Error == nil || env.Error.Code != ErrCodeNotFound {
		t.Errorf("error = %+v", env.Error)
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, RouterConfig{}, true)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/feed", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Error == nil || env.Error.Code != ErrCodeMethodNotAllowed {
		t.Errorf("error = %+v", env.Error)
	}
}

func TestRouter_RateLimit(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, RouterConfig{RateLimitRequests: 2, RateLimitWindow: time.Minute}, true)
	for i := 0; i < 2; i++ {
		if rec := s.get(t, "/api/v1/feed", ""); rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, rec.Code)
		}
	}
	rec := s.get(t, "/api/v1/feed", "")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Error == nil || env.Error.Code != ErrCodeTooManyRequests {
		t.Errorf("error = %+v", env.Error)
	}
}

func TestRouter_RateLimitDisabled(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, RouterConfig{RateLimitRequests: 1, RateLimitWindow: time.Minute, RateLimitDisabled: true}, true)
	for i := 0; i < 3; i++ {
		if rec := s.get(t, "/api/v1/feed", ""); rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, rec.Code)
		}
	}
}

func TestRouter_RequestIDHeader(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, RouterConfig{}, true)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/feed", nil)
	req.Header.Set("X-Request-ID", "client-req-1")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "client-req-1" {
		t.Errorf("X-Request-ID = %q", got)
	}
	if env := decodeEnvelope(t, rec); env.Meta == nil || env.Meta.RequestID != "client-req-1" {
		t.Errorf("meta = %+v", env.Meta)
	}
	if got := s.feed.lastRequest().RequestID; got != "client-req-1" {
		t.Errorf("assembler RequestID = %q", got)
	}
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, RouterConfig{}, true)
	_ = s.get(t, "/api/v1/feed", "")

	rec := s.get(t, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "go_goroutines") {
		t.Error("metrics output missing runtime collectors")
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, RouterConfig{CORSAllowedOrigins: []string{"https://app.example.com"}, CORSMaxAge: 600}, true)
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/feed", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestRouterConfigFromSecurity(t *testing.T) {
	t.Parallel()

	cfg := RouterConfigFromSecurity(&config.SecurityConfig{
		CORSOrigins:       []string{"*"},
		RateLimitReqs:     50,
		RateLimitWindow:   time.Minute,
		RateLimitDisabled: true,
	})
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.RateLimitRequests != 50 || cfg.RateLimitWindow != time.Minute || !cfg.RateLimitDisabled {
		t.Errorf("cfg = %+v", cfg)
	}
}

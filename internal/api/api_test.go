// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelfeed/internal/auth"
	"github.com/tomtom215/reelfeed/internal/config"
	"github.com/tomtom215/reelfeed/internal/feed"
	"github.com/tomtom215/reelfeed/internal/models"
)

const testSecret = "test-secret-key-that-is-at-least-32-characters-long"

// stubFeed returns a fixed response or error and records the last request.
type stubFeed struct {
	mu   sync.Mutex
	last feed.Request
	resp *feed.Response
	err  error
}

func (s *stubFeed) Assemble(_ context.Context, req feed.Request) (*feed.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = req
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func (s *stubFeed) lastRequest() feed.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

type recordedImpression struct {
	userID string
	ids    []string
	page   int
}

type stubImpressions struct {
	mu    sync.Mutex
	calls []recordedImpression
	err   error

	// block, when set, holds Record until it is closed.
	block chan struct{}
}

func (s *stubImpressions) Record(_ context.Context, userID string, ids []string, page int) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, recordedImpression{userID: userID, ids: ids, page: page})
	return s.err
}

func (s *stubImpressions) recorded() []recordedImpression {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]recordedImpression(nil), s.calls...)
}

// testEnvelope mirrors APIResponse with raw data for typed decoding.
type testEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) testEnvelope {
	t.Helper()
	var env testEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response: %v (body=%s)", err, rec.Body.String())
	}
	return env
}

func samplePage() *feed.Response {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &feed.Response{
		Items: []models.FeedItem{
			{InstanceID: "i1", ID: "v1", Name: "one", CreatedAt: now},
			{InstanceID: "i2", ID: "v2", Name: "two", CreatedAt: now},
			{InstanceID: "i3", ID: "v3", Name: "three", CreatedAt: now},
			{InstanceID: "i4", ID: "s1", Name: "ad", Sponsored: true, SponsorInfo: &models.SponsorInfo{BrandName: "Acme", DisplayText: "Sponsored"}},
		},
		Page:           1,
		PerPage:        3,
		SessionReset:   true,
		OrganicCount:   3,
		SponsoredCount: 1,
	}
}

type testServer struct {
	handler     http.Handler
	api         *Handler
	feed        *stubFeed
	impressions *stubImpressions
	jwt         *auth.JWTManager
}

func newTestServer(t *testing.T, cfg RouterConfig, allowAnonymous bool, opts ...HandlerOption) *testServer {
	t.Helper()

	jwtManager, err := auth.NewJWTManager(&config.SecurityConfig{JWTSecret: testSecret, TokenTTL: time.Hour})
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	svc := &stubFeed{resp: samplePage()}
	imp := &stubImpressions{}
	opts = append([]HandlerOption{WithImpressions(imp), WithVersion("test")}, opts...)
	h := NewHandler(svc, opts...)
	identity := auth.NewMiddleware(jwtManager, "jwt", allowAnonymous, WriteError)

	return &testServer{
		handler:     NewRouter(cfg, h, identity),
		api:         h,
		feed:        svc,
		impressions: imp,
		jwt:         jwtManager,
	}
}

// get serves one request and waits for its background impression publish.
func (s *testServer) get(t *testing.T, target, userID string) *httptest.ResponseRecorder {
	t.Helper()
	rec := s.serve(t, target, userID)
	s.api.Wait()
	return rec
}

// serve serves one request without waiting for background work.
func (s *testServer) serve(t *testing.T, target, userID string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if userID != "" {
		token, err := s.jwt.GenerateToken(userID, "user")
		if err != nil {
			t.Fatalf("GenerateToken() error = %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

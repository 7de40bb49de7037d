// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package api

import (
	"context"
	"net/http"
	"time"
)

// LiveStatus is the liveness payload.
type LiveStatus struct {
	Alive         bool    `json:"alive"`
	Version       string  `json:"version"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// ReadyStatus is the readiness payload.
type ReadyStatus struct {
	Ready  bool              `json:"ready"`
	Checks map[string]string `json:"checks"`
}

// HealthLive godoc
//
//	@Summary	Liveness probe
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	APIResponse{data=LiveStatus}
//	@Router		/health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(LiveStatus{
		Alive:         true,
		Version:       h.version,
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	})
}

// HealthReady godoc
//
//	@Summary		Readiness probe
//	@Description	Pings every registered dependency (database, session store, event bus).
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	APIResponse{data=ReadyStatus}
//	@Failure		503	{object}	APIResponse{data=ReadyStatus}
//	@Router			/health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := ReadyStatus{Ready: true, Checks: make(map[string]string, len(h.checks))}
	for _, c := range h.checks {
		if err := c.checker.Ping(ctx); err != nil {
			status.Ready = false
			status.Checks[c.name] = err.Error()
			continue
		}
		status.Checks[c.name] = "ok"
	}

	rw := NewResponseWriter(w, r)
	if status.Ready {
		rw.Success(status)
		return
	}
	meta := rw.meta(nil)
	rw.writeJSON(http.StatusServiceUnavailable, &APIResponse{
		Success: false,
		Data:    status,
		Error: &APIError{
			Code:      ErrCodeServiceUnavailable,
			Message:   "One or more dependencies are unavailable",
			RequestID: meta.RequestID,
		},
		Meta: meta,
	})
}

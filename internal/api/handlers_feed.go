// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/reelfeed/internal/auth"
	"github.com/tomtom215/reelfeed/internal/database"
	"github.com/tomtom215/reelfeed/internal/feed"
	"github.com/tomtom215/reelfeed/internal/logging"
	"github.com/tomtom215/reelfeed/internal/metrics"
	"github.com/tomtom215/reelfeed/internal/models"
)

// Feed godoc
//
//	@Summary		Get a feed page
//	@Description	Returns one page of the caller's feed: organic videos ordered by recency tier with owners interleaved, plus sponsored videos spliced after every third organic item. Page 1 starts a new anti-repeat session; later pages continue it.
//	@Tags			feed
//	@Produce		json
//	@Param			perPage	query		int	false	"Items per page (server default when omitted)"
//	@Param			pageNo	query		int	false	"1-based page number (alias: page)"	default(1)
//	@Success		200		{object}	APIResponse{data=[]models.FeedItem}
//	@Failure		400		{object}	APIResponse	"VALIDATION_ERROR"
//	@Failure		401		{object}	APIResponse	"UNAUTHORIZED"
//	@Failure		500		{object}	APIResponse	"INTERNAL_ERROR"
//	@Failure		503		{object}	APIResponse	"SERVICE_UNAVAILABLE"
//	@Security		BearerAuth
//	@Router			/api/v1/feed [get]
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	q, verr := parseFeedQuery(r.URL.Query())
	if verr != nil {
		apiErr := verr.ToAPIError()
		rw.ErrorWithDetails(http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
		return
	}

	identity := auth.IdentityFromContext(r.Context())
	ctx := r.Context()
	if h.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.requestTimeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := h.feed.Assemble(ctx, feed.Request{
		UserID:    identity.UserID,
		PerPage:   q.PerPage,
		Page:      q.Page,
		RequestID: logging.RequestIDFromContext(ctx),
	})
	if err != nil {
		metrics.RecordFeedAssembly(time.Since(start), 0, 0, false, err)
		h.writeFeedError(rw, err)
		return
	}
	metrics.RecordFeedAssembly(time.Since(start), resp.OrganicCount, resp.SponsoredCount, resp.Short, nil)
	if resp.SponsorRepeats > 0 {
		metrics.FeedSponsorDuplicates.Add(float64(resp.SponsorRepeats))
	}

	rw.SuccessWithPagination(resp.Items, &PaginationMeta{
		Page:         resp.Page,
		PerPage:      resp.PerPage,
		Count:        len(resp.Items),
		HasMore:      !resp.Short,
		SessionReset: resp.SessionReset,
	})

	h.publishImpressions(r.Context(), identity, resp)
}

func (h *Handler) writeFeedError(rw *ResponseWriter, err error) {
	switch {
	case errors.Is(err, feed.ErrInvalidRequest):
		rw.ErrorWithDetails(http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
	case errors.Is(err, database.ErrCircuitOpen):
		rw.Error(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Feed storage is temporarily unavailable")
	case errors.Is(err, context.DeadlineExceeded):
		rw.Error(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Feed assembly timed out")
	default:
		rw.InternalError(err)
	}
}

// publishImpressions records the organic videos of a served page for
// authenticated callers. The publish runs in the background after the
// response is written; Wait drains it.
func (h *Handler) publishImpressions(ctx context.Context, identity auth.Identity, resp *feed.Response) {
	if h.impressions == nil || identity.IsGuest() {
		return
	}
	ids := organicIDs(resp.Items)
	if len(ids) == 0 {
		return
	}

	ctx = context.WithoutCancel(ctx)
	h.publishes.Add(1)
	go func() {
		defer h.publishes.Done()
		ctx, cancel := context.WithTimeout(ctx, h.publishTimeout)
		defer cancel()
		if err := h.impressions.Record(ctx, identity.UserID, ids, resp.Page); err != nil {
			logging.Ctx(ctx).Debug().Err(err).Msg("Impression publish failed")
		}
	}()
}

func organicIDs(items []models.FeedItem) []string {
	ids := make([]string, 0, len(items))
	for i := range items {
		if !items[i].Sponsored {
			ids = append(ids, items[i].ID)
		}
	}
	return ids
}

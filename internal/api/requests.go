// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package api

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/tomtom215/reelfeed/internal/validation"
)

// FeedQuery holds the parsed query of GET /api/v1/feed. A zero PerPage
// selects the server default; the upper bound is enforced by the assembler.
type FeedQuery struct {
	PerPage int `query:"perPage" validate:"gte=0"`
	Page    int `query:"pageNo" validate:"gte=1"`
}

// parseFeedQuery reads perPage and pageNo (alias page). Absent values
// default to the server page size and page 1.
func parseFeedQuery(q url.Values) (FeedQuery, *validation.RequestValidationError) {
	fq := FeedQuery{Page: 1}

	if raw := strings.TrimSpace(q.Get("perPage")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fq, validation.NewFieldError("perPage", "number", raw, "perPage must be a number")
		}
		fq.PerPage = n
	}

	pageParam := "pageNo"
	raw := strings.TrimSpace(q.Get(pageParam))
	if raw == "" {
		pageParam = "page"
		raw = strings.TrimSpace(q.Get(pageParam))
	}
	if raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fq, validation.NewFieldError(pageParam, "number", raw, pageParam+" must be a number")
		}
		fq.Page = n
	}

	if verr := validation.ValidateStruct(&fq); verr != nil {
		return fq, verr
	}
	return fq, nil
}

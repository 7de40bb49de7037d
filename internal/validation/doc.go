// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

// Package validation wraps go-playground/validator v10 for request structs.
//
// A single validator instance is shared process-wide. Failures come back as
// *RequestValidationError, which converts to the API's VALIDATION_ERROR
// payload:
//
//	type feedQuery struct {
//	    PerPage int `query:"perPage" validate:"min=1,max=100"`
//	    Page    int `query:"pageNo" validate:"min=1"`
//	}
//
//	if err := validation.ValidateStruct(&q); err != nil {
//	    apiErr := err.ToAPIError()
//	    ...
//	}
package validation

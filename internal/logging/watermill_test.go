// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/rs/zerolog"
)

func TestWatermillAdapter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	adapter := NewWatermillAdapter(zerolog.New(&buf))

	adapter.With(watermill.LogFields{"handler": "impressions"}).
		Error("handler failed", errors.New("boom"), watermill.LogFields{"topic": "feed.impressions"})

	out := buf.String()
	for _, want := range []string{
		`"handler":"impressions"`,
		`"topic":"feed.impressions"`,
		`"error":"boom"`,
		`"message":"handler failed"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output %s missing %s", out, want)
		}
	}
}

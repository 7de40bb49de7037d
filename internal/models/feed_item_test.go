// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package models

import (
	"testing"
	"time"
)

func TestNewSponsorInfo_DefaultDisplayText(t *testing.T) {
	t.Parallel()

	info := NewSponsorInfo(&Sponsor{BrandName: "Acme"})
	if info.DisplayText != DefaultSponsorDisplayText {
		t.Errorf("DisplayText = %q, want %q", info.DisplayText, DefaultSponsorDisplayText)
	}

	info = NewSponsorInfo(&Sponsor{BrandName: "Acme", DisplayText: "Promoted"})
	if info.DisplayText != "Promoted" {
		t.Errorf("DisplayText = %q, want Promoted", info.DisplayText)
	}
}

func TestNewInfo_Nil(t *testing.T) {
	t.Parallel()

	if NewSponsorInfo(nil) != nil {
		t.Error("NewSponsorInfo(nil) should be nil")
	}
	if NewOwnerInfo(nil) != nil {
		t.Error("NewOwnerInfo(nil) should be nil")
	}
}

func TestVideoAge(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	v := &Video{CreatedAt: now.Add(-90 * time.Minute)}
	if got := v.Age(now); got != 90*time.Minute {
		t.Errorf("Age = %v, want 90m", got)
	}
}

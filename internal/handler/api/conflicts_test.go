// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/htwlabs/eventdesk/internal/conflict"
	"github.com/htwlabs/eventdesk/internal/model"
	"github.com/htwlabs/eventdesk/internal/testutil"
)

// scheduleEvent drives an event to approved at the given date and venue.
func scheduleEvent(t *testing.T, h *Handler, host, admin model.User, date time.Time, venue string) EventResponse {
	t.Helper()

	event := createDraft(t, h, host)

	dateStr := date.Format(time.RFC3339)
	capacity := int64(40)
	audience := "Local developers"
	agreement := time.Now().Format(time.RFC3339)
	rec := doRequest(t, h, host, http.MethodPatch, "/events/"+event.ID, UpdateEventRequest{
		EventDate:           &dateStr,
		Venue:               &venue,
		Capacity:            &capacity,
		Formats:             []string{"talks"},
		TargetAudience:      &audience,
		AgreementAcceptedAt: &agreement,
	})
	mustStatus(t, rec, http.StatusOK)

	mustStatus(t, doRequest(t, h, host, http.MethodPost, "/events/"+event.ID+"/submit", nil), http.StatusOK)
	rec = doRequest(t, h, admin, http.MethodPost, "/events/"+event.ID+"/approve", nil)
	mustStatus(t, rec, http.StatusOK)
	decodeData(t, rec, &event)
	return event
}

func TestCheckConflicts(t *testing.T) {
	h, db, cleanup := newTestHandler(t)
	defer cleanup()
	host := testutil.CreateHost(t, db, "alice")
	admin := testutil.CreateAdmin(t, db, "root")

	base := time.Now().Add(45 * 24 * time.Hour).Truncate(time.Hour)
	scheduled := scheduleEvent(t, h, host, admin, base, "Community Hall")

	probe := base.Add(30 * time.Minute)
	target := "/conflicts?venue=" + url.QueryEscape("community   HALL") +
		"&date=" + url.QueryEscape(probe.Format(time.RFC3339))

	rec := doRequest(t, h, host, http.MethodGet, target, nil)
	mustStatus(t, rec, http.StatusOK)

	var matches []conflict.Match
	decodeData(t, rec, &matches)
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if matches[0].EventID != scheduled.ID {
		t.Errorf("match event = %q, want %q", matches[0].EventID, scheduled.ID)
	}
	if !matches[0].IsDirectConflict {
		t.Error("30 minute gap should be a direct conflict")
	}

	// Excluding the scheduled event clears the result.
	rec = doRequest(t, h, host, http.MethodGet, target+"&exclude="+scheduled.ID, nil)
	mustStatus(t, rec, http.StatusOK)
	decodeData(t, rec, &matches)
	if len(matches) != 0 {
		t.Errorf("got %d matches with exclude, want 0", len(matches))
	}
}

func TestCheckConflictsBadInput(t *testing.T) {
	h, db, cleanup := newTestHandler(t)
	defer cleanup()
	host := testutil.CreateHost(t, db, "alice")

	rec := doRequest(t, h, host, http.MethodGet, "/conflicts?date=2026-10-01T18:00:00Z", nil)
	mustStatus(t, rec, http.StatusBadRequest)

	rec = doRequest(t, h, host, http.MethodGet, "/conflicts?venue=Hall&date=not-a-date", nil)
	mustStatus(t, rec, http.StatusBadRequest)
}

// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/htwlabs/eventdesk/internal/model"
	"github.com/htwlabs/eventdesk/internal/testutil"
)

// createDraft creates a draft event over the API and returns its response.
func createDraft(t *testing.T, h *Handler, host model.User) EventResponse {
	t.Helper()

	rec := doRequest(t, h, host, http.MethodPost, "/events", CreateEventRequest{
		Title:            "Go Meetup",
		ShortDescription: "An evening of talks and conversation about building production Go services.",
	})
	mustStatus(t, rec, http.StatusCreated)

	var event EventResponse
	decodeData(t, rec, &event)
	return event
}

// fillDraft patches in everything submit requires.
func fillDraft(t *testing.T, h *Handler, host model.User, eventID string) {
	t.Helper()

	date := time.Now().Add(30 * 24 * time.Hour).Format(time.RFC3339)
	venue := "Community Hall"
	capacity := int64(80)
	audience := "Engineers interested in backend development"
	agreement := time.Now().Format(time.RFC3339)

	rec := doRequest(t, h, host, http.MethodPatch, "/events/"+eventID, UpdateEventRequest{
		EventDate:           &date,
		Venue:               &venue,
		Capacity:            &capacity,
		Formats:             []string{"talks", "networking"},
		TargetAudience:      &audience,
		AgreementAcceptedAt: &agreement,
	})
	mustStatus(t, rec, http.StatusOK)
}

func TestStatusEndpoint(t *testing.T) {
	h, _, cleanup := newTestHandler(t)
	defer cleanup()

	rec := doRequest(t, h, model.User{}, http.MethodGet, "/status", nil)
	mustStatus(t, rec, http.StatusOK)

	var status StatusResponse
	decodeData(t, rec, &status)
	if status.Status != "ok" || status.Version != "v1" {
		t.Errorf("status = %+v, want ok/v1", status)
	}
}

func TestCreateEvent(t *testing.T) {
	h, db, cleanup := newTestHandler(t)
	defer cleanup()
	host := testutil.CreateHost(t, db, "alice")

	event := createDraft(t, h, host)
	if event.Status != model.StatusDraft {
		t.Errorf("status = %q, want draft", event.Status)
	}
	if event.HostID != host.ID {
		t.Errorf("host_id = %q, want %q", event.HostID, host.ID)
	}
	if event.Capacity != model.DefaultCapacity {
		t.Errorf("capacity = %d, want default %d", event.Capacity, model.DefaultCapacity)
	}
}

func TestCreateEventUnauthenticated(t *testing.T) {
	h, _, cleanup := newTestHandler(t)
	defer cleanup()

	rec := doRequest(t, h, model.User{}, http.MethodPost, "/events", CreateEventRequest{Title: "X"})
	mustStatus(t, rec, http.StatusUnauthorized)
	if detail := decodeError(t, rec); detail.Code != "unauthenticated" {
		t.Errorf("error code = %q, want unauthenticated", detail.Code)
	}
}

func TestCreateEventInvalidBody(t *testing.T) {
	h, db, cleanup := newTestHandler(t)
	defer cleanup()
	host := testutil.CreateHost(t, db, "alice")

	rec := doRequest(t, h, host, http.MethodPost, "/events", "not an object")
	mustStatus(t, rec, http.StatusBadRequest)
}

func TestGetEventHiddenFromOtherHost(t *testing.T) {
	h, db, cleanup := newTestHandler(t)
	defer cleanup()
	alice := testutil.CreateHost(t, db, "alice")
	bob := testutil.CreateHost(t, db, "bob")

	event := createDraft(t, h, alice)

	rec := doRequest(t, h, bob, http.MethodGet, "/events/"+event.ID, nil)
	mustStatus(t, rec, http.StatusNotFound)

	rec = doRequest(t, h, alice, http.MethodGet, "/events/"+event.ID, nil)
	mustStatus(t, rec, http.StatusOK)
}

func TestSubmitIncompleteDraft(t *testing.T) {
	h, db, cleanup := newTestHandler(t)
	defer cleanup()
	host := testutil.CreateHost(t, db, "alice")

	event := createDraft(t, h, host)
	rec := doRequest(t, h, host, http.MethodPost, "/events/"+event.ID+"/submit", nil)
	mustStatus(t, rec, http.StatusUnprocessableEntity)

	detail := decodeError(t, rec)
	if detail.Code != "validation_failed" {
		t.Fatalf("error code = %q, want validation_failed", detail.Code)
	}
	if len(detail.Details) == 0 {
		t.Error("expected offending fields in details")
	}
}

func TestFullLifecycleOverAPI(t *testing.T) {
	h, db, cleanup := newTestHandler(t)
	defer cleanup()
	host := testutil.CreateHost(t, db, "alice")
	admin := testutil.CreateAdmin(t, db, "root")

	event := createDraft(t, h, host)
	fillDraft(t, h, host, event.ID)

	rec := doRequest(t, h, host, http.MethodPost, "/events/"+event.ID+"/submit", nil)
	mustStatus(t, rec, http.StatusOK)
	decodeData(t, rec, &event)
	if event.Status != model.StatusSubmitted {
		t.Fatalf("status after submit = %q", event.Status)
	}

	// Admin requests changes; host resubmits.
	rec = doRequest(t, h, admin, http.MethodPost, "/events/"+event.ID+"/request-changes",
		RequestChangesRequest{Message: "Please pick a bigger venue", Fields: []string{"venue"}})
	mustStatus(t, rec, http.StatusOK)
	decodeData(t, rec, &event)
	if event.Status != model.StatusChangesRequested {
		t.Fatalf("status after request-changes = %q", event.Status)
	}

	rec = doRequest(t, h, host, http.MethodPost, "/events/"+event.ID+"/submit", nil)
	mustStatus(t, rec, http.StatusOK)
	decodeData(t, rec, &event)
	if event.Status != model.StatusResubmitted {
		t.Fatalf("status after resubmit = %q", event.Status)
	}

	// Approve generates the checklist.
	rec = doRequest(t, h, admin, http.MethodPost, "/events/"+event.ID+"/approve", nil)
	mustStatus(t, rec, http.StatusOK)
	decodeData(t, rec, &event)
	if event.Status != model.StatusApproved {
		t.Fatalf("status after approve = %q", event.Status)
	}
	if len(event.Checklist) == 0 {
		t.Fatal("approve did not generate a checklist")
	}

	// Publish refuses without a registration URL.
	rec = doRequest(t, h, admin, http.MethodPost, "/events/"+event.ID+"/publish", nil)
	mustStatus(t, rec, http.StatusPreconditionFailed)

	rec = doRequest(t, h, host, http.MethodPut, "/events/"+event.ID+"/registration-url",
		SetRegistrationURLRequest{URL: "https://lu.ma/go-meetup"})
	mustStatus(t, rec, http.StatusOK)

	rec = doRequest(t, h, admin, http.MethodPost, "/events/"+event.ID+"/publish", nil)
	mustStatus(t, rec, http.StatusOK)
	decodeData(t, rec, &event)
	if event.Status != model.StatusPublished {
		t.Fatalf("status after publish = %q", event.Status)
	}
	if !event.OnCalendar {
		t.Error("published event not flagged on_calendar")
	}
}

func TestSubmitFromWrongStatus(t *testing.T) {
	h, db, cleanup := newTestHandler(t)
	defer cleanup()
	host := testutil.CreateHost(t, db, "alice")

	event := createDraft(t, h, host)
	fillDraft(t, h, host, event.ID)

	rec := doRequest(t, h, host, http.MethodPost, "/events/"+event.ID+"/submit", nil)
	mustStatus(t, rec, http.StatusOK)

	// Second submit conflicts with the submitted status.
	rec = doRequest(t, h, host, http.MethodPost, "/events/"+event.ID+"/submit", nil)
	mustStatus(t, rec, http.StatusConflict)
	if detail := decodeError(t, rec); detail.Code != "invalid_state" {
		t.Errorf("error code = %q, want invalid_state", detail.Code)
	}
}

func TestListEventsByStatusRequiresAdmin(t *testing.T) {
	h, db, cleanup := newTestHandler(t)
	defer cleanup()
	host := testutil.CreateHost(t, db, "alice")

	rec := doRequest(t, h, host, http.MethodGet, "/events?status=submitted", nil)
	mustStatus(t, rec, http.StatusForbidden)
}

func TestListEventsMine(t *testing.T) {
	h, db, cleanup := newTestHandler(t)
	defer cleanup()
	alice := testutil.CreateHost(t, db, "alice")
	bob := testutil.CreateHost(t, db, "bob")

	createDraft(t, h, alice)
	createDraft(t, h, alice)
	createDraft(t, h, bob)

	rec := doRequest(t, h, alice, http.MethodGet, "/events", nil)
	mustStatus(t, rec, http.StatusOK)

	var events []EventResponse
	decodeData(t, rec, &events)
	if len(events) != 2 {
		t.Errorf("got %d events, want 2", len(events))
	}
}

func TestForceStatusRejectsUnknownValue(t *testing.T) {
	h, db, cleanup := newTestHandler(t)
	defer cleanup()
	host := testutil.CreateHost(t, db, "alice")
	admin := testutil.CreateAdmin(t, db, "root")

	event := createDraft(t, h, host)

	rec := doRequest(t, h, admin, http.MethodPut, "/events/"+event.ID+"/status",
		ForceStatusRequest{Status: "archived"})
	mustStatus(t, rec, http.StatusUnprocessableEntity)

	rec = doRequest(t, h, admin, http.MethodPut, "/events/"+event.ID+"/status",
		ForceStatusRequest{Status: model.StatusApproved})
	mustStatus(t, rec, http.StatusOK)
	decodeData(t, rec, &event)
	if event.Status != model.StatusApproved {
		t.Errorf("status = %q, want approved", event.Status)
	}
	// The force path never builds a checklist.
	if len(event.Checklist) != 0 {
		t.Error("force-status generated a checklist")
	}
}

func TestToggleChecklistItem(t *testing.T) {
	h, db, cleanup := newTestHandler(t)
	defer cleanup()
	host := testutil.CreateHost(t, db, "alice")
	admin := testutil.CreateAdmin(t, db, "root")

	event := createDraft(t, h, host)
	fillDraft(t, h, host, event.ID)
	mustStatus(t, doRequest(t, h, host, http.MethodPost, "/events/"+event.ID+"/submit", nil), http.StatusOK)

	rec := doRequest(t, h, admin, http.MethodPost, "/events/"+event.ID+"/approve", nil)
	mustStatus(t, rec, http.StatusOK)
	decodeData(t, rec, &event)

	itemID := event.Checklist[0].ID
	rec = doRequest(t, h, host, http.MethodPut,
		fmt.Sprintf("/events/%s/checklist/%s", event.ID, itemID),
		ToggleChecklistItemRequest{Completed: true})
	mustStatus(t, rec, http.StatusOK)
	decodeData(t, rec, &event)
	if !event.Checklist[0].Completed {
		t.Error("checklist item not marked completed")
	}
}

func TestDeleteEvent(t *testing.T) {
	h, db, cleanup := newTestHandler(t)
	defer cleanup()
	host := testutil.CreateHost(t, db, "alice")

	event := createDraft(t, h, host)
	rec := doRequest(t, h, host, http.MethodDelete, "/events/"+event.ID, nil)
	mustStatus(t, rec, http.StatusNoContent)

	rec = doRequest(t, h, host, http.MethodGet, "/events/"+event.ID, nil)
	mustStatus(t, rec, http.StatusNotFound)
}

func TestEventStats(t *testing.T) {
	h, db, cleanup := newTestHandler(t)
	defer cleanup()
	host := testutil.CreateHost(t, db, "alice")

	createDraft(t, h, host)
	event := createDraft(t, h, host)
	fillDraft(t, h, host, event.ID)
	mustStatus(t, doRequest(t, h, host, http.MethodPost, "/events/"+event.ID+"/submit", nil), http.StatusOK)

	rec := doRequest(t, h, host, http.MethodGet, "/events/stats", nil)
	mustStatus(t, rec, http.StatusOK)

	var stats model.EventStats
	decodeData(t, rec, &stats)
	if stats.Total != 2 || stats.Draft != 1 || stats.Submitted != 1 {
		t.Errorf("stats = %+v, want total=2 draft=1 submitted=1", stats)
	}
}

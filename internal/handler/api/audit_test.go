// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"testing"

	"github.com/htwlabs/eventdesk/internal/model"
	"github.com/htwlabs/eventdesk/internal/testutil"
)

func TestListAuditAdminOnly(t *testing.T) {
	h, db, cleanup := newTestHandler(t)
	defer cleanup()
	host := testutil.CreateHost(t, db, "alice")
	admin := testutil.CreateAdmin(t, db, "root")

	event := createDraft(t, h, host)

	rec := doRequest(t, h, host, http.MethodGet, "/events/"+event.ID+"/audit", nil)
	mustStatus(t, rec, http.StatusForbidden)

	rec = doRequest(t, h, admin, http.MethodGet, "/events/"+event.ID+"/audit", nil)
	mustStatus(t, rec, http.StatusOK)

	var entries []AuditEntryResponse
	decodeData(t, rec, &entries)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Action != model.ActionEventCreated {
		t.Errorf("action = %q, want %q", entries[0].Action, model.ActionEventCreated)
	}
	if entries[0].ActorName != "alice" {
		t.Errorf("actor_name = %q, want alice", entries[0].ActorName)
	}
}

func TestAuditRecordsReviewTrail(t *testing.T) {
	h, db, cleanup := newTestHandler(t)
	defer cleanup()
	host := testutil.CreateHost(t, db, "alice")
	admin := testutil.CreateAdmin(t, db, "root")

	event := requestChangesOn(t, h, host, admin)

	rec := doRequest(t, h, admin, http.MethodGet, "/events/"+event.ID+"/audit", nil)
	mustStatus(t, rec, http.StatusOK)

	var entries []AuditEntryResponse
	decodeData(t, rec, &entries)

	// Newest first: status_changed, event_submitted, event_created.
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[0].Action != model.ActionStatusChanged {
		t.Errorf("latest action = %q, want %q", entries[0].Action, model.ActionStatusChanged)
	}
	if len(entries[0].Meta.Fields) != 1 || entries[0].Meta.Fields[0] != "shortDescription" {
		t.Errorf("meta fields = %v, want [shortDescription]", entries[0].Meta.Fields)
	}
}

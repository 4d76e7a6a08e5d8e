// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/htwlabs/eventdesk/internal/testutil"
)

func TestFormDraftRoundTrip(t *testing.T) {
	h, db, cleanup := newTestHandler(t)
	defer cleanup()
	host := testutil.CreateHost(t, db, "alice")

	payload := json.RawMessage(`{"title":"Half-written event","venue":""}`)
	rec := doRequest(t, h, host, http.MethodPut, "/drafts/forms/new-event",
		SaveFormDraftRequest{Data: payload})
	mustStatus(t, rec, http.StatusOK)

	rec = doRequest(t, h, host, http.MethodGet, "/drafts/forms/new-event", nil)
	mustStatus(t, rec, http.StatusOK)

	var draft FormDraftResponse
	decodeData(t, rec, &draft)
	if draft.Key != "new-event" {
		t.Errorf("key = %q, want new-event", draft.Key)
	}
	if string(draft.Data) != string(payload) {
		t.Errorf("data = %s, want %s", draft.Data, payload)
	}

	rec = doRequest(t, h, host, http.MethodDelete, "/drafts/forms/new-event", nil)
	mustStatus(t, rec, http.StatusNoContent)

	rec = doRequest(t, h, host, http.MethodGet, "/drafts/forms/new-event", nil)
	mustStatus(t, rec, http.StatusNotFound)
}

func TestFormDraftsScopedPerUser(t *testing.T) {
	h, db, cleanup := newTestHandler(t)
	defer cleanup()
	alice := testutil.CreateHost(t, db, "alice")
	bob := testutil.CreateHost(t, db, "bob")

	rec := doRequest(t, h, alice, http.MethodPut, "/drafts/forms/new-event",
		SaveFormDraftRequest{Data: json.RawMessage(`{"title":"Alice"}`)})
	mustStatus(t, rec, http.StatusOK)

	rec = doRequest(t, h, bob, http.MethodGet, "/drafts/forms/new-event", nil)
	mustStatus(t, rec, http.StatusNotFound)
}

func TestFeedbackDraftRoundTrip(t *testing.T) {
	h, db, cleanup := newTestHandler(t)
	defer cleanup()
	host := testutil.CreateHost(t, db, "alice")
	admin := testutil.CreateAdmin(t, db, "root")

	event := createDraft(t, h, host)

	rec := doRequest(t, h, admin, http.MethodPut, "/events/"+event.ID+"/feedback-draft",
		SaveFeedbackDraftRequest{FieldPath: "venue", Reason: "unclear", Message: "Which building?"})
	mustStatus(t, rec, http.StatusOK)

	rec = doRequest(t, h, admin, http.MethodGet, "/events/"+event.ID+"/feedback-draft?field_path=venue", nil)
	mustStatus(t, rec, http.StatusOK)

	var draft FeedbackDraftResponse
	decodeData(t, rec, &draft)
	if draft.Message != "Which building?" || draft.FieldPath != "venue" {
		t.Errorf("draft = %+v", draft)
	}

	// Opening the thread consumes the draft.
	rec = doRequest(t, h, admin, http.MethodPost, "/events/"+event.ID+"/feedback",
		OpenThreadRequest{FieldPath: "venue", Reason: draft.Reason, Message: draft.Message})
	mustStatus(t, rec, http.StatusCreated)

	rec = doRequest(t, h, admin, http.MethodGet, "/events/"+event.ID+"/feedback-draft?field_path=venue", nil)
	mustStatus(t, rec, http.StatusNotFound)
}

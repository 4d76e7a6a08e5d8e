// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"testing"

	"github.com/htwlabs/eventdesk/internal/model"
	"github.com/htwlabs/eventdesk/internal/testutil"
)

// requestChangesOn pushes a filled draft through submit and request-changes
// so the host ends up with a notification.
func requestChangesOn(t *testing.T, h *Handler, host, admin model.User) EventResponse {
	t.Helper()

	event := createDraft(t, h, host)
	fillDraft(t, h, host, event.ID)
	mustStatus(t, doRequest(t, h, host, http.MethodPost, "/events/"+event.ID+"/submit", nil), http.StatusOK)
	rec := doRequest(t, h, admin, http.MethodPost, "/events/"+event.ID+"/request-changes",
		RequestChangesRequest{Message: "More detail please", Fields: []string{"shortDescription"}})
	mustStatus(t, rec, http.StatusOK)
	decodeData(t, rec, &event)
	return event
}

func TestNotificationFlow(t *testing.T) {
	h, db, cleanup := newTestHandler(t)
	defer cleanup()
	host := testutil.CreateHost(t, db, "alice")
	admin := testutil.CreateAdmin(t, db, "root")

	requestChangesOn(t, h, host, admin)

	rec := doRequest(t, h, host, http.MethodGet, "/notifications", nil)
	mustStatus(t, rec, http.StatusOK)

	var notifications []NotificationResponse
	decodeData(t, rec, &notifications)
	if len(notifications) != 1 {
		t.Fatalf("got %d notifications, want 1", len(notifications))
	}
	if notifications[0].Type != model.NotificationChangesRequested {
		t.Errorf("type = %q, want %q", notifications[0].Type, model.NotificationChangesRequested)
	}
	if notifications[0].ReadAt != nil {
		t.Error("fresh notification already marked read")
	}

	rec = doRequest(t, h, host, http.MethodGet, "/notifications/unread-count", nil)
	mustStatus(t, rec, http.StatusOK)
	var count UnreadCountResponse
	decodeData(t, rec, &count)
	if count.Unread != 1 {
		t.Errorf("unread = %d, want 1", count.Unread)
	}

	rec = doRequest(t, h, host, http.MethodPost, "/notifications/"+notifications[0].ID+"/read", nil)
	mustStatus(t, rec, http.StatusOK)
	var read NotificationResponse
	decodeData(t, rec, &read)
	if read.ReadAt == nil {
		t.Error("notification not marked read")
	}

	rec = doRequest(t, h, host, http.MethodGet, "/notifications/unread-count", nil)
	mustStatus(t, rec, http.StatusOK)
	decodeData(t, rec, &count)
	if count.Unread != 0 {
		t.Errorf("unread after read = %d, want 0", count.Unread)
	}
}

func TestMarkOtherUsersNotification(t *testing.T) {
	h, db, cleanup := newTestHandler(t)
	defer cleanup()
	host := testutil.CreateHost(t, db, "alice")
	bob := testutil.CreateHost(t, db, "bob")
	admin := testutil.CreateAdmin(t, db, "root")

	requestChangesOn(t, h, host, admin)

	rec := doRequest(t, h, host, http.MethodGet, "/notifications", nil)
	mustStatus(t, rec, http.StatusOK)
	var notifications []NotificationResponse
	decodeData(t, rec, &notifications)

	rec = doRequest(t, h, bob, http.MethodPost, "/notifications/"+notifications[0].ID+"/read", nil)
	mustStatus(t, rec, http.StatusNotFound)
}

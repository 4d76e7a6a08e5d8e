// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/htwlabs/eventdesk/internal/lifecycle"
	"github.com/htwlabs/eventdesk/internal/middleware"
	"github.com/htwlabs/eventdesk/internal/model"
	"github.com/htwlabs/eventdesk/internal/testutil"
)

// newTestHandler creates a handler backed by a temp database. The returned
// cleanup closes the database.
func newTestHandler(t *testing.T) (*Handler, *sql.DB, func()) {
	t.Helper()

	db, cleanup := testutil.TestDB(t)
	h := NewHandler(db, lifecycle.Config{RequireLumaDomain: true})
	return h, db, cleanup
}

// testRouter mounts the API routes without token authentication; asUser
// injects the given user the way TokenAuth would.
func testRouter(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/status", h.Status)

	r.Get("/events", h.ListEvents)
	r.Post("/events", h.CreateEvent)
	r.Get("/events/stats", h.EventStats)
	r.Get("/events/{id}", h.GetEvent)
	r.Patch("/events/{id}", h.UpdateEvent)
	r.Delete("/events/{id}", h.DeleteEvent)
	r.Post("/events/{id}/submit", h.SubmitEvent)
	r.Put("/events/{id}/registration-url", h.SetRegistrationURL)
	r.Put("/events/{id}/checklist/{itemID}", h.ToggleChecklistItem)

	r.Post("/events/{id}/request-changes", h.RequestChanges)
	r.Post("/events/{id}/approve", h.ApproveEvent)
	r.Post("/events/{id}/publish", h.PublishEvent)
	r.Put("/events/{id}/status", h.ForceStatus)
	r.Patch("/events/{id}/admin", h.AdminUpdateEvent)
	r.Post("/events/{id}/checklist/regenerate", h.RegenerateChecklist)

	r.Get("/events/{id}/feedback", h.ListThreads)
	r.Post("/events/{id}/feedback", h.OpenThread)
	r.Post("/feedback/{threadID}/comments", h.AddComment)
	r.Post("/feedback/{threadID}/resolve", h.ResolveThread)

	r.Get("/events/{id}/audit", h.ListAudit)
	r.Get("/conflicts", h.CheckConflicts)

	r.Get("/notifications", h.ListNotifications)
	r.Get("/notifications/unread-count", h.UnreadNotificationCount)
	r.Post("/notifications/{id}/read", h.MarkNotificationRead)

	r.Put("/drafts/forms/{key}", h.SaveFormDraft)
	r.Get("/drafts/forms/{key}", h.GetFormDraft)
	r.Delete("/drafts/forms/{key}", h.ClearFormDraft)

	r.Put("/events/{id}/feedback-draft", h.SaveFeedbackDraft)
	r.Get("/events/{id}/feedback-draft", h.GetFeedbackDraft)
	r.Delete("/events/{id}/feedback-draft", h.ClearFeedbackDraft)

	return r
}

// doRequest performs an HTTP request against the test router with the given
// user as the authenticated caller. A zero-ID user means unauthenticated.
func doRequest(t *testing.T, h *Handler, user model.User, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling request body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if user.ID != "" {
		req = req.WithContext(context.WithValue(req.Context(), middleware.ContextKeyUser, user))
	}

	rec := httptest.NewRecorder()
	testRouter(h).ServeHTTP(rec, req)
	return rec
}

// decodeData unmarshals the response envelope's data field into dst.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding response envelope: %v", err)
	}
	if err := json.Unmarshal(envelope.Data, dst); err != nil {
		t.Fatalf("decoding response data: %v", err)
	}
}

// decodeError unmarshals an error response body.
func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorDetail {
	t.Helper()

	var envelope ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding error response: %v", err)
	}
	return envelope.Error
}

// mustStatus fails the test unless the recorder holds the given status code.
func mustStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, want, rec.Body.String())
	}
}

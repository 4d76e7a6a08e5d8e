// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/htwlabs/eventdesk/internal/middleware"
)

// RequestChangesRequest represents the request body for requesting changes
// on a submitted event.
type RequestChangesRequest struct {
	Message string   `json:"message"`
	Reason  string   `json:"reason,omitempty"`
	Fields  []string `json:"fields,omitempty"`
}

// RequestChanges handles POST /api/v1/events/{id}/request-changes.
func (h *Handler) RequestChanges(w http.ResponseWriter, r *http.Request) {
	var req RequestChangesRequest
	if !decodeBody(w, r, &req) {
		return
	}

	event, err := h.events.RequestChanges(r.Context(), middleware.GetCaller(r),
		chi.URLParam(r, "id"), req.Message, req.Reason, req.Fields)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteSuccess(w, eventToResponse(event), nil)
}

// ApproveEvent handles POST /api/v1/events/{id}/approve.
func (h *Handler) ApproveEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.events.Approve(r.Context(), middleware.GetCaller(r), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteSuccess(w, eventToResponse(event), nil)
}

// PublishEvent handles POST /api/v1/events/{id}/publish.
func (h *Handler) PublishEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.events.Publish(r.Context(), middleware.GetCaller(r), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteSuccess(w, eventToResponse(event), nil)
}

// ForceStatusRequest represents the request body for the admin status
// override.
type ForceStatusRequest struct {
	Status string `json:"status"`
}

// ForceStatus handles PUT /api/v1/events/{id}/status.
func (h *Handler) ForceStatus(w http.ResponseWriter, r *http.Request) {
	var req ForceStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}

	event, err := h.events.ForceStatus(r.Context(), middleware.GetCaller(r),
		chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteSuccess(w, eventToResponse(event), nil)
}

// AdminUpdateEvent handles PATCH /api/v1/events/{id}/admin. Unlike the host
// patch it works in any status.
func (h *Handler) AdminUpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req UpdateEventRequest
	if !decodeBody(w, r, &req) {
		return
	}
	patch, ok := req.toPatch(w)
	if !ok {
		return
	}

	event, err := h.events.AdminUpdate(r.Context(), middleware.GetCaller(r), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteSuccess(w, eventToResponse(event), nil)
}

// RegenerateChecklist handles POST /api/v1/events/{id}/checklist/regenerate.
func (h *Handler) RegenerateChecklist(w http.ResponseWriter, r *http.Request) {
	event, err := h.events.RegenerateChecklist(r.Context(), middleware.GetCaller(r), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteSuccess(w, eventToResponse(event), nil)
}

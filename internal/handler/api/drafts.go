// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/htwlabs/eventdesk/internal/middleware"
)

// FormDraftResponse represents a cached form draft.
type FormDraftResponse struct {
	Key       string          `json:"key"`
	Data      json.RawMessage `json:"data"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// SaveFormDraftRequest represents the request body for saving a form draft.
// Data is stored verbatim; the server never inspects it.
type SaveFormDraftRequest struct {
	Data json.RawMessage `json:"data"`
}

// SaveFormDraft handles PUT /api/v1/drafts/forms/{key}.
func (h *Handler) SaveFormDraft(w http.ResponseWriter, r *http.Request) {
	var req SaveFormDraftRequest
	if !decodeBody(w, r, &req) {
		return
	}

	d, err := h.drafts.SaveForm(r.Context(), middleware.GetCaller(r), chi.URLParam(r, "key"), string(req.Data))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteSuccess(w, FormDraftResponse{
		Key:       d.Key,
		Data:      json.RawMessage(d.Data),
		UpdatedAt: d.UpdatedAt,
	}, nil)
}

// GetFormDraft handles GET /api/v1/drafts/forms/{key}.
func (h *Handler) GetFormDraft(w http.ResponseWriter, r *http.Request) {
	d, err := h.drafts.GetForm(r.Context(), middleware.GetCaller(r), chi.URLParam(r, "key"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteSuccess(w, FormDraftResponse{
		Key:       d.Key,
		Data:      json.RawMessage(d.Data),
		UpdatedAt: d.UpdatedAt,
	}, nil)
}

// ClearFormDraft handles DELETE /api/v1/drafts/forms/{key}.
func (h *Handler) ClearFormDraft(w http.ResponseWriter, r *http.Request) {
	if err := h.drafts.ClearForm(r.Context(), middleware.GetCaller(r), chi.URLParam(r, "key")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// FeedbackDraftResponse represents a cached feedback comment draft.
type FeedbackDraftResponse struct {
	EventID   string `json:"event_id"`
	FieldPath string `json:"field_path"`
	Reason    string `json:"reason,omitempty"`
	Message   string `json:"message"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SaveFeedbackDraftRequest represents the request body for saving a feedback
// comment draft.
type SaveFeedbackDraftRequest struct {
	FieldPath string `json:"field_path,omitempty"`
	Reason    string `json:"reason,omitempty"`
	Message   string `json:"message"`
}

// SaveFeedbackDraft handles PUT /api/v1/events/{id}/feedback-draft.
func (h *Handler) SaveFeedbackDraft(w http.ResponseWriter, r *http.Request) {
	var req SaveFeedbackDraftRequest
	if !decodeBody(w, r, &req) {
		return
	}

	d, err := h.drafts.SaveFeedback(r.Context(), middleware.GetCaller(r),
		chi.URLParam(r, "id"), req.FieldPath, req.Reason, req.Message)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteSuccess(w, FeedbackDraftResponse{
		EventID:   d.EventID,
		FieldPath: d.FieldPath,
		Reason:    d.Reason,
		Message:   d.Message,
		UpdatedAt: d.UpdatedAt,
	}, nil)
}

// GetFeedbackDraft handles GET /api/v1/events/{id}/feedback-draft.
func (h *Handler) GetFeedbackDraft(w http.ResponseWriter, r *http.Request) {
	d, err := h.drafts.GetFeedback(r.Context(), middleware.GetCaller(r),
		chi.URLParam(r, "id"), r.URL.Query().Get("field_path"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteSuccess(w, FeedbackDraftResponse{
		EventID:   d.EventID,
		FieldPath: d.FieldPath,
		Reason:    d.Reason,
		Message:   d.Message,
		UpdatedAt: d.UpdatedAt,
	}, nil)
}

// ClearFeedbackDraft handles DELETE /api/v1/events/{id}/feedback-draft.
func (h *Handler) ClearFeedbackDraft(w http.ResponseWriter, r *http.Request) {
	err := h.drafts.ClearFeedback(r.Context(), middleware.GetCaller(r),
		chi.URLParam(r, "id"), r.URL.Query().Get("field_path"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

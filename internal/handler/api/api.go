// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides REST API handlers for the event desk.
package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/htwlabs/eventdesk/internal/apperr"
	"github.com/htwlabs/eventdesk/internal/audit"
	"github.com/htwlabs/eventdesk/internal/conflict"
	"github.com/htwlabs/eventdesk/internal/drafts"
	"github.com/htwlabs/eventdesk/internal/feedback"
	"github.com/htwlabs/eventdesk/internal/lifecycle"
	"github.com/htwlabs/eventdesk/internal/notify"
	"github.com/htwlabs/eventdesk/internal/store"
)

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	db        *sql.DB
	queries   *store.Queries
	events    *lifecycle.Service
	feedback  *feedback.Service
	conflicts *conflict.Detector
	drafts    *drafts.Service
	notify    *notify.Service
	audit     *audit.Reader
}

// NewHandler creates a new API handler.
func NewHandler(db *sql.DB, cfg lifecycle.Config) *Handler {
	return &Handler{
		db:        db,
		queries:   store.New(db),
		events:    lifecycle.NewService(db, cfg),
		feedback:  feedback.NewService(db),
		conflicts: conflict.NewDetector(db),
		drafts:    drafts.NewService(db),
		notify:    notify.NewService(db),
		audit:     audit.NewReader(db),
	}
}

// Response is the standard API response wrapper.
type Response struct {
	Data any   `json:"data,omitempty"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta contains counts and other metadata.
type Meta struct {
	Total int64 `json:"total,omitempty"`
}

// ErrorResponse is the standard API error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data any, meta *Meta) {
	WriteJSON(w, http.StatusOK, Response{Data: data, Meta: meta})
}

// WriteCreated writes a 201 Created JSON response.
func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Response{Data: data})
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, code, message string, details []string) {
	WriteJSON(w, statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, "bad_request", message, nil)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, "internal_error", message, nil)
}

// writeDomainError maps a service error onto the wire. Every handler funnels
// failures through here so the status mapping stays in one place.
func writeDomainError(w http.ResponseWriter, err error) {
	if verr, ok := apperr.IsValidation(err); ok {
		WriteError(w, http.StatusUnprocessableEntity, "validation_failed", "Validation failed", verr.Fields)
		return
	}
	switch {
	case errors.Is(err, apperr.ErrUnauthenticated):
		WriteError(w, http.StatusUnauthorized, "unauthenticated", "Authentication required", nil)
	case errors.Is(err, apperr.ErrUnauthorized):
		WriteError(w, http.StatusForbidden, "unauthorized", "Not allowed", nil)
	case errors.Is(err, apperr.ErrNotFound):
		WriteError(w, http.StatusNotFound, "not_found", "Resource not found", nil)
	case errors.Is(err, apperr.ErrInvalidState):
		WriteError(w, http.StatusConflict, "invalid_state", err.Error(), nil)
	case errors.Is(err, apperr.ErrPreconditionFailed):
		WriteError(w, http.StatusPreconditionFailed, "precondition_failed", err.Error(), nil)
	default:
		WriteInternalError(w, "Internal server error")
	}
}

// decodeBody decodes a JSON request body into dst. Returns false with a 400
// already written when the body is malformed.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteBadRequest(w, "Invalid JSON body")
		return false
	}
	return true
}

// StatusResponse contains API status information.
type StatusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Status returns the API status.
func (h *Handler) Status(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, StatusResponse{Status: "ok", Version: "v1"}, nil)
}

// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/htwlabs/eventdesk/internal/middleware"
	"github.com/htwlabs/eventdesk/internal/model"
)

// AuditEntryResponse represents one audit log entry.
type AuditEntryResponse struct {
	ID        string              `json:"id"`
	EventID   string              `json:"event_id"`
	ActorID   string              `json:"actor_id"`
	ActorName string              `json:"actor_name,omitempty"`
	Action    string              `json:"action"`
	FromValue string              `json:"from_value,omitempty"`
	ToValue   string              `json:"to_value,omitempty"`
	Meta      model.AuditMetadata `json:"meta,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
}

// ListAudit handles GET /api/v1/events/{id}/audit.
func (h *Handler) ListAudit(w http.ResponseWriter, r *http.Request) {
	entries, err := h.audit.ListByEvent(r.Context(), middleware.GetCaller(r), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, AuditEntryResponse{
			ID:        e.ID,
			EventID:   e.EventID,
			ActorID:   e.ActorID,
			ActorName: e.ActorName,
			Action:    e.Action,
			FromValue: e.FromValue,
			ToValue:   e.ToValue,
			Meta:      e.Meta,
			CreatedAt: e.CreatedAt,
		})
	}
	WriteSuccess(w, out, &Meta{Total: int64(len(out))})
}

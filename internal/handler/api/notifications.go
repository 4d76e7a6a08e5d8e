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

// NotificationResponse represents a notification in API responses.
type NotificationResponse struct {
	ID        string     `json:"id"`
	Type      string     `json:"type"`
	EventID   string     `json:"event_id,omitempty"`
	Message   string     `json:"message"`
	CreatedAt time.Time  `json:"created_at"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
}

func notificationToResponse(n model.Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		EventID:   n.EventID,
		Message:   n.Message,
		CreatedAt: n.CreatedAt,
	}
	if n.ReadAt.Valid {
		resp.ReadAt = &n.ReadAt.Time
	}
	return resp
}

// ListNotifications handles GET /api/v1/notifications.
func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.notify.ListForUser(r.Context(), middleware.GetCaller(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, notificationToResponse(n))
	}
	WriteSuccess(w, out, &Meta{Total: int64(len(out))})
}

// MarkNotificationRead handles POST /api/v1/notifications/{id}/read.
func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	n, err := h.notify.MarkRead(r.Context(), middleware.GetCaller(r), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteSuccess(w, notificationToResponse(n), nil)
}

// UnreadCountResponse contains the unread notification count.
type UnreadCountResponse struct {
	Unread int64 `json:"unread"`
}

// UnreadNotificationCount handles GET /api/v1/notifications/unread-count.
func (h *Handler) UnreadNotificationCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.notify.UnreadCount(r.Context(), middleware.GetCaller(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteSuccess(w, UnreadCountResponse{Unread: count}, nil)
}

// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/htwlabs/eventdesk/internal/feedback"
	"github.com/htwlabs/eventdesk/internal/middleware"
	"github.com/htwlabs/eventdesk/internal/model"
)

// ThreadResponse represents a feedback thread with its comments.
type ThreadResponse struct {
	ID           string            `json:"id"`
	EventID      string            `json:"event_id"`
	FieldPath    string            `json:"field_path"`
	OpenedBy     string            `json:"opened_by"`
	Status       string            `json:"status"`
	Reason       string            `json:"reason,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	ResolvedAt   *time.Time        `json:"resolved_at,omitempty"`
	LastActivity time.Time         `json:"last_activity"`
	Comments     []CommentResponse `json:"comments"`
}

// CommentResponse represents one comment in a thread.
type CommentResponse struct {
	ID         string    `json:"id"`
	ThreadID   string    `json:"thread_id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

func threadModelToResponse(t model.FeedbackThread) ThreadResponse {
	resp := ThreadResponse{
		ID:        t.ID,
		EventID:   t.EventID,
		FieldPath: t.FieldPath,
		OpenedBy:  t.OpenedBy,
		Status:    t.Status,
		Reason:    t.Reason,
		CreatedAt: t.CreatedAt,
		Comments:  []CommentResponse{},
	}
	if t.ResolvedAt.Valid {
		resp.ResolvedAt = &t.ResolvedAt.Time
	}
	return resp
}

func threadToResponse(t feedback.Thread) ThreadResponse {
	resp := threadModelToResponse(t.FeedbackThread)
	resp.LastActivity = t.LastActivity
	for _, c := range t.Comments {
		resp.Comments = append(resp.Comments, CommentResponse{
			ID:         c.ID,
			ThreadID:   c.ThreadID,
			AuthorID:   c.AuthorID,
			AuthorName: c.AuthorName,
			Message:    c.Message,
			CreatedAt:  c.CreatedAt,
		})
	}
	return resp
}

// OpenThreadRequest represents the request body for opening a feedback
// thread on an event field.
type OpenThreadRequest struct {
	FieldPath string `json:"field_path,omitempty"`
	Reason    string `json:"reason,omitempty"`
	Message   string `json:"message"`
}

// OpenThread handles POST /api/v1/events/{id}/feedback.
func (h *Handler) OpenThread(w http.ResponseWriter, r *http.Request) {
	var req OpenThreadRequest
	if !decodeBody(w, r, &req) {
		return
	}

	thread, err := h.feedback.OpenThread(r.Context(), middleware.GetCaller(r),
		chi.URLParam(r, "id"), req.FieldPath, req.Reason, req.Message)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteCreated(w, threadModelToResponse(thread))
}

// ListThreads handles GET /api/v1/events/{id}/feedback.
func (h *Handler) ListThreads(w http.ResponseWriter, r *http.Request) {
	threads, err := h.feedback.ListThreads(r.Context(), middleware.GetCaller(r), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]ThreadResponse, 0, len(threads))
	for _, t := range threads {
		out = append(out, threadToResponse(t))
	}
	WriteSuccess(w, out, &Meta{Total: int64(len(out))})
}

// AddCommentRequest represents the request body for commenting on a thread.
type AddCommentRequest struct {
	Message string `json:"message"`
}

// AddComment handles POST /api/v1/feedback/{threadID}/comments.
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	var req AddCommentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	comment, err := h.feedback.AddComment(r.Context(), middleware.GetCaller(r),
		chi.URLParam(r, "threadID"), req.Message)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteCreated(w, CommentResponse{
		ID:        comment.ID,
		ThreadID:  comment.ThreadID,
		AuthorID:  comment.AuthorID,
		Message:   comment.Message,
		CreatedAt: comment.CreatedAt,
	})
}

// ResolveThread handles POST /api/v1/feedback/{threadID}/resolve.
func (h *Handler) ResolveThread(w http.ResponseWriter, r *http.Request) {
	thread, err := h.feedback.ResolveThread(r.Context(), middleware.GetCaller(r), chi.URLParam(r, "threadID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteSuccess(w, threadModelToResponse(thread), nil)
}

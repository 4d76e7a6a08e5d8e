// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/htwlabs/eventdesk/internal/lifecycle"
	"github.com/htwlabs/eventdesk/internal/middleware"
	"github.com/htwlabs/eventdesk/internal/model"
)

// EventResponse represents an event in API responses.
type EventResponse struct {
	ID                  string                `json:"id"`
	HostID              string                `json:"host_id"`
	Status              string                `json:"status"`
	Title               string                `json:"title"`
	ShortDescription    string                `json:"short_description"`
	EventDate           *time.Time            `json:"event_date,omitempty"`
	Venue               string                `json:"venue,omitempty"`
	Capacity            int64                 `json:"capacity"`
	Formats             []string              `json:"formats"`
	IsPublic            bool                  `json:"is_public"`
	HasHostedBefore     bool                  `json:"has_hosted_before"`
	TargetAudience      string                `json:"target_audience,omitempty"`
	PlanningDocURL      string                `json:"planning_doc_url,omitempty"`
	LumaURL             string                `json:"luma_url,omitempty"`
	OnCalendar          bool                  `json:"on_calendar"`
	ChecklistTemplate   string                `json:"checklist_template,omitempty"`
	Checklist           []model.ChecklistItem `json:"checklist,omitempty"`
	AgreementAcceptedAt *time.Time            `json:"agreement_accepted_at,omitempty"`
	SubmittedAt         *time.Time            `json:"submitted_at,omitempty"`
	ApprovedAt          *time.Time            `json:"approved_at,omitempty"`
	CreatedAt           time.Time             `json:"created_at"`
	UpdatedAt           time.Time             `json:"updated_at"`
}

// eventToResponse converts a model.Event to EventResponse.
func eventToResponse(e model.Event) EventResponse {
	resp := EventResponse{
		ID:                e.ID,
		HostID:            e.HostID,
		Status:            e.Status,
		Title:             e.Title,
		ShortDescription:  e.ShortDescription,
		Venue:             e.Venue,
		Capacity:          e.Capacity,
		Formats:           e.Formats,
		IsPublic:          e.IsPublic,
		HasHostedBefore:   e.HasHostedBefore,
		TargetAudience:    e.TargetAudience,
		PlanningDocURL:    e.PlanningDocURL,
		LumaURL:           e.LumaURL,
		OnCalendar:        e.OnCalendar,
		ChecklistTemplate: e.ChecklistTemplate,
		Checklist:         e.Checklist,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
	if e.EventDate.Valid {
		resp.EventDate = &e.EventDate.Time
	}
	if e.AgreementAcceptedAt.Valid {
		resp.AgreementAcceptedAt = &e.AgreementAcceptedAt.Time
	}
	if e.SubmittedAt.Valid {
		resp.SubmittedAt = &e.SubmittedAt.Time
	}
	if e.ApprovedAt.Valid {
		resp.ApprovedAt = &e.ApprovedAt.Time
	}
	return resp
}

func eventsToResponse(events []model.Event) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, eventToResponse(e))
	}
	return out
}

// CreateEventRequest represents the request body for creating an event draft.
type CreateEventRequest struct {
	Title            string `json:"title"`
	ShortDescription string `json:"short_description"`
}

// UpdateEventRequest represents the request body for patching event content.
// Absent fields are left untouched.
type UpdateEventRequest struct {
	Title               *string  `json:"title,omitempty"`
	ShortDescription    *string  `json:"short_description,omitempty"`
	EventDate           *string  `json:"event_date,omitempty"`
	Venue               *string  `json:"venue,omitempty"`
	Capacity            *int64   `json:"capacity,omitempty"`
	Formats             []string `json:"formats,omitempty"`
	IsPublic            *bool    `json:"is_public,omitempty"`
	HasHostedBefore     *bool    `json:"has_hosted_before,omitempty"`
	TargetAudience      *string  `json:"target_audience,omitempty"`
	PlanningDocURL      *string  `json:"planning_doc_url,omitempty"`
	AgreementAcceptedAt *string  `json:"agreement_accepted_at,omitempty"`
}

// toPatch converts the request to a lifecycle patch. Returns false with a 400
// written when a timestamp field fails to parse.
func (req UpdateEventRequest) toPatch(w http.ResponseWriter) (lifecycle.EventPatch, bool) {
	patch := lifecycle.EventPatch{
		Title:            req.Title,
		ShortDescription: req.ShortDescription,
		Venue:            req.Venue,
		Capacity:         req.Capacity,
		Formats:          req.Formats,
		IsPublic:         req.IsPublic,
		HasHostedBefore:  req.HasHostedBefore,
		TargetAudience:   req.TargetAudience,
		PlanningDocURL:   req.PlanningDocURL,
	}
	if req.EventDate != nil {
		t, err := time.Parse(time.RFC3339, *req.EventDate)
		if err != nil {
			WriteBadRequest(w, "Invalid event_date: must be RFC 3339")
			return lifecycle.EventPatch{}, false
		}
		patch.EventDate = &t
	}
	if req.AgreementAcceptedAt != nil {
		t, err := time.Parse(time.RFC3339, *req.AgreementAcceptedAt)
		if err != nil {
			WriteBadRequest(w, "Invalid agreement_accepted_at: must be RFC 3339")
			return lifecycle.EventPatch{}, false
		}
		patch.AgreementAcceptedAt = &t
	}
	return patch, true
}

// CreateEvent handles POST /api/v1/events.
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !decodeBody(w, r, &req) {
		return
	}

	event, err := h.events.Create(r.Context(), middleware.GetCaller(r), req.Title, req.ShortDescription)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteCreated(w, eventToResponse(event))
}

// ListEvents handles GET /api/v1/events. Hosts get their own events; admins
// may filter the full set with ?status=.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	caller := middleware.GetCaller(r)

	var (
		events []model.Event
		err    error
	)
	if status := r.URL.Query().Get("status"); status != "" {
		events, err = h.events.ListByStatus(r.Context(), caller, status)
	} else {
		events, err = h.events.ListMine(r.Context(), caller)
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteSuccess(w, eventsToResponse(events), &Meta{Total: int64(len(events))})
}

// GetEvent handles GET /api/v1/events/{id}.
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.events.Get(r.Context(), middleware.GetCaller(r), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteSuccess(w, eventToResponse(event), nil)
}

// UpdateEvent handles PATCH /api/v1/events/{id}.
func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req UpdateEventRequest
	if !decodeBody(w, r, &req) {
		return
	}
	patch, ok := req.toPatch(w)
	if !ok {
		return
	}

	event, err := h.events.Update(r.Context(), middleware.GetCaller(r), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteSuccess(w, eventToResponse(event), nil)
}

// DeleteEvent handles DELETE /api/v1/events/{id}.
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.events.Delete(r.Context(), middleware.GetCaller(r), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SubmitEvent handles POST /api/v1/events/{id}/submit.
func (h *Handler) SubmitEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.events.Submit(r.Context(), middleware.GetCaller(r), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteSuccess(w, eventToResponse(event), nil)
}

// SetRegistrationURLRequest represents the request body for setting the
// registration URL on an approved event.
type SetRegistrationURLRequest struct {
	URL string `json:"url"`
}

// SetRegistrationURL handles PUT /api/v1/events/{id}/registration-url.
func (h *Handler) SetRegistrationURL(w http.ResponseWriter, r *http.Request) {
	var req SetRegistrationURLRequest
	if !decodeBody(w, r, &req) {
		return
	}

	event, err := h.events.SetRegistrationURL(r.Context(), middleware.GetCaller(r), chi.URLParam(r, "id"), req.URL)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteSuccess(w, eventToResponse(event), nil)
}

// ToggleChecklistItemRequest represents the request body for marking a
// checklist item complete or incomplete.
type ToggleChecklistItemRequest struct {
	Completed bool `json:"completed"`
}

// ToggleChecklistItem handles PUT /api/v1/events/{id}/checklist/{itemID}.
func (h *Handler) ToggleChecklistItem(w http.ResponseWriter, r *http.Request) {
	var req ToggleChecklistItemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	event, err := h.events.ToggleChecklistItem(r.Context(), middleware.GetCaller(r),
		chi.URLParam(r, "id"), chi.URLParam(r, "itemID"), req.Completed)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteSuccess(w, eventToResponse(event), nil)
}

// EventStats handles GET /api/v1/events/stats.
func (h *Handler) EventStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.events.Stats(r.Context(), middleware.GetCaller(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteSuccess(w, stats, nil)
}

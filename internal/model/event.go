// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Event statuses. These six values form a closed enum; no operation may set
// anything else, including the admin force path.
const (
	StatusDraft            = "draft"
	StatusSubmitted        = "submitted"
	StatusChangesRequested = "changes_requested"
	StatusResubmitted      = "resubmitted"
	StatusApproved         = "approved"
	StatusPublished        = "published"
)

// AllEventStatuses returns the closed set of event statuses.
func AllEventStatuses() []string {
	return []string{
		StatusDraft,
		StatusSubmitted,
		StatusChangesRequested,
		StatusResubmitted,
		StatusApproved,
		StatusPublished,
	}
}

// IsValidStatus reports whether s is one of the six defined statuses.
func IsValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusChangesRequested,
		StatusResubmitted, StatusApproved, StatusPublished:
		return true
	}
	return false
}

// Content bounds enforced at submit time only; hosts can save incomplete
// drafts freely.
const (
	MaxFormats        = 3
	MinDescriptionLen = 50
)

// Default capacity assigned to new drafts.
const DefaultCapacity = 50

// Checklist sections
const (
	SectionPlanning  = "planning"
	SectionMarketing = "marketing"
	SectionLogistics = "logistics"
)

// ChecklistItem is one task in an event's post-approval checklist. Structure
// is fixed once generated; only Completed changes thereafter.
type ChecklistItem struct {
	ID        string     `json:"id"`
	Task      string     `json:"task"`
	Completed bool       `json:"completed"`
	Section   string     `json:"section"`
	DueDate   *time.Time `json:"due_date,omitempty"`
}

// Event represents one event proposal.
type Event struct {
	ID               string          `json:"id"`
	HostID           string          `json:"host_id"`
	Status           string          `json:"status"`
	Title            string          `json:"title"`
	ShortDescription string          `json:"short_description"`
	EventDate        sql.NullTime    `json:"event_date,omitempty"`
	Venue            string          `json:"venue"`
	Capacity         int64           `json:"capacity"`
	Formats          []string        `json:"formats"`
	IsPublic         bool            `json:"is_public"`
	HasHostedBefore  bool            `json:"has_hosted_before"`
	TargetAudience   string          `json:"target_audience"`
	PlanningDocURL   string          `json:"planning_doc_url,omitempty"`
	LumaURL          string          `json:"luma_url,omitempty"`
	OnCalendar       bool            `json:"on_calendar"`

	ChecklistTemplate string          `json:"checklist_template"`
	Checklist         []ChecklistItem `json:"checklist"`

	AgreementAcceptedAt sql.NullTime `json:"agreement_accepted_at,omitempty"`
	SubmittedAt         sql.NullTime `json:"submitted_at,omitempty"`
	ApprovedAt          sql.NullTime `json:"approved_at,omitempty"`
	CreatedAt           time.Time    `json:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at"`
}

// IsEditable returns true while the host may still modify content fields.
func (e *Event) IsEditable() bool {
	return e.Status == StatusDraft || e.Status == StatusChangesRequested
}

// IsUnderReview returns true while the event sits in an admin review queue.
func (e *Event) IsUnderReview() bool {
	return e.Status == StatusSubmitted || e.Status == StatusResubmitted
}

// EventStats holds per-host dashboard counts. Submitted and resubmitted
// events share the "under review" bucket.
type EventStats struct {
	Total     int64 `json:"total"`
	Draft     int64 `json:"draft"`
	Submitted int64 `json:"submitted"`
	Approved  int64 `json:"approved"`
	Published int64 `json:"published"`
}

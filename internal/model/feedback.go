// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Feedback thread statuses
const (
	ThreadStatusOpen     = "open"
	ThreadStatusResolved = "resolved"
)

// FieldPathGeneral anchors a thread to the event as a whole rather than to a
// single field, used for general request-changes feedback.
const FieldPathGeneral = "_general"

// FeedbackThread is one conversation anchored to a single field of one event.
type FeedbackThread struct {
	ID         string       `json:"id"`
	EventID    string       `json:"event_id"`
	FieldPath  string       `json:"field_path"`
	OpenedBy   string       `json:"opened_by"`
	Status     string       `json:"status"`
	Reason     string       `json:"reason,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
	ResolvedAt sql.NullTime `json:"resolved_at,omitempty"`
}

// IsOpen returns true if the thread has not been resolved.
func (t *FeedbackThread) IsOpen() bool {
	return t.Status == ThreadStatusOpen
}

// FeedbackComment is one message within a thread. Immutable once created.
type FeedbackComment struct {
	ID        string    `json:"id"`
	ThreadID  string    `json:"thread_id"`
	AuthorID  string    `json:"author_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

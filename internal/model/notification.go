// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Notification types
const (
	NotificationChangesRequested = "changes_requested"
	NotificationEventApproved    = "event_approved"
	NotificationEventPublished   = "event_published"
	NotificationEventSubmitted   = "event_submitted"
	NotificationStatusChanged    = "status_changed"
	NotificationFeedback         = "feedback"
)

// Notification is one message delivered to a user as a side effect of a
// lifecycle or feedback action. Delivery is the collaborator's concern; the
// core only writes the record.
type Notification struct {
	ID        string       `json:"id"`
	UserID    string       `json:"user_id"`
	Type      string       `json:"type"`
	EventID   string       `json:"event_id,omitempty"`
	Message   string       `json:"message"`
	CreatedAt time.Time    `json:"created_at"`
	ReadAt    sql.NullTime `json:"read_at,omitempty"`
}

// IsRead returns true once the recipient has marked the notification read.
func (n *Notification) IsRead() bool {
	return n.ReadAt.Valid
}

// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"encoding/json"
	"time"
)

// Audit actions. StatusForced is deliberately distinct from StatusChanged so
// the unconditional admin path stays visible in the log.
const (
	ActionEventCreated         = "event_created"
	ActionEventDeleted         = "event_deleted"
	ActionEventSubmitted       = "event_submitted"
	ActionStatusChanged        = "status_changed"
	ActionStatusForced         = "status_forced"
	ActionAdminFieldEdit       = "admin_field_edit"
	ActionURLSet               = "url_set"
	ActionChecklistToggled     = "checklist_toggled"
	ActionChecklistRegenerated = "checklist_regenerated"
	ActionFeedbackAdded        = "feedback_added"
	ActionFeedbackCommented    = "feedback_commented"
	ActionFeedbackResolved     = "feedback_resolved"
)

// AuditMetadata holds the free-form context attached to an audit entry.
type AuditMetadata struct {
	Reason    string   `json:"reason,omitempty"`
	FieldPath string   `json:"field_path,omitempty"`
	Fields    []string `json:"fields,omitempty"`
}

// AuditEntry is one append-only fact about one action taken against one
// event. Entries are never edited or deleted.
type AuditEntry struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	ActorID   string    `json:"actor_id"`
	Action    string    `json:"action"`
	FromValue string    `json:"from_value,omitempty"`
	ToValue   string    `json:"to_value,omitempty"`
	Metadata  string    `json:"-"` // JSON string as stored
	CreatedAt time.Time `json:"created_at"`
}

// DecodeMetadata parses the stored metadata JSON. Returns the zero value on
// empty or malformed input so display code never fails on old rows.
func (e *AuditEntry) DecodeMetadata() AuditMetadata {
	var m AuditMetadata
	if e.Metadata == "" {
		return m
	}
	_ = json.Unmarshal([]byte(e.Metadata), &m)
	return m
}

// EncodeAuditMetadata serializes metadata for storage. Empty metadata
// serializes to the empty string.
func EncodeAuditMetadata(m AuditMetadata) string {
	if m.Reason == "" && m.FieldPath == "" && len(m.Fields) == 0 {
		return ""
	}
	b, err := json.Marshal(m)
	if err != nil {
		return ""
	}
	return string(b)
}

// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// FormDraft caches unsent form input keyed by (user, context key). Plain
// upsert-by-key; not part of the lifecycle invariants.
type FormDraft struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Key       string    `json:"key"`
	Data      string    `json:"data"` // JSON string
	UpdatedAt time.Time `json:"updated_at"`
}

// FeedbackDraft caches an admin's unsent feedback for one event field,
// keyed by (event, field path, author).
type FeedbackDraft struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	FieldPath string    `json:"field_path"`
	AuthorID  string    `json:"author_id"`
	Reason    string    `json:"reason,omitempty"`
	Message   string    `json:"message"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/htwlabs/eventdesk/internal/model"
)

// CreateAuditEntryParams holds the fields for CreateAuditEntry.
type CreateAuditEntryParams struct {
	ID        string
	EventID   string
	ActorID   string
	Action    string
	FromValue string
	ToValue   string
	Metadata  string
	CreatedAt time.Time
}

// CreateAuditEntry appends one entry to the audit log. There is no update or
// delete path; the log is write-once by construction.
func (q *Queries) CreateAuditEntry(ctx context.Context, arg CreateAuditEntryParams) error {
	const query = `INSERT INTO audit_log (id, event_id, actor_id, action, from_value, to_value, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := q.db.ExecContext(ctx, query,
		arg.ID, arg.EventID, arg.ActorID, arg.Action,
		arg.FromValue, arg.ToValue, arg.Metadata, arg.CreatedAt)
	return err
}

// ListAuditEntriesByEvent returns an event's audit trail, newest first.
// Timestamp ties break by insertion order.
func (q *Queries) ListAuditEntriesByEvent(ctx context.Context, eventID string) ([]model.AuditEntry, error) {
	const query = `SELECT id, event_id, actor_id, action, from_value, to_value, metadata, created_at
		FROM audit_log WHERE event_id = ? ORDER BY created_at DESC, rowid DESC`
	rows, err := q.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.AuditEntry
	for rows.Next() {
		var e model.AuditEntry
		if err := rows.Scan(&e.ID, &e.EventID, &e.ActorID, &e.Action,
			&e.FromValue, &e.ToValue, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

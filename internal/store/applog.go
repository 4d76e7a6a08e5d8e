// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/htwlabs/eventdesk/internal/model"
)

// CreateAppLogEntryParams holds the fields for CreateAppLogEntry.
type CreateAppLogEntryParams struct {
	Level     string
	Message   string
	Attrs     string
	CreatedAt time.Time
}

// CreateAppLogEntry inserts one application log record.
func (q *Queries) CreateAppLogEntry(ctx context.Context, arg CreateAppLogEntryParams) error {
	const query = `INSERT INTO app_log (level, message, attrs, created_at) VALUES (?, ?, ?, ?)`
	_, err := q.db.ExecContext(ctx, query, arg.Level, arg.Message, arg.Attrs, arg.CreatedAt)
	return err
}

// ListAppLogEntries returns the most recent log records up to limit.
func (q *Queries) ListAppLogEntries(ctx context.Context, limit int64) ([]model.AppLogEntry, error) {
	const query = `SELECT id, level, message, attrs, created_at
		FROM app_log ORDER BY created_at DESC, id DESC LIMIT ?`
	rows, err := q.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.AppLogEntry
	for rows.Next() {
		var e model.AppLogEntry
		if err := rows.Scan(&e.ID, &e.Level, &e.Message, &e.Attrs, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// DeleteOldAppLogEntries removes records older than the cutoff.
func (q *Queries) DeleteOldAppLogEntries(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM app_log WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

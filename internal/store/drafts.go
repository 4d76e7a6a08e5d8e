// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/htwlabs/eventdesk/internal/model"
)

// UpsertFormDraftParams holds the fields for UpsertFormDraft.
type UpsertFormDraftParams struct {
	ID        string
	UserID    string
	Key       string
	Data      string
	UpdatedAt time.Time
}

// UpsertFormDraft inserts or replaces the draft for (user, key). The id is
// only used on first insert; an existing row keeps its id.
func (q *Queries) UpsertFormDraft(ctx context.Context, arg UpsertFormDraftParams) (model.FormDraft, error) {
	const query = `INSERT INTO form_drafts (id, user_id, key, data, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
		RETURNING id, user_id, key, data, updated_at`
	var d model.FormDraft
	err := q.db.QueryRowContext(ctx, query,
		arg.ID, arg.UserID, arg.Key, arg.Data, arg.UpdatedAt,
	).Scan(&d.ID, &d.UserID, &d.Key, &d.Data, &d.UpdatedAt)
	return d, err
}

// GetFormDraft fetches the draft for (user, key).
func (q *Queries) GetFormDraft(ctx context.Context, userID, key string) (model.FormDraft, error) {
	const query = `SELECT id, user_id, key, data, updated_at
		FROM form_drafts WHERE user_id = ? AND key = ?`
	var d model.FormDraft
	err := q.db.QueryRowContext(ctx, query, userID, key).
		Scan(&d.ID, &d.UserID, &d.Key, &d.Data, &d.UpdatedAt)
	return d, err
}

// DeleteFormDraft removes the draft for (user, key), if any.
func (q *Queries) DeleteFormDraft(ctx context.Context, userID, key string) error {
	_, err := q.db.ExecContext(ctx,
		`DELETE FROM form_drafts WHERE user_id = ? AND key = ?`, userID, key)
	return err
}

// DeleteStaleFormDrafts removes drafts untouched since the cutoff.
func (q *Queries) DeleteStaleFormDrafts(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`DELETE FROM form_drafts WHERE updated_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// UpsertFeedbackDraftParams holds the fields for UpsertFeedbackDraft.
type UpsertFeedbackDraftParams struct {
	ID        string
	EventID   string
	FieldPath string
	AuthorID  string
	Reason    string
	Message   string
	UpdatedAt time.Time
}

// UpsertFeedbackDraft inserts or replaces the draft for (event, field, author).
func (q *Queries) UpsertFeedbackDraft(ctx context.Context, arg UpsertFeedbackDraftParams) (model.FeedbackDraft, error) {
	const query = `INSERT INTO feedback_drafts (id, event_id, field_path, author_id, reason, message, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (event_id, field_path, author_id) DO UPDATE SET
			reason = excluded.reason, message = excluded.message, updated_at = excluded.updated_at
		RETURNING id, event_id, field_path, author_id, reason, message, updated_at`
	var d model.FeedbackDraft
	err := q.db.QueryRowContext(ctx, query,
		arg.ID, arg.EventID, arg.FieldPath, arg.AuthorID, arg.Reason, arg.Message, arg.UpdatedAt,
	).Scan(&d.ID, &d.EventID, &d.FieldPath, &d.AuthorID, &d.Reason, &d.Message, &d.UpdatedAt)
	return d, err
}

// GetFeedbackDraft fetches the draft for (event, field, author).
func (q *Queries) GetFeedbackDraft(ctx context.Context, eventID, fieldPath, authorID string) (model.FeedbackDraft, error) {
	const query = `SELECT id, event_id, field_path, author_id, reason, message, updated_at
		FROM feedback_drafts WHERE event_id = ? AND field_path = ? AND author_id = ?`
	var d model.FeedbackDraft
	err := q.db.QueryRowContext(ctx, query, eventID, fieldPath, authorID).
		Scan(&d.ID, &d.EventID, &d.FieldPath, &d.AuthorID, &d.Reason, &d.Message, &d.UpdatedAt)
	return d, err
}

// DeleteFeedbackDraft removes the draft for (event, field, author), if any.
func (q *Queries) DeleteFeedbackDraft(ctx context.Context, eventID, fieldPath, authorID string) error {
	_, err := q.db.ExecContext(ctx,
		`DELETE FROM feedback_drafts WHERE event_id = ? AND field_path = ? AND author_id = ?`,
		eventID, fieldPath, authorID)
	return err
}

// DeleteStaleFeedbackDrafts removes drafts untouched since the cutoff.
func (q *Queries) DeleteStaleFeedbackDrafts(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`DELETE FROM feedback_drafts WHERE updated_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/htwlabs/eventdesk/internal/model"
)

const threadColumns = `id, event_id, field_path, opened_by, status, reason, created_at, resolved_at`

func scanThread(row interface{ Scan(...any) error }) (model.FeedbackThread, error) {
	var t model.FeedbackThread
	err := row.Scan(
		&t.ID, &t.EventID, &t.FieldPath, &t.OpenedBy, &t.Status, &t.Reason,
		&t.CreatedAt, &t.ResolvedAt,
	)
	return t, err
}

// CreateFeedbackThreadParams holds the fields for CreateFeedbackThread.
type CreateFeedbackThreadParams struct {
	ID        string
	EventID   string
	FieldPath string
	OpenedBy  string
	Reason    string
	CreatedAt time.Time
}

// CreateFeedbackThread inserts a new open thread.
func (q *Queries) CreateFeedbackThread(ctx context.Context, arg CreateFeedbackThreadParams) (model.FeedbackThread, error) {
	const query = `INSERT INTO feedback_threads (id, event_id, field_path, opened_by, status, reason, created_at)
		VALUES (?, ?, ?, ?, 'open', ?, ?)
		RETURNING ` + threadColumns
	row := q.db.QueryRowContext(ctx, query,
		arg.ID, arg.EventID, arg.FieldPath, arg.OpenedBy, arg.Reason, arg.CreatedAt)
	return scanThread(row)
}

// GetFeedbackThread fetches one thread by id.
func (q *Queries) GetFeedbackThread(ctx context.Context, id string) (model.FeedbackThread, error) {
	const query = `SELECT ` + threadColumns + ` FROM feedback_threads WHERE id = ?`
	return scanThread(q.db.QueryRowContext(ctx, query, id))
}

// ListFeedbackThreadsByEvent returns all threads for one event, oldest first.
func (q *Queries) ListFeedbackThreadsByEvent(ctx context.Context, eventID string) ([]model.FeedbackThread, error) {
	const query = `SELECT ` + threadColumns + ` FROM feedback_threads
		WHERE event_id = ? ORDER BY created_at`
	rows, err := q.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var threads []model.FeedbackThread
	for rows.Next() {
		t, err := scanThread(rows)
		if err != nil {
			return nil, err
		}
		threads = append(threads, t)
	}
	return threads, rows.Err()
}

// ResolveFeedbackThread marks a thread resolved and stamps the time.
func (q *Queries) ResolveFeedbackThread(ctx context.Context, id string, at time.Time) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE feedback_threads SET status = 'resolved', resolved_at = ? WHERE id = ?`, at, id)
	return err
}

// CountOpenThreadsByEvent counts unresolved threads for one event.
func (q *Queries) CountOpenThreadsByEvent(ctx context.Context, eventID string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM feedback_threads WHERE event_id = ? AND status = 'open'`,
		eventID).Scan(&n)
	return n, err
}

// CreateFeedbackCommentParams holds the fields for CreateFeedbackComment.
type CreateFeedbackCommentParams struct {
	ID        string
	ThreadID  string
	AuthorID  string
	Message   string
	CreatedAt time.Time
}

// CreateFeedbackComment appends one immutable comment to a thread.
func (q *Queries) CreateFeedbackComment(ctx context.Context, arg CreateFeedbackCommentParams) (model.FeedbackComment, error) {
	const query = `INSERT INTO feedback_comments (id, thread_id, author_id, message, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, thread_id, author_id, message, created_at`
	var c model.FeedbackComment
	err := q.db.QueryRowContext(ctx, query,
		arg.ID, arg.ThreadID, arg.AuthorID, arg.Message, arg.CreatedAt,
	).Scan(&c.ID, &c.ThreadID, &c.AuthorID, &c.Message, &c.CreatedAt)
	return c, err
}

// ListFeedbackCommentsByThread returns a thread's comments, oldest first.
func (q *Queries) ListFeedbackCommentsByThread(ctx context.Context, threadID string) ([]model.FeedbackComment, error) {
	const query = `SELECT id, thread_id, author_id, message, created_at
		FROM feedback_comments WHERE thread_id = ? ORDER BY created_at, rowid`
	rows, err := q.db.QueryContext(ctx, query, threadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []model.FeedbackComment
	for rows.Next() {
		var c model.FeedbackComment
		if err := rows.Scan(&c.ID, &c.ThreadID, &c.AuthorID, &c.Message, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/htwlabs/eventdesk/internal/model"
)

const notificationColumns = `id, user_id, type, event_id, message, created_at, read_at`

func scanNotification(row interface{ Scan(...any) error }) (model.Notification, error) {
	var n model.Notification
	err := row.Scan(&n.ID, &n.UserID, &n.Type, &n.EventID, &n.Message, &n.CreatedAt, &n.ReadAt)
	return n, err
}

// CreateNotificationParams holds the fields for CreateNotification.
type CreateNotificationParams struct {
	ID        string
	UserID    string
	Type      string
	EventID   string
	Message   string
	CreatedAt time.Time
}

// CreateNotification inserts one notification record.
func (q *Queries) CreateNotification(ctx context.Context, arg CreateNotificationParams) (model.Notification, error) {
	const query = `INSERT INTO notifications (id, user_id, type, event_id, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING ` + notificationColumns
	row := q.db.QueryRowContext(ctx, query,
		arg.ID, arg.UserID, arg.Type, arg.EventID, arg.Message, arg.CreatedAt)
	return scanNotification(row)
}

// GetNotification fetches one notification by id.
func (q *Queries) GetNotification(ctx context.Context, id string) (model.Notification, error) {
	const query = `SELECT ` + notificationColumns + ` FROM notifications WHERE id = ?`
	return scanNotification(q.db.QueryRowContext(ctx, query, id))
}

// ListNotificationsByUser returns a user's notifications, newest first.
func (q *Queries) ListNotificationsByUser(ctx context.Context, userID string) ([]model.Notification, error) {
	const query = `SELECT ` + notificationColumns + ` FROM notifications
		WHERE user_id = ? ORDER BY created_at DESC, rowid DESC`
	rows, err := q.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

// MarkNotificationRead stamps the read time. Already-read notifications keep
// their original read time.
func (q *Queries) MarkNotificationRead(ctx context.Context, id string, at time.Time) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE notifications SET read_at = ? WHERE id = ? AND read_at IS NULL`, at, id)
	return err
}

// CountUnreadNotifications counts a user's unread notifications.
func (q *Queries) CountUnreadNotifications(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = ? AND read_at IS NULL`,
		userID).Scan(&n)
	return n, err
}

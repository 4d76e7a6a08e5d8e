// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

// Package notify delivers in-app notifications. Records are written by the
// lifecycle and feedback services inside their own transactions; this
// package owns the read side and the read-receipt.
package notify

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/htwlabs/eventdesk/internal/apperr"
	"github.com/htwlabs/eventdesk/internal/auth"
	"github.com/htwlabs/eventdesk/internal/model"
	"github.com/htwlabs/eventdesk/internal/store"
)

// Service reads and acknowledges notifications.
type Service struct {
	queries *store.Queries
}

// NewService creates a notification service.
func NewService(db *sql.DB) *Service {
	return &Service{queries: store.New(db)}
}

// ListForUser returns the caller's notifications, newest first.
func (s *Service) ListForUser(ctx context.Context, caller auth.Caller) ([]model.Notification, error) {
	if caller.IsZero() {
		return nil, apperr.ErrUnauthenticated
	}

	ns, err := s.queries.ListNotificationsByUser(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("listing notifications for user %s: %w", caller.UserID, err)
	}
	return ns, nil
}

// MarkRead stamps one notification as read. Only the recipient may do so;
// anyone else gets NotFound so notification ids do not leak across users.
// Marking an already-read notification keeps its original read time.
func (s *Service) MarkRead(ctx context.Context, caller auth.Caller, id string) (model.Notification, error) {
	if caller.IsZero() {
		return model.Notification{}, apperr.ErrUnauthenticated
	}

	n, err := s.queries.GetNotification(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Notification{}, fmt.Errorf("notification %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return model.Notification{}, fmt.Errorf("loading notification %s: %w", id, err)
	}
	if n.UserID != caller.UserID {
		return model.Notification{}, fmt.Errorf("notification %s: %w", id, apperr.ErrNotFound)
	}

	if !n.IsRead() {
		now := time.Now()
		if err := s.queries.MarkNotificationRead(ctx, id, now); err != nil {
			return model.Notification{}, fmt.Errorf("marking notification %s read: %w", id, err)
		}
		n.ReadAt = sql.NullTime{Time: now, Valid: true}
	}
	return n, nil
}

// UnreadCount returns the caller's unread badge count.
func (s *Service) UnreadCount(ctx context.Context, caller auth.Caller) (int64, error) {
	if caller.IsZero() {
		return 0, apperr.ErrUnauthenticated
	}

	n, err := s.queries.CountUnreadNotifications(ctx, caller.UserID)
	if err != nil {
		return 0, fmt.Errorf("counting unread notifications for user %s: %w", caller.UserID, err)
	}
	return n, nil
}

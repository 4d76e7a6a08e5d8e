// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

// Package feedback implements field-anchored review conversations between
// admins and hosts. A thread is pinned to one field of one event (or to the
// event as a whole) and accumulates immutable comments until an admin
// resolves it.
package feedback

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/htwlabs/eventdesk/internal/apperr"
	"github.com/htwlabs/eventdesk/internal/auth"
	"github.com/htwlabs/eventdesk/internal/model"
	"github.com/htwlabs/eventdesk/internal/store"
)

// Service runs feedback operations. Thread creation, its audit entry and the
// host notification commit atomically, mirroring the lifecycle service.
type Service struct {
	db      *sql.DB
	queries *store.Queries
}

// NewService creates a feedback service.
func NewService(db *sql.DB) *Service {
	return &Service{db: db, queries: store.New(db)}
}

func (s *Service) inTx(ctx context.Context, fn func(q *store.Queries) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(s.queries.WithTx(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func getEvent(ctx context.Context, q *store.Queries, id string) (model.Event, error) {
	e, err := q.GetEventByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Event{}, fmt.Errorf("event %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return model.Event{}, fmt.Errorf("loading event %s: %w", id, err)
	}
	return e, nil
}

func getThread(ctx context.Context, q *store.Queries, id string) (model.FeedbackThread, error) {
	th, err := q.GetFeedbackThread(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.FeedbackThread{}, fmt.Errorf("feedback thread %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return model.FeedbackThread{}, fmt.Errorf("loading feedback thread %s: %w", id, err)
	}
	return th, nil
}

func requireAdmin(caller auth.Caller) error {
	if caller.IsZero() {
		return apperr.ErrUnauthenticated
	}
	if !caller.IsAdmin() {
		return fmt.Errorf("admin role required: %w", apperr.ErrUnauthorized)
	}
	return nil
}

// OpenThread starts a new thread on an event field with its first comment.
// The opener's saved comment draft for that field is consumed: posted
// feedback and a pending draft of it must never coexist.
func (s *Service) OpenThread(ctx context.Context, caller auth.Caller, eventID, fieldPath, reason, message string) (model.FeedbackThread, error) {
	if err := requireAdmin(caller); err != nil {
		return model.FeedbackThread{}, err
	}
	if strings.TrimSpace(message) == "" {
		return model.FeedbackThread{}, apperr.Validation("message")
	}
	if fieldPath == "" {
		fieldPath = model.FieldPathGeneral
	}

	var created model.FeedbackThread
	err := s.inTx(ctx, func(q *store.Queries) error {
		e, err := getEvent(ctx, q, eventID)
		if err != nil {
			return err
		}

		now := time.Now()
		th, err := q.CreateFeedbackThread(ctx, store.CreateFeedbackThreadParams{
			ID:        uuid.NewString(),
			EventID:   e.ID,
			FieldPath: fieldPath,
			OpenedBy:  caller.UserID,
			Reason:    reason,
			CreatedAt: now,
		})
		if err != nil {
			return fmt.Errorf("creating feedback thread: %w", err)
		}

		if _, err := q.CreateFeedbackComment(ctx, store.CreateFeedbackCommentParams{
			ID:        uuid.NewString(),
			ThreadID:  th.ID,
			AuthorID:  caller.UserID,
			Message:   message,
			CreatedAt: now,
		}); err != nil {
			return fmt.Errorf("creating first comment: %w", err)
		}

		if err := q.DeleteFeedbackDraft(ctx, e.ID, fieldPath, caller.UserID); err != nil {
			return fmt.Errorf("clearing feedback draft: %w", err)
		}

		if err := q.CreateAuditEntry(ctx, store.CreateAuditEntryParams{
			ID:        uuid.NewString(),
			EventID:   e.ID,
			ActorID:   caller.UserID,
			Action:    model.ActionFeedbackAdded,
			Metadata:  model.EncodeAuditMetadata(model.AuditMetadata{FieldPath: fieldPath, Reason: reason}),
			CreatedAt: now,
		}); err != nil {
			return fmt.Errorf("writing audit entry: %w", err)
		}

		msg := fmt.Sprintf("New feedback on %q", e.Title)
		if fieldPath != model.FieldPathGeneral {
			msg = fmt.Sprintf("New feedback on %q (%s)", e.Title, fieldPath)
		}
		if _, err := q.CreateNotification(ctx, store.CreateNotificationParams{
			ID:        uuid.NewString(),
			UserID:    e.HostID,
			Type:      model.NotificationFeedback,
			EventID:   e.ID,
			Message:   msg,
			CreatedAt: now,
		}); err != nil {
			return fmt.Errorf("writing notification: %w", err)
		}

		created = th
		return nil
	})
	return created, err
}

// AddComment appends a comment to an open thread. Admins may comment on any
// thread; a host only on threads of their own events. Resolved threads are
// closed conversations and reject further comments.
func (s *Service) AddComment(ctx context.Context, caller auth.Caller, threadID, message string) (model.FeedbackComment, error) {
	if caller.IsZero() {
		return model.FeedbackComment{}, apperr.ErrUnauthenticated
	}
	if strings.TrimSpace(message) == "" {
		return model.FeedbackComment{}, apperr.Validation("message")
	}

	var created model.FeedbackComment
	err := s.inTx(ctx, func(q *store.Queries) error {
		th, err := getThread(ctx, q, threadID)
		if err != nil {
			return err
		}
		e, err := getEvent(ctx, q, th.EventID)
		if err != nil {
			return err
		}
		if !caller.IsAdmin() && e.HostID != caller.UserID {
			return fmt.Errorf("thread %s is not accessible to caller: %w", threadID, apperr.ErrUnauthorized)
		}
		if !th.IsOpen() {
			return fmt.Errorf("thread %s is resolved: %w", threadID, apperr.ErrInvalidState)
		}

		now := time.Now()
		c, err := q.CreateFeedbackComment(ctx, store.CreateFeedbackCommentParams{
			ID:        uuid.NewString(),
			ThreadID:  th.ID,
			AuthorID:  caller.UserID,
			Message:   message,
			CreatedAt: now,
		})
		if err != nil {
			return fmt.Errorf("creating comment: %w", err)
		}

		if err := q.DeleteFeedbackDraft(ctx, e.ID, th.FieldPath, caller.UserID); err != nil {
			return fmt.Errorf("clearing feedback draft: %w", err)
		}

		if err := q.CreateAuditEntry(ctx, store.CreateAuditEntryParams{
			ID:        uuid.NewString(),
			EventID:   e.ID,
			ActorID:   caller.UserID,
			Action:    model.ActionFeedbackCommented,
			Metadata:  model.EncodeAuditMetadata(model.AuditMetadata{FieldPath: th.FieldPath}),
			CreatedAt: now,
		}); err != nil {
			return fmt.Errorf("writing audit entry: %w", err)
		}

		// The host is told about reviewer replies; reviewers work from the
		// queue and need no per-comment notification.
		if caller.IsAdmin() && e.HostID != caller.UserID {
			if _, err := q.CreateNotification(ctx, store.CreateNotificationParams{
				ID:        uuid.NewString(),
				UserID:    e.HostID,
				Type:      model.NotificationFeedback,
				EventID:   e.ID,
				Message:   fmt.Sprintf("New reply on %q", e.Title),
				CreatedAt: now,
			}); err != nil {
				return fmt.Errorf("writing notification: %w", err)
			}
		}

		created = c
		return nil
	})
	return created, err
}

// ResolveThread closes a thread. Only admins resolve; resolving twice is an
// invalid state, not a no-op, so stale UI state surfaces instead of being
// silently absorbed.
func (s *Service) ResolveThread(ctx context.Context, caller auth.Caller, threadID string) (model.FeedbackThread, error) {
	if err := requireAdmin(caller); err != nil {
		return model.FeedbackThread{}, err
	}

	var resolved model.FeedbackThread
	err := s.inTx(ctx, func(q *store.Queries) error {
		th, err := getThread(ctx, q, threadID)
		if err != nil {
			return err
		}
		if !th.IsOpen() {
			return fmt.Errorf("thread %s is already resolved: %w", threadID, apperr.ErrInvalidState)
		}

		now := time.Now()
		if err := q.ResolveFeedbackThread(ctx, th.ID, now); err != nil {
			return fmt.Errorf("resolving thread %s: %w", threadID, err)
		}
		th.Status = model.ThreadStatusResolved
		th.ResolvedAt = sql.NullTime{Time: now, Valid: true}

		if err := q.CreateAuditEntry(ctx, store.CreateAuditEntryParams{
			ID:        uuid.NewString(),
			EventID:   th.EventID,
			ActorID:   caller.UserID,
			Action:    model.ActionFeedbackResolved,
			Metadata:  model.EncodeAuditMetadata(model.AuditMetadata{FieldPath: th.FieldPath}),
			CreatedAt: now,
		}); err != nil {
			return fmt.Errorf("writing audit entry: %w", err)
		}

		resolved = th
		return nil
	})
	return resolved, err
}

// Comment is a thread comment with its author's display name resolved.
type Comment struct {
	model.FeedbackComment
	AuthorName string `json:"author_name"`
}

// Thread is a feedback thread with its comments and a last-activity stamp
// (latest comment, or thread creation when somehow empty).
type Thread struct {
	model.FeedbackThread
	Comments     []Comment `json:"comments"`
	LastActivity time.Time `json:"last_activity"`
}

// ListThreads returns an event's threads with comments, oldest thread first.
// Admins and the owning host see everything; any other host receives an
// empty list rather than an error, matching what their event view shows.
func (s *Service) ListThreads(ctx context.Context, caller auth.Caller, eventID string) ([]Thread, error) {
	if caller.IsZero() {
		return nil, apperr.ErrUnauthenticated
	}

	e, err := getEvent(ctx, s.queries, eventID)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && e.HostID != caller.UserID {
		return []Thread{}, nil
	}

	threads, err := s.queries.ListFeedbackThreadsByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("listing threads for event %s: %w", eventID, err)
	}

	names := map[string]string{}
	out := make([]Thread, 0, len(threads))
	for _, th := range threads {
		comments, err := s.queries.ListFeedbackCommentsByThread(ctx, th.ID)
		if err != nil {
			return nil, fmt.Errorf("listing comments for thread %s: %w", th.ID, err)
		}

		t := Thread{FeedbackThread: th, Comments: make([]Comment, 0, len(comments)), LastActivity: th.CreatedAt}
		for _, c := range comments {
			name, ok := names[c.AuthorID]
			if !ok {
				u, err := s.queries.GetUserByID(ctx, c.AuthorID)
				if err != nil && !errors.Is(err, sql.ErrNoRows) {
					return nil, fmt.Errorf("resolving author %s: %w", c.AuthorID, err)
				}
				name = u.Name
				names[c.AuthorID] = name
			}
			t.Comments = append(t.Comments, Comment{FeedbackComment: c, AuthorName: name})
			if c.CreatedAt.After(t.LastActivity) {
				t.LastActivity = c.CreatedAt
			}
		}
		out = append(out, t)
	}
	return out, nil
}

// CountOpen returns the number of unresolved threads on an event, for the
// review badge.
func (s *Service) CountOpen(ctx context.Context, eventID string) (int64, error) {
	n, err := s.queries.CountOpenThreadsByEvent(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("counting open threads for event %s: %w", eventID, err)
	}
	return n, nil
}

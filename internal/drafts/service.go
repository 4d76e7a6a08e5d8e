// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

// Package drafts caches half-finished work: event form drafts keyed by user
// and form key, and feedback comment drafts keyed by event, field and author.
// Drafts are overwrite-only caches; losing one loses convenience, not data.
package drafts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/htwlabs/eventdesk/internal/apperr"
	"github.com/htwlabs/eventdesk/internal/auth"
	"github.com/htwlabs/eventdesk/internal/model"
	"github.com/htwlabs/eventdesk/internal/store"
)

// DefaultRetention is how long an untouched draft survives before the
// scheduler purges it.
const DefaultRetention = 30 * 24 * time.Hour

// Service stores and retrieves drafts. Every operation is scoped to the
// caller; one user can never see another's drafts.
type Service struct {
	queries *store.Queries
}

// NewService creates a drafts service.
func NewService(db *sql.DB) *Service {
	return &Service{queries: store.New(db)}
}

// SaveForm upserts the caller's form draft under key. The payload is an
// opaque JSON document owned by the client; the server never inspects it.
func (s *Service) SaveForm(ctx context.Context, caller auth.Caller, key, data string) (model.FormDraft, error) {
	if caller.IsZero() {
		return model.FormDraft{}, apperr.ErrUnauthenticated
	}
	if key == "" {
		return model.FormDraft{}, apperr.Validation("key")
	}

	d, err := s.queries.UpsertFormDraft(ctx, store.UpsertFormDraftParams{
		ID:        uuid.NewString(),
		UserID:    caller.UserID,
		Key:       key,
		Data:      data,
		UpdatedAt: time.Now(),
	})
	if err != nil {
		return model.FormDraft{}, fmt.Errorf("saving form draft %s: %w", key, err)
	}
	return d, nil
}

// GetForm returns the caller's form draft under key, or NotFound.
func (s *Service) GetForm(ctx context.Context, caller auth.Caller, key string) (model.FormDraft, error) {
	if caller.IsZero() {
		return model.FormDraft{}, apperr.ErrUnauthenticated
	}

	d, err := s.queries.GetFormDraft(ctx, caller.UserID, key)
	if errors.Is(err, sql.ErrNoRows) {
		return model.FormDraft{}, fmt.Errorf("form draft %s: %w", key, apperr.ErrNotFound)
	}
	if err != nil {
		return model.FormDraft{}, fmt.Errorf("loading form draft %s: %w", key, err)
	}
	return d, nil
}

// ClearForm removes the caller's form draft under key. Clearing a missing
// draft is a no-op.
func (s *Service) ClearForm(ctx context.Context, caller auth.Caller, key string) error {
	if caller.IsZero() {
		return apperr.ErrUnauthenticated
	}
	if err := s.queries.DeleteFormDraft(ctx, caller.UserID, key); err != nil {
		return fmt.Errorf("clearing form draft %s: %w", key, err)
	}
	return nil
}

// SaveFeedback upserts the caller's comment draft for one event field.
func (s *Service) SaveFeedback(ctx context.Context, caller auth.Caller, eventID, fieldPath, reason, message string) (model.FeedbackDraft, error) {
	if caller.IsZero() {
		return model.FeedbackDraft{}, apperr.ErrUnauthenticated
	}
	if eventID == "" {
		return model.FeedbackDraft{}, apperr.Validation("eventId")
	}
	if fieldPath == "" {
		fieldPath = model.FieldPathGeneral
	}

	d, err := s.queries.UpsertFeedbackDraft(ctx, store.UpsertFeedbackDraftParams{
		ID:        uuid.NewString(),
		EventID:   eventID,
		FieldPath: fieldPath,
		AuthorID:  caller.UserID,
		Reason:    reason,
		Message:   message,
		UpdatedAt: time.Now(),
	})
	if err != nil {
		return model.FeedbackDraft{}, fmt.Errorf("saving feedback draft for event %s: %w", eventID, err)
	}
	return d, nil
}

// GetFeedback returns the caller's comment draft for one event field, or
// NotFound.
func (s *Service) GetFeedback(ctx context.Context, caller auth.Caller, eventID, fieldPath string) (model.FeedbackDraft, error) {
	if caller.IsZero() {
		return model.FeedbackDraft{}, apperr.ErrUnauthenticated
	}
	if fieldPath == "" {
		fieldPath = model.FieldPathGeneral
	}

	d, err := s.queries.GetFeedbackDraft(ctx, eventID, fieldPath, caller.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.FeedbackDraft{}, fmt.Errorf("feedback draft for event %s: %w", eventID, apperr.ErrNotFound)
	}
	if err != nil {
		return model.FeedbackDraft{}, fmt.Errorf("loading feedback draft for event %s: %w", eventID, err)
	}
	return d, nil
}

// ClearFeedback removes the caller's comment draft for one event field.
func (s *Service) ClearFeedback(ctx context.Context, caller auth.Caller, eventID, fieldPath string) error {
	if caller.IsZero() {
		return apperr.ErrUnauthenticated
	}
	if fieldPath == "" {
		fieldPath = model.FieldPathGeneral
	}
	if err := s.queries.DeleteFeedbackDraft(ctx, eventID, fieldPath, caller.UserID); err != nil {
		return fmt.Errorf("clearing feedback draft for event %s: %w", eventID, err)
	}
	return nil
}

// PurgeStale deletes drafts of both kinds untouched for longer than
// retention. Called by the scheduler; returns total rows removed.
func (s *Service) PurgeStale(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)

	forms, err := s.queries.DeleteStaleFormDrafts(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purging form drafts: %w", err)
	}
	feedback, err := s.queries.DeleteStaleFeedbackDrafts(ctx, cutoff)
	if err != nil {
		return forms, fmt.Errorf("purging feedback drafts: %w", err)
	}
	return forms + feedback, nil
}

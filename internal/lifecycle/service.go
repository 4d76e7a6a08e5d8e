// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package lifecycle

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/htwlabs/eventdesk/internal/apperr"
	"github.com/htwlabs/eventdesk/internal/model"
	"github.com/htwlabs/eventdesk/internal/store"
)

// Config holds lifecycle policy knobs.
type Config struct {
	// RequireLumaDomain additionally requires registration URLs to point at
	// the lu.ma platform, not just be well-formed.
	RequireLumaDomain bool
}

// Service applies lifecycle operations to events. Each mutating operation
// runs read-check-write inside one transaction, with its audit entry and any
// notifications in the same transaction, so a status change is never recorded
// without its audit trail.
type Service struct {
	db      *sql.DB
	queries *store.Queries
	cfg     Config
}

// NewService creates a lifecycle service.
func NewService(db *sql.DB, cfg Config) *Service {
	return &Service{
		db:      db,
		queries: store.New(db),
		cfg:     cfg,
	}
}

// inTx runs fn against transaction-bound queries and commits on success.
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

// getEvent loads an event, translating a missing row to NotFound.
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

// getOwnedEvent loads an event for a host mutation: the caller must be the
// owning host.
func getOwnedEvent(ctx context.Context, q *store.Queries, caller Caller, id string) (model.Event, error) {
	e, err := getEvent(ctx, q, id)
	if err != nil {
		return model.Event{}, err
	}
	if e.HostID != caller.UserID {
		return model.Event{}, fmt.Errorf("event %s is not owned by caller: %w", id, apperr.ErrUnauthorized)
	}
	return e, nil
}

func requireCaller(caller Caller) error {
	if caller.IsZero() {
		return apperr.ErrUnauthenticated
	}
	return nil
}

func requireAdmin(caller Caller) error {
	if err := requireCaller(caller); err != nil {
		return err
	}
	if !caller.IsAdmin() {
		return fmt.Errorf("admin role required: %w", apperr.ErrUnauthorized)
	}
	return nil
}

func audit(ctx context.Context, q *store.Queries, entry store.CreateAuditEntryParams) error {
	entry.ID = uuid.NewString()
	entry.CreatedAt = time.Now()
	if err := q.CreateAuditEntry(ctx, entry); err != nil {
		return fmt.Errorf("writing audit entry: %w", err)
	}
	return nil
}

func notify(ctx context.Context, q *store.Queries, userID, typ, eventID, message string) error {
	_, err := q.CreateNotification(ctx, store.CreateNotificationParams{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      typ,
		EventID:   eventID,
		Message:   message,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("writing notification: %w", err)
	}
	return nil
}

// Create starts a new draft event for the calling host. Content defaults
// mirror the submission form's initial state.
func (s *Service) Create(ctx context.Context, caller Caller, title, shortDescription string) (model.Event, error) {
	if err := requireCaller(caller); err != nil {
		return model.Event{}, err
	}
	if !caller.IsHost() {
		return model.Event{}, fmt.Errorf("host role required: %w", apperr.ErrUnauthorized)
	}

	var created model.Event
	err := s.inTx(ctx, func(q *store.Queries) error {
		now := time.Now()
		e, err := q.CreateEvent(ctx, store.CreateEventParams{
			ID:               uuid.NewString(),
			HostID:           caller.UserID,
			Title:            title,
			ShortDescription: shortDescription,
			Capacity:         model.DefaultCapacity,
			IsPublic:         true,
			CreatedAt:        now,
			UpdatedAt:        now,
		})
		if err != nil {
			return fmt.Errorf("creating event: %w", err)
		}

		if err := audit(ctx, q, store.CreateAuditEntryParams{
			EventID: e.ID,
			ActorID: caller.UserID,
			Action:  model.ActionEventCreated,
			ToValue: model.StatusDraft,
		}); err != nil {
			return err
		}

		created = e
		return nil
	})
	return created, err
}

// Update applies a partial content patch for the owning host. Only legal
// while the event is still editable (draft or changes_requested).
func (s *Service) Update(ctx context.Context, caller Caller, eventID string, patch EventPatch) (model.Event, error) {
	if err := requireCaller(caller); err != nil {
		return model.Event{}, err
	}

	var updated model.Event
	err := s.inTx(ctx, func(q *store.Queries) error {
		e, err := getOwnedEvent(ctx, q, caller, eventID)
		if err != nil {
			return err
		}
		if !e.IsEditable() {
			return fmt.Errorf("event %s cannot be edited in status %s: %w",
				eventID, e.Status, apperr.ErrInvalidState)
		}

		patch.apply(&e)
		e.UpdatedAt = time.Now()
		if err := q.UpdateEvent(ctx, e); err != nil {
			return fmt.Errorf("updating event %s: %w", eventID, err)
		}

		updated = e
		return nil
	})
	return updated, err
}

// Submit moves an editable event into review. Draft submits to submitted;
// changes_requested resubmits to resubmitted. All content preconditions are
// checked and every failure is reported at once.
func (s *Service) Submit(ctx context.Context, caller Caller, eventID string) (model.Event, error) {
	if err := requireCaller(caller); err != nil {
		return model.Event{}, err
	}

	var submitted model.Event
	err := s.inTx(ctx, func(q *store.Queries) error {
		e, err := getOwnedEvent(ctx, q, caller, eventID)
		if err != nil {
			return err
		}

		to, ok := nextStatus(e.Status, ActionSubmit)
		if !ok {
			return fmt.Errorf("event %s cannot be submitted from status %s: %w",
				eventID, e.Status, apperr.ErrInvalidState)
		}

		if err := validateForSubmit(e); err != nil {
			return err
		}

		from := e.Status
		now := time.Now()
		e.Status = to
		e.SubmittedAt = sql.NullTime{Time: now, Valid: true}
		e.UpdatedAt = now
		if err := q.UpdateEvent(ctx, e); err != nil {
			return fmt.Errorf("updating event %s: %w", eventID, err)
		}

		if err := audit(ctx, q, store.CreateAuditEntryParams{
			EventID:   e.ID,
			ActorID:   caller.UserID,
			Action:    model.ActionEventSubmitted,
			FromValue: from,
			ToValue:   to,
		}); err != nil {
			return err
		}

		// Let every reviewer know there is a new queue entry.
		admins, err := q.ListUsersByRole(ctx, model.RoleAdmin)
		if err != nil {
			return fmt.Errorf("listing admins: %w", err)
		}
		for _, admin := range admins {
			msg := fmt.Sprintf("%q was submitted for review", e.Title)
			if to == model.StatusResubmitted {
				msg = fmt.Sprintf("%q was resubmitted after changes", e.Title)
			}
			if err := notify(ctx, q, admin.ID, model.NotificationEventSubmitted, e.ID, msg); err != nil {
				return err
			}
		}

		submitted = e
		return nil
	})
	return submitted, err
}

// Delete hard-removes a draft. Any other status is refused so decisions that
// already entered review are never silently discarded.
func (s *Service) Delete(ctx context.Context, caller Caller, eventID string) error {
	if err := requireCaller(caller); err != nil {
		return err
	}

	return s.inTx(ctx, func(q *store.Queries) error {
		e, err := getOwnedEvent(ctx, q, caller, eventID)
		if err != nil {
			return err
		}
		if e.Status != model.StatusDraft {
			return fmt.Errorf("only draft events can be deleted, event %s is %s: %w",
				eventID, e.Status, apperr.ErrInvalidState)
		}

		if err := q.DeleteEvent(ctx, eventID); err != nil {
			return fmt.Errorf("deleting event %s: %w", eventID, err)
		}

		// The audit trail outlives the record it describes.
		return audit(ctx, q, store.CreateAuditEntryParams{
			EventID:   e.ID,
			ActorID:   caller.UserID,
			Action:    model.ActionEventDeleted,
			FromValue: model.StatusDraft,
		})
	})
}

// SetRegistrationURL stores the external registration URL. Hosts may set it
// once the event is approved or published; admins at any time.
func (s *Service) SetRegistrationURL(ctx context.Context, caller Caller, eventID, rawURL string) (model.Event, error) {
	if err := requireCaller(caller); err != nil {
		return model.Event{}, err
	}
	if err := validateRegistrationURL(rawURL, s.cfg.RequireLumaDomain); err != nil {
		return model.Event{}, err
	}

	var updated model.Event
	err := s.inTx(ctx, func(q *store.Queries) error {
		var (
			e   model.Event
			err error
		)
		if caller.IsAdmin() {
			e, err = getEvent(ctx, q, eventID)
		} else {
			e, err = getOwnedEvent(ctx, q, caller, eventID)
		}
		if err != nil {
			return err
		}

		if !caller.IsAdmin() && e.Status != model.StatusApproved && e.Status != model.StatusPublished {
			return fmt.Errorf("registration URL can only be set after approval, event %s is %s: %w",
				eventID, e.Status, apperr.ErrInvalidState)
		}

		previous := e.LumaURL
		e.LumaURL = rawURL
		e.UpdatedAt = time.Now()
		if err := q.UpdateEvent(ctx, e); err != nil {
			return fmt.Errorf("updating event %s: %w", eventID, err)
		}

		if err := audit(ctx, q, store.CreateAuditEntryParams{
			EventID:   e.ID,
			ActorID:   caller.UserID,
			Action:    model.ActionURLSet,
			FromValue: previous,
			ToValue:   rawURL,
			Metadata:  model.EncodeAuditMetadata(model.AuditMetadata{FieldPath: "lumaUrl"}),
		}); err != nil {
			return err
		}

		updated = e
		return nil
	})
	return updated, err
}

// ToggleChecklistItem sets one checklist item's completed flag. Owner or
// admin only; checklist structure is never altered here.
func (s *Service) ToggleChecklistItem(ctx context.Context, caller Caller, eventID, itemID string, completed bool) (model.Event, error) {
	if err := requireCaller(caller); err != nil {
		return model.Event{}, err
	}

	var updated model.Event
	err := s.inTx(ctx, func(q *store.Queries) error {
		var (
			e   model.Event
			err error
		)
		if caller.IsAdmin() {
			e, err = getEvent(ctx, q, eventID)
		} else {
			e, err = getOwnedEvent(ctx, q, caller, eventID)
		}
		if err != nil {
			return err
		}

		idx := -1
		for i := range e.Checklist {
			if e.Checklist[i].ID == itemID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("checklist item %s on event %s: %w", itemID, eventID, apperr.ErrNotFound)
		}

		previous := e.Checklist[idx].Completed
		e.Checklist[idx].Completed = completed
		e.UpdatedAt = time.Now()
		if err := q.UpdateEvent(ctx, e); err != nil {
			return fmt.Errorf("updating event %s: %w", eventID, err)
		}

		if err := audit(ctx, q, store.CreateAuditEntryParams{
			EventID:   e.ID,
			ActorID:   caller.UserID,
			Action:    model.ActionChecklistToggled,
			FromValue: fmt.Sprintf("%t", previous),
			ToValue:   fmt.Sprintf("%t", completed),
			Metadata:  model.EncodeAuditMetadata(model.AuditMetadata{FieldPath: itemID}),
		}); err != nil {
			return err
		}

		updated = e
		return nil
	})
	return updated, err
}

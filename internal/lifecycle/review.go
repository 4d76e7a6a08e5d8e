// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package lifecycle

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/htwlabs/eventdesk/internal/apperr"
	"github.com/htwlabs/eventdesk/internal/checklist"
	"github.com/htwlabs/eventdesk/internal/model"
	"github.com/htwlabs/eventdesk/internal/store"
)

// RequestChanges sends a submitted or resubmitted event back to its host.
// The host notification embeds the reviewer's message, the reason code and
// the flagged field names so the host can be routed to the right form step.
func (s *Service) RequestChanges(ctx context.Context, caller Caller, eventID, message, reason string, fields []string) (model.Event, error) {
	if err := requireAdmin(caller); err != nil {
		return model.Event{}, err
	}

	var updated model.Event
	err := s.inTx(ctx, func(q *store.Queries) error {
		e, err := getEvent(ctx, q, eventID)
		if err != nil {
			return err
		}

		to, ok := nextStatus(e.Status, ActionRequestChanges)
		if !ok {
			return fmt.Errorf("changes cannot be requested on event %s in status %s: %w",
				eventID, e.Status, apperr.ErrInvalidState)
		}

		from := e.Status
		e.Status = to
		e.UpdatedAt = time.Now()
		if err := q.UpdateEvent(ctx, e); err != nil {
			return fmt.Errorf("updating event %s: %w", eventID, err)
		}

		if err := audit(ctx, q, store.CreateAuditEntryParams{
			EventID:   e.ID,
			ActorID:   caller.UserID,
			Action:    model.ActionStatusChanged,
			FromValue: from,
			ToValue:   to,
			Metadata:  model.EncodeAuditMetadata(model.AuditMetadata{Reason: reason, Fields: fields}),
		}); err != nil {
			return err
		}

		msg := fmt.Sprintf("Changes requested on %q", e.Title)
		if message != "" {
			msg += ": " + message
		}
		if reason != "" {
			msg += " (reason: " + reason + ")"
		}
		if len(fields) > 0 {
			msg += " [fields: " + strings.Join(fields, ", ") + "]"
		}
		if err := notify(ctx, q, e.HostID, model.NotificationChangesRequested, e.ID, msg); err != nil {
			return err
		}

		updated = e
		return nil
	})
	return updated, err
}

// Approve accepts a submitted or resubmitted event. The first approval
// generates the post-approval checklist from the event's format tags and
// date; an existing checklist is left untouched.
func (s *Service) Approve(ctx context.Context, caller Caller, eventID string) (model.Event, error) {
	if err := requireAdmin(caller); err != nil {
		return model.Event{}, err
	}

	var updated model.Event
	err := s.inTx(ctx, func(q *store.Queries) error {
		e, err := getEvent(ctx, q, eventID)
		if err != nil {
			return err
		}

		to, ok := nextStatus(e.Status, ActionApprove)
		if !ok {
			return fmt.Errorf("event %s cannot be approved from status %s: %w",
				eventID, e.Status, apperr.ErrInvalidState)
		}

		from := e.Status
		now := time.Now()
		e.Status = to
		e.ApprovedAt = sql.NullTime{Time: now, Valid: true}
		e.UpdatedAt = now

		if len(e.Checklist) == 0 {
			e.ChecklistTemplate = checklist.TemplateForFormats(e.Formats)
			e.Checklist = checklist.Generate(e.ChecklistTemplate, eventDateOrZero(e))
		}

		if err := q.UpdateEvent(ctx, e); err != nil {
			return fmt.Errorf("updating event %s: %w", eventID, err)
		}

		if err := audit(ctx, q, store.CreateAuditEntryParams{
			EventID:   e.ID,
			ActorID:   caller.UserID,
			Action:    model.ActionStatusChanged,
			FromValue: from,
			ToValue:   to,
		}); err != nil {
			return err
		}

		msg := fmt.Sprintf("%q was approved. Your planning checklist is ready.", e.Title)
		if err := notify(ctx, q, e.HostID, model.NotificationEventApproved, e.ID, msg); err != nil {
			return err
		}

		updated = e
		return nil
	})
	return updated, err
}

// Publish makes an approved event public. The external registration URL must
// already be set; approval alone is not enough.
func (s *Service) Publish(ctx context.Context, caller Caller, eventID string) (model.Event, error) {
	if err := requireAdmin(caller); err != nil {
		return model.Event{}, err
	}

	var updated model.Event
	err := s.inTx(ctx, func(q *store.Queries) error {
		e, err := getEvent(ctx, q, eventID)
		if err != nil {
			return err
		}

		to, ok := nextStatus(e.Status, ActionPublish)
		if !ok {
			return fmt.Errorf("event %s cannot be published from status %s: %w",
				eventID, e.Status, apperr.ErrInvalidState)
		}
		if e.LumaURL == "" {
			return fmt.Errorf("event %s has no registration URL: %w",
				eventID, apperr.ErrPreconditionFailed)
		}

		from := e.Status
		e.Status = to
		e.OnCalendar = true
		e.UpdatedAt = time.Now()
		if err := q.UpdateEvent(ctx, e); err != nil {
			return fmt.Errorf("updating event %s: %w", eventID, err)
		}

		if err := audit(ctx, q, store.CreateAuditEntryParams{
			EventID:   e.ID,
			ActorID:   caller.UserID,
			Action:    model.ActionStatusChanged,
			FromValue: from,
			ToValue:   to,
		}); err != nil {
			return err
		}

		msg := fmt.Sprintf("%q is now published on the calendar.", e.Title)
		if err := notify(ctx, q, e.HostID, model.NotificationEventPublished, e.ID, msg); err != nil {
			return err
		}

		updated = e
		return nil
	})
	return updated, err
}

// ForceStatus unconditionally sets an event's status, bypassing every
// precondition. It is the designed escape hatch for recovering stuck or
// mis-validated events and must stay unconditional; the only check is that
// the target belongs to the status enum. The audit entry is tagged as a
// forced change, distinct from regular transitions, and the host receives a
// generic status-changed notification.
func (s *Service) ForceStatus(ctx context.Context, caller Caller, eventID, status string) (model.Event, error) {
	if err := requireAdmin(caller); err != nil {
		return model.Event{}, err
	}
	if !model.IsValidStatus(status) {
		return model.Event{}, apperr.Validation("status")
	}

	var updated model.Event
	err := s.inTx(ctx, func(q *store.Queries) error {
		e, err := getEvent(ctx, q, eventID)
		if err != nil {
			return err
		}

		from := e.Status
		e.Status = status
		e.UpdatedAt = time.Now()
		if err := q.UpdateEvent(ctx, e); err != nil {
			return fmt.Errorf("updating event %s: %w", eventID, err)
		}

		if err := audit(ctx, q, store.CreateAuditEntryParams{
			EventID:   e.ID,
			ActorID:   caller.UserID,
			Action:    model.ActionStatusForced,
			FromValue: from,
			ToValue:   status,
		}); err != nil {
			return err
		}

		msg := fmt.Sprintf("The status of %q was changed to %s.", e.Title, status)
		if err := notify(ctx, q, e.HostID, model.NotificationStatusChanged, e.ID, msg); err != nil {
			return err
		}

		updated = e
		return nil
	})
	return updated, err
}

// AdminUpdate applies a content patch on behalf of an admin, at any status.
// Unlike host edits, admin edits are always audited with the affected field
// names.
func (s *Service) AdminUpdate(ctx context.Context, caller Caller, eventID string, patch EventPatch) (model.Event, error) {
	if err := requireAdmin(caller); err != nil {
		return model.Event{}, err
	}

	var updated model.Event
	err := s.inTx(ctx, func(q *store.Queries) error {
		e, err := getEvent(ctx, q, eventID)
		if err != nil {
			return err
		}

		changed := patch.apply(&e)
		e.UpdatedAt = time.Now()
		if err := q.UpdateEvent(ctx, e); err != nil {
			return fmt.Errorf("updating event %s: %w", eventID, err)
		}

		if err := audit(ctx, q, store.CreateAuditEntryParams{
			EventID:  e.ID,
			ActorID:  caller.UserID,
			Action:   model.ActionAdminFieldEdit,
			Metadata: model.EncodeAuditMetadata(model.AuditMetadata{Fields: changed}),
		}); err != nil {
			return err
		}

		updated = e
		return nil
	})
	return updated, err
}

// RegenerateChecklist rebuilds the checklist from the event's current format
// tags and date, discarding completion state. This is the only path that
// alters checklist structure after the first approval; forcing a status never
// does.
func (s *Service) RegenerateChecklist(ctx context.Context, caller Caller, eventID string) (model.Event, error) {
	if err := requireAdmin(caller); err != nil {
		return model.Event{}, err
	}

	var updated model.Event
	err := s.inTx(ctx, func(q *store.Queries) error {
		e, err := getEvent(ctx, q, eventID)
		if err != nil {
			return err
		}

		previous := e.ChecklistTemplate
		e.ChecklistTemplate = checklist.TemplateForFormats(e.Formats)
		e.Checklist = checklist.Generate(e.ChecklistTemplate, eventDateOrZero(e))
		e.UpdatedAt = time.Now()
		if err := q.UpdateEvent(ctx, e); err != nil {
			return fmt.Errorf("updating event %s: %w", eventID, err)
		}

		if err := audit(ctx, q, store.CreateAuditEntryParams{
			EventID:   e.ID,
			ActorID:   caller.UserID,
			Action:    model.ActionChecklistRegenerated,
			FromValue: previous,
			ToValue:   e.ChecklistTemplate,
		}); err != nil {
			return err
		}

		updated = e
		return nil
	})
	return updated, err
}

func eventDateOrZero(e model.Event) time.Time {
	if e.EventDate.Valid {
		return e.EventDate.Time
	}
	return time.Time{}
}

// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/htwlabs/eventdesk/internal/model"
)

const eventColumns = `id, host_id, status, title, short_description, event_date, venue,
	capacity, formats, is_public, has_hosted_before, target_audience, planning_doc_url,
	luma_url, on_calendar, checklist_template, checklist, agreement_accepted_at,
	submitted_at, approved_at, created_at, updated_at`

func scanEvent(row interface{ Scan(...any) error }) (model.Event, error) {
	var (
		e         model.Event
		formats   string
		checklist string
	)
	err := row.Scan(
		&e.ID, &e.HostID, &e.Status, &e.Title, &e.ShortDescription, &e.EventDate,
		&e.Venue, &e.Capacity, &formats, &e.IsPublic, &e.HasHostedBefore,
		&e.TargetAudience, &e.PlanningDocURL, &e.LumaURL, &e.OnCalendar,
		&e.ChecklistTemplate, &checklist, &e.AgreementAcceptedAt,
		&e.SubmittedAt, &e.ApprovedAt, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return e, err
	}
	if err := json.Unmarshal([]byte(formats), &e.Formats); err != nil {
		return e, fmt.Errorf("decoding formats for event %s: %w", e.ID, err)
	}
	if err := json.Unmarshal([]byte(checklist), &e.Checklist); err != nil {
		return e, fmt.Errorf("decoding checklist for event %s: %w", e.ID, err)
	}
	return normalizeEvent(e), nil
}

// normalizeEvent applies defaults to rows written before newer columns
// existed. It is the single upgrade point at the storage read boundary;
// business logic never sees a pre-normalization record.
func normalizeEvent(e model.Event) model.Event {
	if e.Status == "" {
		e.Status = model.StatusDraft
	}
	if e.ChecklistTemplate == "" {
		e.ChecklistTemplate = "general"
	}
	if e.Formats == nil {
		e.Formats = []string{}
	}
	if e.Checklist == nil {
		e.Checklist = []model.ChecklistItem{}
	}
	if e.Capacity == 0 {
		e.Capacity = model.DefaultCapacity
	}
	return e
}

func encodeJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CreateEventParams holds the fields for CreateEvent. Remaining columns take
// their schema defaults.
type CreateEventParams struct {
	ID               string
	HostID           string
	Title            string
	ShortDescription string
	Capacity         int64
	IsPublic         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CreateEvent inserts a new draft event and returns it.
func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) (model.Event, error) {
	const query = `INSERT INTO events (id, host_id, status, title, short_description,
		capacity, is_public, created_at, updated_at)
		VALUES (?, ?, 'draft', ?, ?, ?, ?, ?, ?)
		RETURNING ` + eventColumns
	row := q.db.QueryRowContext(ctx, query,
		arg.ID, arg.HostID, arg.Title, arg.ShortDescription,
		arg.Capacity, arg.IsPublic, arg.CreatedAt, arg.UpdatedAt,
	)
	return scanEvent(row)
}

// GetEventByID fetches one event by id.
func (q *Queries) GetEventByID(ctx context.Context, id string) (model.Event, error) {
	const query = `SELECT ` + eventColumns + ` FROM events WHERE id = ?`
	return scanEvent(q.db.QueryRowContext(ctx, query, id))
}

// UpdateEvent writes every mutable column from the given event. Callers read,
// mutate and write back inside one transaction so the store's transactional
// guarantee is the sole correctness mechanism.
func (q *Queries) UpdateEvent(ctx context.Context, e model.Event) error {
	formats, err := encodeJSON(e.Formats)
	if err != nil {
		return fmt.Errorf("encoding formats: %w", err)
	}
	checklist, err := encodeJSON(e.Checklist)
	if err != nil {
		return fmt.Errorf("encoding checklist: %w", err)
	}

	const query = `UPDATE events SET
		status = ?, title = ?, short_description = ?, event_date = ?, venue = ?,
		capacity = ?, formats = ?, is_public = ?, has_hosted_before = ?,
		target_audience = ?, planning_doc_url = ?, luma_url = ?, on_calendar = ?,
		checklist_template = ?, checklist = ?, agreement_accepted_at = ?,
		submitted_at = ?, approved_at = ?, updated_at = ?
		WHERE id = ?`
	_, err = q.db.ExecContext(ctx, query,
		e.Status, e.Title, e.ShortDescription, e.EventDate, e.Venue,
		e.Capacity, formats, e.IsPublic, e.HasHostedBefore,
		e.TargetAudience, e.PlanningDocURL, e.LumaURL, e.OnCalendar,
		e.ChecklistTemplate, checklist, e.AgreementAcceptedAt,
		e.SubmittedAt, e.ApprovedAt, e.UpdatedAt,
		e.ID,
	)
	return err
}

// DeleteEvent hard-removes one event.
func (q *Queries) DeleteEvent(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	return err
}

// ListEventsByHost returns a host's events, newest first.
func (q *Queries) ListEventsByHost(ctx context.Context, hostID string) ([]model.Event, error) {
	const query = `SELECT ` + eventColumns + ` FROM events
		WHERE host_id = ? ORDER BY created_at DESC`
	return q.listEvents(ctx, query, hostID)
}

// ListEventsByStatus returns all events with the given status, oldest
// submission first so the review queue is worked in order.
func (q *Queries) ListEventsByStatus(ctx context.Context, status string) ([]model.Event, error) {
	const query = `SELECT ` + eventColumns + ` FROM events
		WHERE status = ? ORDER BY submitted_at, created_at`
	return q.listEvents(ctx, query, status)
}

// ListScheduledEvents returns events that occupy a venue slot: those in an
// active review or post-approval status with an event date set. Used by the
// conflict detector; drafts and changes_requested events are excluded.
func (q *Queries) ListScheduledEvents(ctx context.Context) ([]model.Event, error) {
	const query = `SELECT ` + eventColumns + ` FROM events
		WHERE status IN ('submitted', 'resubmitted', 'approved', 'published')
		AND event_date IS NOT NULL
		ORDER BY event_date`
	return q.listEvents(ctx, query)
}

func (q *Queries) listEvents(ctx context.Context, query string, args ...any) ([]model.Event, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// EventStatusCount is one row of CountEventsByStatusForHost.
type EventStatusCount struct {
	Status string
	Count  int64
}

// CountEventsByStatusForHost returns per-status counts for one host.
func (q *Queries) CountEventsByStatusForHost(ctx context.Context, hostID string) ([]EventStatusCount, error) {
	const query = `SELECT status, COUNT(*) FROM events WHERE host_id = ? GROUP BY status`
	rows, err := q.db.QueryContext(ctx, query, hostID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []EventStatusCount
	for rows.Next() {
		var c EventStatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package lifecycle

import (
	"context"
	"fmt"

	"github.com/htwlabs/eventdesk/internal/apperr"
	"github.com/htwlabs/eventdesk/internal/model"
)

// Get returns one event. Admins may read any event; a host only their own.
// Another host's event reads as NotFound rather than Unauthorized so its
// existence is not leaked.
func (s *Service) Get(ctx context.Context, caller Caller, eventID string) (model.Event, error) {
	if err := requireCaller(caller); err != nil {
		return model.Event{}, err
	}

	e, err := getEvent(ctx, s.queries, eventID)
	if err != nil {
		return model.Event{}, err
	}
	if !caller.IsAdmin() && e.HostID != caller.UserID {
		return model.Event{}, fmt.Errorf("event %s: %w", eventID, apperr.ErrNotFound)
	}
	return e, nil
}

// ListMine returns the calling host's events, newest first.
func (s *Service) ListMine(ctx context.Context, caller Caller) ([]model.Event, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}

	events, err := s.queries.ListEventsByHost(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("listing events for host %s: %w", caller.UserID, err)
	}
	return events, nil
}

// ListByStatus returns the admin review queue for one status, oldest
// submission first.
func (s *Service) ListByStatus(ctx context.Context, caller Caller, status string) ([]model.Event, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	if !model.IsValidStatus(status) {
		return nil, apperr.Validation("status")
	}

	events, err := s.queries.ListEventsByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("listing events with status %s: %w", status, err)
	}
	return events, nil
}

// Stats returns the calling host's dashboard counts. Submitted and
// resubmitted events fold into the same under-review bucket.
func (s *Service) Stats(ctx context.Context, caller Caller) (model.EventStats, error) {
	if err := requireCaller(caller); err != nil {
		return model.EventStats{}, err
	}

	counts, err := s.queries.CountEventsByStatusForHost(ctx, caller.UserID)
	if err != nil {
		return model.EventStats{}, fmt.Errorf("counting events for host %s: %w", caller.UserID, err)
	}

	var stats model.EventStats
	for _, c := range counts {
		stats.Total += c.Count
		switch c.Status {
		case model.StatusDraft, model.StatusChangesRequested:
			stats.Draft += c.Count
		case model.StatusSubmitted, model.StatusResubmitted:
			stats.Submitted += c.Count
		case model.StatusApproved:
			stats.Approved += c.Count
		case model.StatusPublished:
			stats.Published += c.Count
		}
	}
	return stats, nil
}

// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

// Package audit reads the append-only event history. Writes happen inside
// the lifecycle and feedback transactions; this package only presents them.
package audit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/htwlabs/eventdesk/internal/apperr"
	"github.com/htwlabs/eventdesk/internal/auth"
	"github.com/htwlabs/eventdesk/internal/model"
	"github.com/htwlabs/eventdesk/internal/store"
)

// Entry is one audit record with its actor's display name and decoded
// metadata, ready for display.
type Entry struct {
	model.AuditEntry
	ActorName string              `json:"actor_name"`
	Meta      model.AuditMetadata `json:"meta"`
}

// Reader lists audit history.
type Reader struct {
	queries *store.Queries
}

// NewReader creates an audit reader.
func NewReader(db *sql.DB) *Reader {
	return &Reader{queries: store.New(db)}
}

// ListByEvent returns an event's full history, newest first. Admin only:
// the log names reviewers and records forced actions, which are not host
// material. Works for deleted events too, since entries outlive their event.
func (r *Reader) ListByEvent(ctx context.Context, caller auth.Caller, eventID string) ([]Entry, error) {
	if caller.IsZero() {
		return nil, apperr.ErrUnauthenticated
	}
	if !caller.IsAdmin() {
		return nil, fmt.Errorf("admin role required: %w", apperr.ErrUnauthorized)
	}

	entries, err := r.queries.ListAuditEntriesByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("listing audit entries for event %s: %w", eventID, err)
	}

	names := map[string]string{}
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		name, ok := names[e.ActorID]
		if !ok {
			u, err := r.queries.GetUserByID(ctx, e.ActorID)
			if err != nil && !errors.Is(err, sql.ErrNoRows) {
				return nil, fmt.Errorf("resolving actor %s: %w", e.ActorID, err)
			}
			name = u.Name
			names[e.ActorID] = name
		}
		out = append(out, Entry{AuditEntry: e, ActorName: name, Meta: e.DecodeMetadata()})
	}
	return out, nil
}

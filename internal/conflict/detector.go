// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

// Package conflict flags venue double-booking: events at the same venue
// within a few hours of each other. It is advisory only; reviewers decide
// what to do with a flagged slot.
package conflict

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/htwlabs/eventdesk/internal/store"
)

// Window is how far apart two events at the same venue may be before they
// stop counting as a conflict.
const Window = 3 * time.Hour

// Direct is the distance under which two events effectively overlap.
const Direct = time.Hour

// Match is one event competing for the same venue slot.
type Match struct {
	EventID   string  `json:"event_id"`
	Title     string  `json:"title"`
	HostName  string  `json:"host_name"`
	Status    string  `json:"status"`
	Venue     string  `json:"venue"`
	EventDate time.Time `json:"event_date"`
	// DiffHours is the absolute distance to the probed slot, rounded to one
	// decimal for display.
	DiffHours float64 `json:"diff_hours"`
	// IsDirectConflict marks near-overlapping slots that almost certainly
	// cannot coexist.
	IsDirectConflict bool `json:"is_direct_conflict"`
}

// Detector scans scheduled events for venue collisions.
type Detector struct {
	queries *store.Queries
}

// NewDetector creates a conflict detector.
func NewDetector(db *sql.DB) *Detector {
	return &Detector{queries: store.New(db)}
}

// normalizeVenue canonicalizes a venue string for comparison: lowercased,
// trimmed, inner whitespace collapsed. "The  Commons " and "the commons"
// are the same place.
func normalizeVenue(v string) string {
	return strings.Join(strings.Fields(strings.ToLower(v)), " ")
}

// Detect returns events that contend for the given venue around the given
// time, closest first. Only events in an active review or post-approval
// status occupy a slot; drafts never conflict. excludeID drops the event
// being edited from its own results.
func (d *Detector) Detect(ctx context.Context, date time.Time, venue, excludeID string) ([]Match, error) {
	want := normalizeVenue(venue)
	if want == "" || date.IsZero() {
		return nil, nil
	}

	events, err := d.queries.ListScheduledEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing scheduled events: %w", err)
	}

	names := map[string]string{}
	var matches []Match
	for _, e := range events {
		if e.ID == excludeID || !e.EventDate.Valid {
			continue
		}
		if normalizeVenue(e.Venue) != want {
			continue
		}
		diff := e.EventDate.Time.Sub(date)
		if diff < 0 {
			diff = -diff
		}
		if diff > Window {
			continue
		}

		name, ok := names[e.HostID]
		if !ok {
			u, err := d.queries.GetUserByID(ctx, e.HostID)
			if err != nil {
				return nil, fmt.Errorf("resolving host %s: %w", e.HostID, err)
			}
			name = u.Name
			names[e.HostID] = name
		}

		matches = append(matches, Match{
			EventID:          e.ID,
			Title:            e.Title,
			HostName:         name,
			Status:           e.Status,
			Venue:            e.Venue,
			EventDate:        e.EventDate.Time,
			DiffHours:        math.Round(diff.Hours()*10) / 10,
			IsDirectConflict: diff < Direct,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].DiffHours < matches[j].DiffHours
	})
	return matches, nil
}

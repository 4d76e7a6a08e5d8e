// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package lifecycle

import (
	"database/sql"
	"time"

	"github.com/htwlabs/eventdesk/internal/model"
)

// EventPatch is a partial set of content fields. A nil pointer (or nil
// Formats slice) means "no change", never "clear"; an explicit empty value
// clears. Bounds are not checked here: hosts can save incomplete drafts
// freely, and submit enforces completeness.
type EventPatch struct {
	Title               *string
	ShortDescription    *string
	EventDate           *time.Time
	Venue               *string
	Capacity            *int64
	Formats             []string
	IsPublic            *bool
	HasHostedBefore     *bool
	TargetAudience      *string
	PlanningDocURL      *string
	AgreementAcceptedAt *time.Time
}

// apply copies the set fields onto the event and returns the names of the
// fields that were set, for audit metadata.
func (p EventPatch) apply(e *model.Event) []string {
	var changed []string

	if p.Title != nil {
		e.Title = *p.Title
		changed = append(changed, "title")
	}
	if p.ShortDescription != nil {
		e.ShortDescription = *p.ShortDescription
		changed = append(changed, "shortDescription")
	}
	if p.EventDate != nil {
		e.EventDate = sql.NullTime{Time: *p.EventDate, Valid: true}
		changed = append(changed, "eventDate")
	}
	if p.Venue != nil {
		e.Venue = *p.Venue
		changed = append(changed, "venue")
	}
	if p.Capacity != nil {
		e.Capacity = *p.Capacity
		changed = append(changed, "capacity")
	}
	if p.Formats != nil {
		e.Formats = p.Formats
		changed = append(changed, "formats")
	}
	if p.IsPublic != nil {
		e.IsPublic = *p.IsPublic
		changed = append(changed, "isPublic")
	}
	if p.HasHostedBefore != nil {
		e.HasHostedBefore = *p.HasHostedBefore
		changed = append(changed, "hasHostedBefore")
	}
	if p.TargetAudience != nil {
		e.TargetAudience = *p.TargetAudience
		changed = append(changed, "targetAudience")
	}
	if p.PlanningDocURL != nil {
		e.PlanningDocURL = *p.PlanningDocURL
		changed = append(changed, "planningDocUrl")
	}
	if p.AgreementAcceptedAt != nil {
		e.AgreementAcceptedAt = sql.NullTime{Time: *p.AgreementAcceptedAt, Valid: true}
		changed = append(changed, "agreementAcceptedAt")
	}

	return changed
}

// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package lifecycle

import "github.com/htwlabs/eventdesk/internal/model"

// Action names the validated lifecycle transitions.
type Action string

// Lifecycle actions
const (
	ActionSubmit         Action = "submit"
	ActionRequestChanges Action = "request_changes"
	ActionApprove        Action = "approve"
	ActionPublish        Action = "publish"
)

// transitions is the authoritative transition table: current status to
// allowed action to resulting status. Every validated operation consults
// this table; the admin force path deliberately bypasses it and is the only
// way to move along an edge not listed here.
var transitions = map[string]map[Action]string{
	model.StatusDraft: {
		ActionSubmit: model.StatusSubmitted,
	},
	model.StatusChangesRequested: {
		ActionSubmit: model.StatusResubmitted,
	},
	model.StatusSubmitted: {
		ActionRequestChanges: model.StatusChangesRequested,
		ActionApprove:        model.StatusApproved,
	},
	model.StatusResubmitted: {
		ActionRequestChanges: model.StatusChangesRequested,
		ActionApprove:        model.StatusApproved,
	},
	model.StatusApproved: {
		ActionPublish: model.StatusPublished,
	},
}

// nextStatus returns the status reached by taking action from the given
// status, or false if the edge does not exist.
func nextStatus(from string, action Action) (string, bool) {
	to, ok := transitions[from][action]
	return to, ok
}

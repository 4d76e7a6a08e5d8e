// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import "github.com/htwlabs/eventdesk/internal/model"

// Caller identifies the authenticated principal behind a service call.
// A zero Caller means unauthenticated.
type Caller struct {
	UserID string
	Role   string
}

// CallerFor builds a Caller from a loaded user record.
func CallerFor(u model.User) Caller {
	return Caller{UserID: u.ID, Role: u.Role}
}

// IsZero reports whether the caller is unauthenticated.
func (c Caller) IsZero() bool {
	return c.UserID == ""
}

// IsAdmin reports whether the caller holds the admin role.
func (c Caller) IsAdmin() bool {
	return c.Role == model.RoleAdmin
}

// IsHost reports whether the caller holds the host role.
func (c Caller) IsHost() bool {
	return c.Role == model.RoleHost
}

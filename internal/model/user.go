// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain models and types used throughout the
// application including User, Event, FeedbackThread and AuditEntry.
package model

import (
	"database/sql"
	"time"
)

// User roles
const (
	RoleHost  = "host"
	RoleAdmin = "admin"
)

// User represents a platform user. ExternalID is the stable subject supplied
// by the identity provider; the core trusts it once resolved.
type User struct {
	ID                   string       `json:"id"`
	ExternalID           string       `json:"external_id"`
	Name                 string       `json:"name"`
	Email                string       `json:"email"`
	PasswordHash         string       `json:"-"` // Never expose in JSON
	Role                 string       `json:"role"`
	OrgName              string       `json:"org_name,omitempty"`
	Website              string       `json:"website,omitempty"`
	OnboardingCompleted  bool         `json:"onboarding_completed"`
	CreatedAt            time.Time    `json:"created_at"`
	UpdatedAt            time.Time    `json:"updated_at"`
	LastLoginAt          sql.NullTime `json:"last_login_at,omitempty"`
}

// IsAdmin returns true if the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsHost returns true if the user has the host role.
func (u *User) IsHost() bool {
	return u.Role == RoleHost
}

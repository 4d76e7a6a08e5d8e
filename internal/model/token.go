// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// APIToken represents a bearer token tied to one user. Only the SHA-256 hash
// is stored; the raw token is shown once at creation time.
type APIToken struct {
	ID         string       `json:"id"`
	UserID     string       `json:"user_id"`
	TokenHash  string       `json:"-"` // Never expose hash in JSON
	Prefix     string       `json:"prefix"`
	LastUsedAt sql.NullTime `json:"last_used_at,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
}

// GenerateToken generates a new random bearer token.
// Returns the raw token (to show the user once) and its prefix.
func GenerateToken() (rawToken string, prefix string) {
	u := uuid.New()
	rawToken = base64.URLEncoding.EncodeToString(u[:])
	prefix = rawToken[:8]
	return rawToken, prefix
}

// HashToken creates a SHA-256 hash of the token for storage.
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

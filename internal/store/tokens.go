// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/htwlabs/eventdesk/internal/model"
)

// CreateAPITokenParams holds the fields for CreateAPIToken.
type CreateAPITokenParams struct {
	ID        string
	UserID    string
	TokenHash string
	Prefix    string
	CreatedAt time.Time
}

// CreateAPIToken inserts a new API token record.
func (q *Queries) CreateAPIToken(ctx context.Context, arg CreateAPITokenParams) (model.APIToken, error) {
	const query = `INSERT INTO api_tokens (id, user_id, token_hash, prefix, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, user_id, token_hash, prefix, last_used_at, created_at`
	var t model.APIToken
	err := q.db.QueryRowContext(ctx, query,
		arg.ID, arg.UserID, arg.TokenHash, arg.Prefix, arg.CreatedAt,
	).Scan(&t.ID, &t.UserID, &t.TokenHash, &t.Prefix, &t.LastUsedAt, &t.CreatedAt)
	return t, err
}

// GetUserByTokenHash resolves a token hash to its owning user.
func (q *Queries) GetUserByTokenHash(ctx context.Context, tokenHash string) (model.User, error) {
	const query = `SELECT users.id, users.external_id, users.name, users.email,
		users.password_hash, users.role, users.org_name, users.website,
		users.onboarding_completed, users.created_at, users.updated_at, users.last_login_at
		FROM users
		JOIN api_tokens ON api_tokens.user_id = users.id
		WHERE api_tokens.token_hash = ?`
	return scanUser(q.db.QueryRowContext(ctx, query, tokenHash))
}

// TouchAPIToken stamps the token's last use.
func (q *Queries) TouchAPIToken(ctx context.Context, tokenHash string, at time.Time) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE api_tokens SET last_used_at = ? WHERE token_hash = ?`, at, tokenHash)
	return err
}

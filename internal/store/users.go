// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/htwlabs/eventdesk/internal/model"
)

const userColumns = `id, external_id, name, email, password_hash, role, org_name, website,
	onboarding_completed, created_at, updated_at, last_login_at`

func scanUser(row interface{ Scan(...any) error }) (model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID, &u.ExternalID, &u.Name, &u.Email, &u.PasswordHash, &u.Role,
		&u.OrgName, &u.Website, &u.OnboardingCompleted,
		&u.CreatedAt, &u.UpdatedAt, &u.LastLoginAt,
	)
	return u, err
}

// CreateUserParams holds the fields for CreateUser.
type CreateUserParams struct {
	ID                  string
	ExternalID          string
	Name                string
	Email               string
	PasswordHash        string
	Role                string
	OrgName             string
	Website             string
	OnboardingCompleted bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// CreateUser inserts a new user and returns it.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (model.User, error) {
	const query = `INSERT INTO users (id, external_id, name, email, password_hash, role, org_name,
		website, onboarding_completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING ` + userColumns
	row := q.db.QueryRowContext(ctx, query,
		arg.ID, arg.ExternalID, arg.Name, arg.Email, arg.PasswordHash, arg.Role,
		arg.OrgName, arg.Website, arg.OnboardingCompleted, arg.CreatedAt, arg.UpdatedAt,
	)
	return scanUser(row)
}

// GetUserByID fetches one user by id.
func (q *Queries) GetUserByID(ctx context.Context, id string) (model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return scanUser(q.db.QueryRowContext(ctx, query, id))
}

// GetUserByExternalID fetches one user by identity-provider subject.
func (q *Queries) GetUserByExternalID(ctx context.Context, externalID string) (model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE external_id = ?`
	return scanUser(q.db.QueryRowContext(ctx, query, externalID))
}

// GetUserByEmail fetches one user by email.
func (q *Queries) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	return scanUser(q.db.QueryRowContext(ctx, query, email))
}

// ListUsersByRole returns all users with the given role, oldest first.
func (q *Queries) ListUsersByRole(ctx context.Context, role string) ([]model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE role = ? ORDER BY created_at`
	rows, err := q.db.QueryContext(ctx, query, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// CountUsers returns the total number of users.
func (q *Queries) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

// SetUserLastLogin stamps the user's last login time.
func (q *Queries) SetUserLastLogin(ctx context.Context, id string, at time.Time) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE users SET last_login_at = ?, updated_at = ? WHERE id = ?`, at, at, id)
	return err
}

// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/htwlabs/eventdesk/internal/auth"
	"github.com/htwlabs/eventdesk/internal/model"
)

// Default seed credentials
const (
	DefaultAdminEmail    = "admin@example.com"
	DefaultAdminPassword = "changeme"
	DefaultAdminName     = "Administrator"

	DefaultHostEmail    = "host@example.com"
	DefaultHostPassword = "changeme"
	DefaultHostName     = "Demo Host"
)

// Seed creates the initial admin and a demo host, each with an API token.
// The raw tokens are logged once so a fresh install is usable immediately.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	// Check if admin user already exists
	_, err := queries.GetUserByEmail(ctx, DefaultAdminEmail)
	if err == nil {
		slog.Info("admin user already exists, skipping seed")
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for admin user: %w", err)
	}

	if err := seedUser(ctx, queries, DefaultAdminEmail, DefaultAdminPassword, DefaultAdminName, model.RoleAdmin); err != nil {
		return err
	}
	if err := seedUser(ctx, queries, DefaultHostEmail, DefaultHostPassword, DefaultHostName, model.RoleHost); err != nil {
		return err
	}

	return nil
}

func seedUser(ctx context.Context, queries *Queries, email, password, name, role string) error {
	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now()
	user, err := queries.CreateUser(ctx, CreateUserParams{
		ID:                  uuid.NewString(),
		ExternalID:          "seed:" + email,
		Name:                name,
		Email:               email,
		PasswordHash:        passwordHash,
		Role:                role,
		OnboardingCompleted: true,
		CreatedAt:           now,
		UpdatedAt:           now,
	})
	if err != nil {
		return fmt.Errorf("creating %s user: %w", role, err)
	}

	rawToken, prefix := model.GenerateToken()
	if _, err := queries.CreateAPIToken(ctx, CreateAPITokenParams{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		TokenHash: model.HashToken(rawToken),
		Prefix:    prefix,
		CreatedAt: now,
	}); err != nil {
		return fmt.Errorf("creating %s token: %w", role, err)
	}

	slog.Info("created seed user",
		"id", user.ID,
		"email", user.Email,
		"role", user.Role,
		"password", password,
		"api_token", rawToken,
	)

	return nil
}

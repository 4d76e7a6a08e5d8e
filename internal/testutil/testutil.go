// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers for the eventdesk project.
package testutil

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/htwlabs/eventdesk/internal/model"
	"github.com/htwlabs/eventdesk/internal/store"

	_ "github.com/mattn/go-sqlite3"
)

// TestLogger creates a silent test logger that only outputs warnings and errors.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// TestLoggerSilent creates a completely silent test logger (error level only).
func TestLoggerSilent() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// TestDB creates a temporary test database with migrations applied.
// Returns the database and a cleanup function that should be deferred.
func TestDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "eventdesk-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	_ = f.Close()

	db, err := store.NewDB(dbPath)
	if err != nil {
		_ = os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}

	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		_ = os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	return db, func() {
		_ = db.Close()
		_ = os.Remove(dbPath)
	}
}

// TestMemoryDB creates an in-memory SQLite database for testing.
// Useful for tests that don't need persistent storage or migrations.
func TestMemoryDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	return db
}

// CreateUser inserts a user with the given role and returns it. Email and
// external id are derived from the name so multiple users stay distinct.
func CreateUser(t *testing.T, db *sql.DB, name, role string) model.User {
	t.Helper()

	q := store.New(db)
	now := time.Now()
	u, err := q.CreateUser(context.Background(), store.CreateUserParams{
		ID:         uuid.NewString(),
		ExternalID: "ext-" + name,
		Email:      name + "@example.com",
		Name:       name,
		Role:       role,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		t.Fatalf("creating test user %s: %v", name, err)
	}
	return u
}

// CreateHost inserts a host user.
func CreateHost(t *testing.T, db *sql.DB, name string) model.User {
	t.Helper()
	return CreateUser(t, db, name, model.RoleHost)
}

// CreateAdmin inserts an admin user.
func CreateAdmin(t *testing.T, db *sql.DB, name string) model.User {
	t.Helper()
	return CreateUser(t, db, name, model.RoleAdmin)
}

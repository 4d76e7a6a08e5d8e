// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication, request
// context handling and rate limiting.
package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/htwlabs/eventdesk/internal/auth"
	"github.com/htwlabs/eventdesk/internal/model"
	"github.com/htwlabs/eventdesk/internal/store"
)

// ContextKey is the type for context keys used by this package.
type ContextKey string

// ContextKeyUser is the context key for the authenticated user.
const ContextKeyUser ContextKey = "user"

// APIError represents a JSON error response for the API.
type APIError struct {
	Error struct {
		Code    string   `json:"code"`
		Message string   `json:"message"`
		Details []string `json:"details,omitempty"`
	} `json:"error"`
}

// WriteAPIError writes a JSON error response.
func WriteAPIError(w http.ResponseWriter, statusCode int, code, message string, details []string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	apiErr := APIError{}
	apiErr.Error.Code = code
	apiErr.Error.Message = message
	apiErr.Error.Details = details

	_ = json.NewEncoder(w).Encode(apiErr)
}

// TokenAuth creates middleware that authenticates requests by bearer token.
// The raw token is hashed and looked up; the owning user lands in the
// request context.
func TokenAuth(db *sql.DB) func(http.Handler) http.Handler {
	queries := store.New(db)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				WriteAPIError(w, http.StatusUnauthorized, "unauthorized",
					"Missing or malformed Authorization header. Use: Bearer <token>", nil)
				return
			}

			tokenHash := model.HashToken(raw)
			user, err := queries.GetUserByTokenHash(r.Context(), tokenHash)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Invalid token", nil)
				} else {
					slog.Error("token lookup failed", "error", err)
					WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to validate token", nil)
				}
				return
			}

			touchToken(queries, tokenHash)

			ctx := context.WithValue(r.Context(), ContextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the raw token from the Authorization header.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// touchToken stamps the token's last use in a background goroutine so the
// request never waits on bookkeeping.
func touchToken(queries *store.Queries, tokenHash string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queries.TouchAPIToken(ctx, tokenHash, time.Now())
	}()
}

// GetUser retrieves the authenticated user from the request context.
// Returns nil if the request is unauthenticated.
func GetUser(r *http.Request) *model.User {
	user, ok := r.Context().Value(ContextKeyUser).(model.User)
	if !ok {
		return nil
	}
	return &user
}

// GetCaller builds the service-layer caller identity from the request
// context. A zero Caller means unauthenticated.
func GetCaller(r *http.Request) auth.Caller {
	user := GetUser(r)
	if user == nil {
		return auth.Caller{}
	}
	return auth.CallerFor(*user)
}

// RequireAdmin creates middleware that rejects non-admin callers. Must run
// after TokenAuth.
func RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetUser(r)
			if user == nil {
				WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Authentication required", nil)
				return
			}
			if !user.IsAdmin() {
				WriteAPIError(w, http.StatusForbidden, "forbidden", "Admin role required", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

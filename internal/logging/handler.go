// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a slog handler that mirrors WARN and ERROR
// records into the database-backed application log, so operational problems
// are queryable next to the data they affected.
package logging

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"

	"github.com/htwlabs/eventdesk/internal/model"
	"github.com/htwlabs/eventdesk/internal/store"
)

// AppLogHandler is a slog.Handler that wraps another handler and also writes
// records at or above its threshold to the app_log table.
type AppLogHandler struct {
	inner   slog.Handler
	queries *store.Queries
	level   slog.Level
}

// NewAppLogHandler creates an AppLogHandler that wraps inner. Records at
// WARN and above are mirrored to the database.
func NewAppLogHandler(inner slog.Handler, db *sql.DB) *AppLogHandler {
	return &AppLogHandler{
		inner:   inner,
		queries: store.New(db),
		level:   slog.LevelWarn,
	}
}

// NewAppLogHandlerWithLevel creates an AppLogHandler with a custom minimum
// mirroring level.
func NewAppLogHandlerWithLevel(inner slog.Handler, db *sql.DB, level slog.Level) *AppLogHandler {
	return &AppLogHandler{
		inner:   inner,
		queries: store.New(db),
		level:   level,
	}
}

// Enabled implements slog.Handler.
func (h *AppLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *AppLogHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}

	if r.Level >= h.level {
		h.writeToAppLog(r)
	}

	return nil
}

// WithAttrs implements slog.Handler.
func (h *AppLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &AppLogHandler{
		inner:   h.inner.WithAttrs(attrs),
		queries: h.queries,
		level:   h.level,
	}
}

// WithGroup implements slog.Handler.
func (h *AppLogHandler) WithGroup(name string) slog.Handler {
	return &AppLogHandler{
		inner:   h.inner.WithGroup(name),
		queries: h.queries,
		level:   h.level,
	}
}

// writeToAppLog persists one record. Uses a background context so the record
// lands even when the request context is already cancelled. Write failures
// are swallowed: logging must never take the caller down.
func (h *AppLogHandler) writeToAppLog(r slog.Record) {
	_ = h.queries.CreateAppLogEntry(context.Background(), store.CreateAppLogEntryParams{
		Level:     slogLevelToAppLevel(r.Level),
		Message:   r.Message,
		Attrs:     extractAttrs(r),
		CreatedAt: r.Time,
	})
}

func slogLevelToAppLevel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return model.AppLogLevelError
	case level >= slog.LevelWarn:
		return model.AppLogLevelWarning
	default:
		return model.AppLogLevelInfo
	}
}

// extractAttrs collects the record's attributes into a JSON object string.
func extractAttrs(r slog.Record) string {
	if r.NumAttrs() == 0 {
		return "{}"
	}

	var sb strings.Builder
	sb.WriteString("{")
	first := true

	r.Attrs(func(a slog.Attr) bool {
		if !first {
			sb.WriteString(",")
		}
		first = false
		sb.WriteString(`"`)
		sb.WriteString(escapeJSON(a.Key))
		sb.WriteString(`":"`)
		sb.WriteString(escapeJSON(a.Value.String()))
		sb.WriteString(`"`)
		return true
	})

	sb.WriteString("}")
	return sb.String()
}

// escapeJSON escapes special characters in a string for JSON.
func escapeJSON(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// App log levels
const (
	AppLogLevelInfo    = "info"
	AppLogLevelWarning = "warning"
	AppLogLevelError   = "error"
)

// AppLogEntry is one application log record mirrored into the database by the
// slog handler. Distinct from the domain audit log: this is operational
// logging, purged on a retention schedule.
type AppLogEntry struct {
	ID        int64
	Level     string
	Message   string
	Attrs     string // JSON string
	CreatedAt time.Time
}

// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

// Package apperr defines the error kinds shared by the lifecycle core and its
// collaborators. Every failure surfaced by a service maps to exactly one kind
// so callers can translate it without string matching.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel error kinds. Services wrap these with context via fmt.Errorf and
// %w; callers test with errors.Is.
var (
	// ErrUnauthenticated means no caller identity could be resolved.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrUnauthorized means the caller is known but lacks the required role
	// or ownership relation.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound means the referenced entity does not exist, or is hidden
	// from the caller as if it did not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidState means the operation is not legal from the entity's
	// current status.
	ErrInvalidState = errors.New("invalid state")

	// ErrPreconditionFailed means a state-legal operation is blocked by a
	// missing dependent fact (e.g. publish without a registration URL).
	ErrPreconditionFailed = errors.New("precondition failed")
)

// ValidationError reports every offending field at once so the caller can
// surface all issues in a single pass rather than one at a time.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Fields, ", "))
}

// Validation builds a ValidationError for the given fields.
func Validation(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// IsValidation reports whether err is a ValidationError and returns it.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

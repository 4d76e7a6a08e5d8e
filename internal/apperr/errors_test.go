// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrUnauthenticated,
		ErrUnauthorized,
		ErrNotFound,
		ErrInvalidState,
		ErrPreconditionFailed,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel %v matches %v", a, b)
			}
		}
	}
}

func TestWrappedSentinelMatches(t *testing.T) {
	err := fmt.Errorf("submitting event abc: %w", ErrInvalidState)
	if !errors.Is(err, ErrInvalidState) {
		t.Error("wrapped error does not match ErrInvalidState")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("wrapped error unexpectedly matches ErrNotFound")
	}
}

func TestValidationCarriesAllFields(t *testing.T) {
	err := Validation("title", "venue", "eventDate")

	wrapped := fmt.Errorf("submit: %w", err)
	ve, ok := IsValidation(wrapped)
	if !ok {
		t.Fatal("IsValidation = false, want true")
	}
	if len(ve.Fields) != 3 {
		t.Fatalf("len(Fields) = %d, want 3", len(ve.Fields))
	}
	if ve.Fields[0] != "title" || ve.Fields[2] != "eventDate" {
		t.Errorf("Fields = %v", ve.Fields)
	}
}

func TestIsValidationRejectsOtherErrors(t *testing.T) {
	if _, ok := IsValidation(ErrInvalidState); ok {
		t.Error("IsValidation matched a sentinel error")
	}
}

// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "testing"

func TestStatusConstants(t *testing.T) {
	tests := []struct {
		name     string
		constant string
		expected string
	}{
		{"draft", StatusDraft, "draft"},
		{"submitted", StatusSubmitted, "submitted"},
		{"changes requested", StatusChangesRequested, "changes_requested"},
		{"resubmitted", StatusResubmitted, "resubmitted"},
		{"approved", StatusApproved, "approved"},
		{"published", StatusPublished, "published"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.constant != tt.expected {
				t.Errorf("constant = %q, want %q", tt.constant, tt.expected)
			}
		})
	}
}

func TestAllEventStatusesClosed(t *testing.T) {
	statuses := AllEventStatuses()
	if len(statuses) != 6 {
		t.Fatalf("len(statuses) = %d, want 6", len(statuses))
	}

	seen := make(map[string]bool)
	for _, s := range statuses {
		if seen[s] {
			t.Errorf("duplicate status: %q", s)
		}
		seen[s] = true
		if !IsValidStatus(s) {
			t.Errorf("IsValidStatus(%q) = false", s)
		}
	}
}

func TestIsValidStatusRejectsOthers(t *testing.T) {
	for _, s := range []string{"", "active", "DRAFT", "rejected", "pending"} {
		if IsValidStatus(s) {
			t.Errorf("IsValidStatus(%q) = true, want false", s)
		}
	}
}

func TestIsEditable(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{StatusDraft, true},
		{StatusChangesRequested, true},
		{StatusSubmitted, false},
		{StatusResubmitted, false},
		{StatusApproved, false},
		{StatusPublished, false},
	}

	for _, tt := range tests {
		e := Event{Status: tt.status}
		if got := e.IsEditable(); got != tt.want {
			t.Errorf("IsEditable(%s) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestIsUnderReview(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{StatusSubmitted, true},
		{StatusResubmitted, true},
		{StatusDraft, false},
		{StatusChangesRequested, false},
		{StatusApproved, false},
		{StatusPublished, false},
	}

	for _, tt := range tests {
		e := Event{Status: tt.status}
		if got := e.IsUnderReview(); got != tt.want {
			t.Errorf("IsUnderReview(%s) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

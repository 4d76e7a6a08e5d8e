// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"strings"
	"testing"
)

func TestGenerateToken(t *testing.T) {
	raw, prefix := GenerateToken()

	if raw == "" {
		t.Fatal("raw token is empty")
	}
	if len(prefix) != 8 {
		t.Errorf("len(prefix) = %d, want 8", len(prefix))
	}
	if !strings.HasPrefix(raw, prefix) {
		t.Error("prefix is not a prefix of the raw token")
	}

	raw2, _ := GenerateToken()
	if raw == raw2 {
		t.Error("two generated tokens are identical")
	}
}

func TestHashTokenDeterministic(t *testing.T) {
	h1 := HashToken("abc")
	h2 := HashToken("abc")
	if h1 != h2 {
		t.Error("hashing is not deterministic")
	}
	if len(h1) != 64 {
		t.Errorf("len(hash) = %d, want 64 hex chars", len(h1))
	}
	if HashToken("abd") == h1 {
		t.Error("different tokens produced the same hash")
	}
}

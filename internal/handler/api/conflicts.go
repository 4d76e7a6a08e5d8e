// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"time"

	"github.com/htwlabs/eventdesk/internal/middleware"
)

// CheckConflicts handles GET /api/v1/conflicts. Probes a (date, venue) slot
// against scheduled events; ?exclude= skips the caller's own event when
// re-checking an existing proposal.
func (h *Handler) CheckConflicts(w http.ResponseWriter, r *http.Request) {
	if middleware.GetCaller(r).IsZero() {
		WriteError(w, http.StatusUnauthorized, "unauthenticated", "Authentication required", nil)
		return
	}

	q := r.URL.Query()
	venue := q.Get("venue")
	if venue == "" {
		WriteBadRequest(w, "Missing venue parameter")
		return
	}
	date, err := time.Parse(time.RFC3339, q.Get("date"))
	if err != nil {
		WriteBadRequest(w, "Invalid date: must be RFC 3339")
		return
	}

	matches, err := h.conflicts.Detect(r.Context(), date, venue, q.Get("exclude"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteSuccess(w, matches, &Meta{Total: int64(len(matches))})
}

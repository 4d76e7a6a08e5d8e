// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package store_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/htwlabs/eventdesk/internal/model"
	"github.com/htwlabs/eventdesk/internal/store"
	"github.com/htwlabs/eventdesk/internal/testutil"
)

func TestEventRoundTripPreservesJSONColumns(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()
	queries := store.New(db)
	host := testutil.CreateHost(t, db, "alice")

	e, err := queries.CreateEvent(ctx, store.CreateEventParams{
		ID:               uuid.NewString(),
		HostID:           host.ID,
		Title:            "Workshop",
		ShortDescription: "desc",
		Capacity:         model.DefaultCapacity,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	e.Formats = []string{"workshop", "talks"}
	e.Checklist = []model.ChecklistItem{
		{ID: uuid.NewString(), Task: "Book room", Section: model.SectionLogistics},
		{ID: uuid.NewString(), Task: "Announce", Section: model.SectionMarketing, Completed: true},
	}
	e.ChecklistTemplate = "workshop"
	e.UpdatedAt = time.Now()
	if err := queries.UpdateEvent(ctx, e); err != nil {
		t.Fatalf("UpdateEvent: %v", err)
	}

	got, err := queries.GetEventByID(ctx, e.ID)
	if err != nil {
		t.Fatalf("GetEventByID: %v", err)
	}
	if len(got.Formats) != 2 || got.Formats[0] != "workshop" {
		t.Errorf("formats = %v", got.Formats)
	}
	if len(got.Checklist) != 2 {
		t.Fatalf("checklist length = %d, want 2", len(got.Checklist))
	}
	if !got.Checklist[1].Completed {
		t.Error("completed flag lost in round trip")
	}
}

func TestGetUserByTokenHash(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()
	queries := store.New(db)
	user := testutil.CreateHost(t, db, "alice")

	raw, prefix := model.GenerateToken()
	if _, err := queries.CreateAPIToken(ctx, store.CreateAPITokenParams{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		TokenHash: model.HashToken(raw),
		Prefix:    prefix,
		CreatedAt: time.Now(),
	}); err != nil {
		t.Fatalf("CreateAPIToken: %v", err)
	}

	got, err := queries.GetUserByTokenHash(ctx, model.HashToken(raw))
	if err != nil {
		t.Fatalf("GetUserByTokenHash: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("user = %q, want %q", got.ID, user.ID)
	}

	_, err = queries.GetUserByTokenHash(ctx, model.HashToken("wrong"))
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("wrong token err = %v, want sql.ErrNoRows", err)
	}
}

func TestAuditEntriesSurviveEventDeletion(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()
	queries := store.New(db)
	host := testutil.CreateHost(t, db, "alice")

	e, err := queries.CreateEvent(ctx, store.CreateEventParams{
		ID:        uuid.NewString(),
		HostID:    host.ID,
		Title:     "Doomed",
		Capacity:  10,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	for _, action := range []string{model.ActionEventCreated, model.ActionEventDeleted} {
		if err := queries.CreateAuditEntry(ctx, store.CreateAuditEntryParams{
			ID:        uuid.NewString(),
			EventID:   e.ID,
			ActorID:   host.ID,
			Action:    action,
			CreatedAt: time.Now(),
		}); err != nil {
			t.Fatalf("CreateAuditEntry: %v", err)
		}
	}

	if err := queries.DeleteEvent(ctx, e.ID); err != nil {
		t.Fatalf("DeleteEvent: %v", err)
	}

	entries, err := queries.ListAuditEntriesByEvent(ctx, e.ID)
	if err != nil {
		t.Fatalf("ListAuditEntriesByEvent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries after event deletion, want 2", len(entries))
	}
	// Newest first.
	if entries[0].Action != model.ActionEventDeleted {
		t.Errorf("latest action = %q, want %q", entries[0].Action, model.ActionEventDeleted)
	}
}

func TestUpsertFormDraftReplacesByKey(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()
	queries := store.New(db)
	user := testutil.CreateHost(t, db, "alice")

	for _, data := range []string{`{"v":1}`, `{"v":2}`} {
		if _, err := queries.UpsertFormDraft(ctx, store.UpsertFormDraftParams{
			ID:        uuid.NewString(),
			UserID:    user.ID,
			Key:       "new-event",
			Data:      data,
			UpdatedAt: time.Now(),
		}); err != nil {
			t.Fatalf("UpsertFormDraft: %v", err)
		}
	}

	d, err := queries.GetFormDraft(ctx, user.ID, "new-event")
	if err != nil {
		t.Fatalf("GetFormDraft: %v", err)
	}
	if d.Data != `{"v":2}` {
		t.Errorf("data = %s, want the second write", d.Data)
	}
}

func TestDeleteStaleFormDrafts(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()
	queries := store.New(db)
	user := testutil.CreateHost(t, db, "alice")

	old := time.Now().Add(-40 * 24 * time.Hour)
	if _, err := queries.UpsertFormDraft(ctx, store.UpsertFormDraftParams{
		ID: uuid.NewString(), UserID: user.ID, Key: "stale", Data: "{}", UpdatedAt: old,
	}); err != nil {
		t.Fatalf("UpsertFormDraft: %v", err)
	}
	if _, err := queries.UpsertFormDraft(ctx, store.UpsertFormDraftParams{
		ID: uuid.NewString(), UserID: user.ID, Key: "fresh", Data: "{}", UpdatedAt: time.Now(),
	}); err != nil {
		t.Fatalf("UpsertFormDraft: %v", err)
	}

	n, err := queries.DeleteStaleFormDrafts(ctx, time.Now().Add(-30*24*time.Hour))
	if err != nil {
		t.Fatalf("DeleteStaleFormDrafts: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted %d drafts, want 1", n)
	}
	if _, err := queries.GetFormDraft(ctx, user.ID, "fresh"); err != nil {
		t.Errorf("fresh draft gone: %v", err)
	}
}

func TestCountEventsByStatusForHost(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()
	queries := store.New(db)
	host := testutil.CreateHost(t, db, "alice")

	for i := 0; i < 3; i++ {
		e, err := queries.CreateEvent(ctx, store.CreateEventParams{
			ID: uuid.NewString(), HostID: host.ID, Title: "E",
			Capacity: 10, CreatedAt: time.Now(), UpdatedAt: time.Now(),
		})
		if err != nil {
			t.Fatalf("CreateEvent: %v", err)
		}
		if i == 0 {
			e.Status = model.StatusPublished
			if err := queries.UpdateEvent(ctx, e); err != nil {
				t.Fatalf("UpdateEvent: %v", err)
			}
		}
	}

	counts, err := queries.CountEventsByStatusForHost(ctx, host.ID)
	if err != nil {
		t.Fatalf("CountEventsByStatusForHost: %v", err)
	}

	got := map[string]int64{}
	for _, c := range counts {
		got[c.Status] = c.Count
	}
	if got[model.StatusDraft] != 2 || got[model.StatusPublished] != 1 {
		t.Errorf("counts = %v, want draft=2 published=1", got)
	}
}

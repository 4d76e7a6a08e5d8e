// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic maintenance: purging stale drafts and
// trimming the application log.
package scheduler

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/htwlabs/eventdesk/internal/drafts"
	"github.com/htwlabs/eventdesk/internal/store"
)

// Config holds retention windows for the maintenance jobs.
type Config struct {
	DraftRetention  time.Duration
	AppLogRetention time.Duration
}

// Scheduler owns the cron instance and its maintenance jobs.
type Scheduler struct {
	queries *store.Queries
	drafts  *drafts.Service
	cron    *cron.Cron
	logger  *slog.Logger
	cfg     Config
}

// New creates a new scheduler instance.
func New(db *sql.DB, logger *slog.Logger, cfg Config) *Scheduler {
	return &Scheduler{
		queries: store.New(db),
		drafts:  drafts.NewService(db),
		cron:    cron.New(),
		logger:  logger,
		cfg:     cfg,
	}
}

// Start registers the maintenance jobs and begins the cron loop. Purges run
// nightly; a missed run only delays cleanup, never loses data.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("30 3 * * *", s.purgeStaleDrafts); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("45 3 * * *", s.trimAppLog); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) purgeStaleDrafts() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := s.drafts.PurgeStale(ctx, s.cfg.DraftRetention)
	if err != nil {
		s.logger.Error("failed to purge stale drafts", "error", err)
		return
	}
	if n > 0 {
		s.logger.Info("purged stale drafts", "count", n)
	}
}

func (s *Scheduler) trimAppLog() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-s.cfg.AppLogRetention)
	n, err := s.queries.DeleteOldAppLogEntries(ctx, cutoff)
	if err != nil {
		s.logger.Error("failed to trim app log", "error", err)
		return
	}
	if n > 0 {
		s.logger.Info("trimmed app log", "count", n)
	}
}

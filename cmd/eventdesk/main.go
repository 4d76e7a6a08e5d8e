// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

// Command eventdesk runs the event submission and review service.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/htwlabs/eventdesk/internal/config"
	"github.com/htwlabs/eventdesk/internal/handler/api"
	"github.com/htwlabs/eventdesk/internal/lifecycle"
	"github.com/htwlabs/eventdesk/internal/logging"
	"github.com/htwlabs/eventdesk/internal/middleware"
	"github.com/htwlabs/eventdesk/internal/scheduler"
	"github.com/htwlabs/eventdesk/internal/store"
)

// Build-time version information, injected via -ldflags.
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "eventdesk - event submission and review service\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  EVENTDESK_DB_PATH              SQLite database path (default: ./data/eventdesk.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  EVENTDESK_SERVER_PORT          Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  EVENTDESK_ENV                  Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  EVENTDESK_REQUIRE_LUMA_DOMAIN  Restrict registration URLs to lu.ma (default: true)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  EVENTDESK_DO_SEED              Seed demo accounts on startup (default: false)\n")
	}

	flag.Parse()

	if *showVersion {
		_, _ = fmt.Printf("eventdesk %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}()

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Re-create the logger with the app-log mirror now that the database is up
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewAppLogHandler(textHandler, db))
	slog.SetDefault(logger)

	if cfg.DoSeed {
		if err := store.Seed(context.Background(), db); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
		slog.Info("database seeded")
	}

	sched := scheduler.New(db, logger, scheduler.Config{
		DraftRetention:  time.Duration(cfg.DraftRetentionDays) * 24 * time.Hour,
		AppLogRetention: time.Duration(cfg.AppLogRetentionDays) * 24 * time.Hour,
	})
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	apiHandler := api.NewHandler(db, lifecycle.Config{RequireLumaDomain: cfg.RequireLumaDomain})

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))

	r.Route("/api/v1", func(r chi.Router) {
		rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		r.Use(rateLimiter.Middleware())

		// Public endpoints (no authentication required)
		r.Get("/status", apiHandler.Status)

		// Authenticated endpoints
		r.Group(func(r chi.Router) {
			r.Use(middleware.TokenAuth(db))

			r.Get("/events", apiHandler.ListEvents)
			r.Post("/events", apiHandler.CreateEvent)
			r.Get("/events/stats", apiHandler.EventStats)
			r.Get("/events/{id}", apiHandler.GetEvent)
			r.Patch("/events/{id}", apiHandler.UpdateEvent)
			r.Delete("/events/{id}", apiHandler.DeleteEvent)
			r.Post("/events/{id}/submit", apiHandler.SubmitEvent)
			r.Put("/events/{id}/registration-url", apiHandler.SetRegistrationURL)
			r.Put("/events/{id}/checklist/{itemID}", apiHandler.ToggleChecklistItem)

			r.Get("/events/{id}/feedback", apiHandler.ListThreads)
			r.Post("/feedback/{threadID}/comments", apiHandler.AddComment)

			r.Get("/events/{id}/audit", apiHandler.ListAudit)
			r.Get("/conflicts", apiHandler.CheckConflicts)

			r.Get("/notifications", apiHandler.ListNotifications)
			r.Get("/notifications/unread-count", apiHandler.UnreadNotificationCount)
			r.Post("/notifications/{id}/read", apiHandler.MarkNotificationRead)

			r.Put("/drafts/forms/{key}", apiHandler.SaveFormDraft)
			r.Get("/drafts/forms/{key}", apiHandler.GetFormDraft)
			r.Delete("/drafts/forms/{key}", apiHandler.ClearFormDraft)

			// Admin-only endpoints
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin())

				r.Post("/events/{id}/request-changes", apiHandler.RequestChanges)
				r.Post("/events/{id}/approve", apiHandler.ApproveEvent)
				r.Post("/events/{id}/publish", apiHandler.PublishEvent)
				r.Put("/events/{id}/status", apiHandler.ForceStatus)
				r.Patch("/events/{id}/admin", apiHandler.AdminUpdateEvent)
				r.Post("/events/{id}/checklist/regenerate", apiHandler.RegenerateChecklist)

				r.Post("/events/{id}/feedback", apiHandler.OpenThread)
				r.Post("/feedback/{threadID}/resolve", apiHandler.ResolveThread)

				r.Put("/events/{id}/feedback-draft", apiHandler.SaveFeedbackDraft)
				r.Get("/events/{id}/feedback-draft", apiHandler.GetFeedbackDraft)
				r.Delete("/events/{id}/feedback-draft", apiHandler.ClearFeedbackDraft)
			})
		})
	})
	slog.Info("REST API v1 mounted at /api/v1")

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/danielhkuo/voties/archive"
	"github.com/danielhkuo/voties/auth"
	"github.com/danielhkuo/voties/cliparse"
	"github.com/danielhkuo/voties/db"
	"github.com/danielhkuo/voties/middleware"
	"github.com/danielhkuo/voties/router"
	"github.com/danielhkuo/voties/sim"
	"github.com/danielhkuo/voties/stream"
	"github.com/danielhkuo/voties/tuning"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	// World tuning
	t := tuning.Default()
	if cfg.TuningPath != "" {
		t, err = tuning.Load(cfg.TuningPath)
		if err != nil {
			slog.Error("tuning load failed", "path", cfg.TuningPath, "error", err)
			os.Exit(1)
		}
	}

	runner, err := sim.NewRunner(t, logger)
	if err != nil {
		slog.Error("simulation setup failed", "error", err)
		os.Exit(1)
	}

	// Connect to the history database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	// Observers of held elections
	store := db.NewHistoryStore(dbConn, logger)
	defer store.Close()
	runner.Subscribe(store)

	hub := stream.NewHub(logger)
	defer hub.Close()
	runner.Subscribe(hub)

	if cfg.ArchiveDir != "" {
		if err := os.MkdirAll(cfg.ArchiveDir, 0o755); err != nil {
			slog.Error("archive directory unavailable", "dir", cfg.ArchiveDir, "error", err)
			os.Exit(1)
		}
		arch := archive.NewWriter(cfg.ArchiveDir, "", logger)
		defer func() {
			if err := arch.Close(); err != nil {
				slog.Error("archive close failed", "error", err)
			}
		}()
		runner.Subscribe(arch)
		slog.Info("Archiving held elections", "dir", cfg.ArchiveDir)
	}

	slog.Info("Admin key", "world", runner.Name(), "key", auth.GenerateAdminKey(runner.Name(), cfg.AdminKeySalt))

	// Create router
	mux := router.NewRouter(runner, store, hub, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	simDone := make(chan struct{})
	go func() {
		defer close(simDone)
		if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("simulation stopped", "error", err)
		}
	}()

	go func() {
		// Wait for Ctrl-C signal
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		hub.Close()
		server.Shutdown(shutdownCtx)
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
		stop()
	} else {
		slog.Info("Server closed", "error", err)
	}

	// No more elections close after this, so the deferred observer Close
	// calls see every held election.
	<-simDone
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

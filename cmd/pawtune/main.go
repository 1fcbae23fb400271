// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the pawtune studio server.
// It loads configuration, connects to storage, wires the generation
// pipeline and starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"pawtune/internal/ai"
	"pawtune/internal/config"
	"pawtune/internal/database"
	"pawtune/internal/handlers"
	"pawtune/internal/history"
	"pawtune/internal/kv"
	"pawtune/internal/middleware"
	"pawtune/internal/router"
	"pawtune/internal/session"
	"pawtune/internal/storage"
	"pawtune/internal/storyboard"
	"pawtune/internal/studio"
)

func main() {
	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: text in development, JSON everywhere else.
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, opts)
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"kv_backend", cfg.KVBackend,
	)

	// Valkey backs sessions unless everything runs in memory.
	var valkeyClient *redis.Client
	if cfg.KVBackend != kv.BackendMemory {
		valkeyClient, err = kv.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword, cfg.ValkeyDB)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()
	}

	// Key-value store for history and saved credentials.
	var store kv.Store
	switch cfg.KVBackend {
	case kv.BackendPostgres:
		db, err := openPostgres(cfg)
		if err != nil {
			slog.Error("failed to prepare database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		store = kv.NewPostgresStore(db)
	case kv.BackendMemory:
		slog.Warn("memory backend selected, history and sessions are lost on restart")
		store = kv.NewMemoryStore()
	default:
		store = kv.NewValkeyStore(valkeyClient)
	}
	store = kv.WithQuota(store, cfg.HistoryQuotaBytes)

	// In non-development environments, mark cookies as Secure (HTTPS-only).
	secureCookies := !cfg.IsDev()
	var sessionStore *session.Store
	if valkeyClient != nil {
		sessionStore = session.NewStore(valkeyClient, secureCookies, cfg.SessionTTL)
	} else {
		sessionStore = session.NewMemoryStore(secureCookies, cfg.SessionTTL)
	}

	gemini := ai.New(ai.Config{
		BaseURL:        cfg.GeminiBaseURL,
		Model:          cfg.GeminiModel,
		FastModel:      cfg.GeminiFastModel,
		ImageModel:     cfg.GeminiImageModel,
		ThinkingBudget: cfg.GeminiThinkingBudget,
		ImageSize:      cfg.ImageSize,
		Timeout:        cfg.GeminiTimeout,
	})
	if cfg.GeminiAPIKey == "" {
		slog.Warn("GEMINI_API_KEY not set, clients must supply their own key")
	}

	// S3-compatible image archive (optional; the studio works without it).
	var archiver studio.Archiver
	if cfg.S3Enabled() {
		storageClient, err := storage.New(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicURL)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		archiver = storage.NewArchive(storageClient)
		slog.Info("s3 image archive enabled", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		slog.Info("s3 storage not configured, images are returned inline only")
	}

	svc := studio.New(studio.Deps{
		Generator:   gemini,
		Renderer:    storyboard.NewRenderer(gemini, cfg.ImageLimit, cfg.ImageInterval),
		Archiver:    archiver,
		History:     history.NewStore(store, cfg.HistoryLimit),
		Credentials: history.NewCredentialStore(store, cfg.CredentialSecret),
		DefaultKey:  cfg.GeminiAPIKey,
	})

	r := router.New(router.Options{
		Sessions:      sessionStore,
		Studio:        handlers.NewStudio(svc, sessionStore),
		GenerateLimit: middleware.NewRateLimiter(cfg.RateLimitGenerate, cfg.RateLimitWindow),
		SecureCookies: secureCookies,
	})

	// WriteTimeout must cover a full generation: the structured call plus
	// the storyboard fan-out, each bounded by the Gemini client timeout.
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      2*cfg.GeminiTimeout + 30*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// In-flight generations get a bounded chance to finish.
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

// openPostgres connects and runs pending migrations.
func openPostgres(cfg *config.Config) (*sql.DB, error) {
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		return nil, err
	}
	if _, err := database.Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

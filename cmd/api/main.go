// Copyright (c) 2026 Plinth. All rights reserved.
// Author: engineering@plinth.app

// Command api is the entry point for the Plinth HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Open SQLite database and run migrations (idempotent).
//  4. Connect to Redis (optional; in-memory fallback when unset).
//  5. Wire HTTP handlers.
//  6. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/plinth-app/plinth/internal/api"
	"github.com/plinth-app/plinth/internal/coach"
	"github.com/plinth-app/plinth/internal/drafts"
	"github.com/plinth-app/plinth/internal/hub"
	"github.com/plinth-app/plinth/internal/memory"
	"github.com/plinth-app/plinth/internal/platform/config"
	"github.com/plinth-app/plinth/internal/platform/constants"
	redisstore "github.com/plinth-app/plinth/internal/platform/redis"
	"github.com/plinth-app/plinth/internal/platform/sec"
	"github.com/plinth-app/plinth/internal/platform/sqlite"
	"github.com/plinth-app/plinth/internal/strategy"
	"github.com/plinth-app/plinth/internal/users/auth"
	"github.com/plinth-app/plinth/internal/users/onboarding"
	"github.com/plinth-app/plinth/internal/voice"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[Plinth] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. SQLite ─────────────────────────────────────────────────────────
	db, err := sqlite.Open(startupCtx, cfg.DatabasePath, log)
	must(log, err, "open sqlite database")
	defer func() {
		log.Info("closing sqlite database")
		if cerr := db.Close(); cerr != nil {
			log.Error("sqlite close error", slog.Any("error", cerr))
		}
	}()

	// ── 4. Rejection Store (Redis optional) ───────────────────────────────
	var rejectionStore hub.RejectionStore = hub.NewMemoryRejectionStore()
	var checkCache func() error

	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()

		rejectionStore = hub.NewRedisRejectionStore(rdb)
		checkCache = func() error {
			return redisstore.Ping(context.Background(), rdb)
		}
	} else {
		log.Info("redis not configured, rejection counters are in-memory only")
	}

	// ── 5. Auth Service ───────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTSecret, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 6. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return sqlite.Ping(context.Background(), db)
		},
		CheckCache: checkCache,
	}, log)

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewUserRepository(db)
	authService := auth.NewService(userRepository, jwtSvc, log)
	authHandler := auth.NewHandler(authService)

	onboardingRepository := onboarding.NewSQLiteRepository(db)
	onboardingService := onboarding.NewService(onboardingRepository)
	onboardingHandler := onboarding.NewHandler(onboardingService)

	hubService := hub.NewService(onboardingService, rejectionStore, log)
	hubHandler := hub.NewHandler(hubService)

	memoryHandler := memory.NewHandler(memory.NewService(onboardingService, log))
	strategyHandler := strategy.NewHandler(strategy.NewService(onboardingService, log))
	voiceHandler := voice.NewHandler(voice.NewService(onboardingService, log))
	draftsHandler := drafts.NewHandler(drafts.NewService(onboardingService, log))
	coachHandler := coach.NewHandler(coach.NewService(onboardingService, log))

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Auth:       authHandler,
		Onboarding: onboardingHandler,
		Hub:        hubHandler,
		Memory:     memoryHandler,
		Strategy:   strategyHandler,
		Voice:      voiceHandler,
		Drafts:     draftsHandler,
		Coach:      coachHandler,
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, jwtSvc, handlers)

	// ── 9. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}

// Copyright (c) 2026 Plinth. All rights reserved.
// Author: engineering@plinth.app

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/plinth-app/plinth/internal/coach"
	"github.com/plinth-app/plinth/internal/drafts"
	"github.com/plinth-app/plinth/internal/hub"
	"github.com/plinth-app/plinth/internal/memory"
	"github.com/plinth-app/plinth/internal/platform/config"
	"github.com/plinth-app/plinth/internal/platform/constants"
	"github.com/plinth-app/plinth/internal/platform/middleware"
	"github.com/plinth-app/plinth/internal/strategy"
	"github.com/plinth-app/plinth/internal/users/auth"
	"github.com/plinth-app/plinth/internal/users/onboarding"
	"github.com/plinth-app/plinth/internal/voice"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles registration, login, refresh, and the session snapshot.
	Auth *auth.Handler

	// Onboarding stores and returns the questionnaire blob.
	Onboarding *onboarding.Handler

	// Hub serves the daily brief bundle and rejection tracking.
	Hub *hub.Handler

	// Memory serves the derived territory-memory views.
	Memory *memory.Handler

	// Strategy serves the positioning/focus snapshot.
	Strategy *strategy.Handler

	// Voice serves the tone/voice profile.
	Voice *voice.Handler

	// Drafts generates and validates templated drafts.
	Drafts *drafts.Handler

	// Coach answers keyword-matched chat messages.
	Coach *coach.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.TraceID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// The hub, coach, and session routes predate the /api/v2 prefix and
	// keep their legacy paths for frontend compatibility.
	r.Route("/api", func(api chi.Router) {
		api.With(middleware.RequireAuth).Get("/session", h.Auth.Session)
		api.Mount("/hub", h.Hub.Routes())
		api.Mount("/coach", h.Coach.Routes())

		api.Route("/v2", func(v2 chi.Router) {
			v2.Mount("/auth", h.Auth.Routes())
			v2.Mount("/onboarding", h.Onboarding.Routes())
			v2.Mount("/strategy", h.Strategy.Routes())
			v2.Mount("/voice", h.Voice.Routes())
			v2.Mount("/drafts", h.Drafts.Routes())
			h.Memory.Register(v2)
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Router exposes the composed handler, primarily for httptest servers.
func (s *Server) Router() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}

// Copyright (c) 2026 Plinth. All rights reserved.
// Author: engineering@plinth.app

package memory

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/plinth-app/plinth/internal/platform/middleware"
	requestutil "github.com/plinth-app/plinth/internal/platform/request"
	"github.com/plinth-app/plinth/internal/platform/respond"
)

// # Definitions & Constructors

// Handler implements the memory-view HTTP endpoints.
type Handler struct {
	memoryService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{memoryService: service}
}

// Register attaches the memory-view routes to an existing router.
//
// These routes live at three different prefixes under /api/v2, so the
// handler registers onto the parent router instead of mounting a subtree.
//
// # Endpoints
//   - GET /memory/state         : Reinforcement state per territory.
//   - GET /reinforcement/counts : Per-territory tallies.
//   - GET /territory/coverage   : Coverage view across territories.
func (handler *Handler) Register(router chi.Router) {
	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Get("/memory/state", handler.state)
		protected.Get("/reinforcement/counts", handler.reinforcementCounts)
		protected.Get("/territory/coverage", handler.territoryCoverage)
	})
}

/*
State returns the territory reinforcement state.

GET /api/v2/memory/state

Response:
  - 200: {personalized, entries, message?}
  - 401: ErrUnauthorized: Missing or invalid bearer token
*/
func (handler *Handler) state(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	state, err := handler.memoryService.State(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, request, state)
}

/*
ReinforcementCounts returns per-territory reinforcement tallies.

GET /api/v2/reinforcement/counts

Response:
  - 200: {counts: [...]}
  - 401: ErrUnauthorized: Missing or invalid bearer token
*/
func (handler *Handler) reinforcementCounts(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	counts, err := handler.memoryService.ReinforcementCounts(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, request, map[string]any{"counts": counts})
}

/*
TerritoryCoverage returns the coverage view across territories.

GET /api/v2/territory/coverage

Response:
  - 200: {coverage: [...]}
  - 401: ErrUnauthorized: Missing or invalid bearer token
*/
func (handler *Handler) territoryCoverage(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	coverage, err := handler.memoryService.TerritoryCoverage(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, request, map[string]any{"coverage": coverage})
}

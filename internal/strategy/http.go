// Copyright (c) 2026 Plinth. All rights reserved.
// Author: engineering@plinth.app

package strategy

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/plinth-app/plinth/internal/platform/middleware"
	requestutil "github.com/plinth-app/plinth/internal/platform/request"
	"github.com/plinth-app/plinth/internal/platform/respond"
)

// Handler implements the strategy HTTP endpoint.
type Handler struct {
	strategyService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{strategyService: service}
}

// Routes returns a [chi.Router] with the strategy route.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireAuth)
	router.Get("/", handler.snapshot)

	return router
}

/*
Snapshot returns the positioning/focus view.

GET /api/v2/strategy

Response:
  - 200: {personalized, positioning, focus_areas, next_actions, audience}
  - 401: ErrUnauthorized: Missing or invalid bearer token
*/
func (handler *Handler) snapshot(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	snapshot, err := handler.strategyService.Snapshot(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, request, snapshot)
}

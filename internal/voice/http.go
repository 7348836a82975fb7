// Copyright (c) 2026 Plinth. All rights reserved.
// Author: engineering@plinth.app

package voice

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/plinth-app/plinth/internal/platform/middleware"
	requestutil "github.com/plinth-app/plinth/internal/platform/request"
	"github.com/plinth-app/plinth/internal/platform/respond"
)

// Handler implements the voice HTTP endpoint.
type Handler struct {
	voiceService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{voiceService: service}
}

// Routes returns a [chi.Router] with the voice route.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireAuth)
	router.Get("/profile", handler.profile)

	return router
}

/*
Profile returns the tone/voice view.

GET /api/v2/voice/profile

Response:
  - 200: {personalized, tone, sample_phrases, boundaries}
  - 401: ErrUnauthorized: Missing or invalid bearer token
*/
func (handler *Handler) profile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.voiceService.Profile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, request, profile)
}

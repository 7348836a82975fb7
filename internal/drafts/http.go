// Copyright (c) 2026 Plinth. All rights reserved.
// Author: engineering@plinth.app

package drafts

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/plinth-app/plinth/internal/platform/middleware"
	requestutil "github.com/plinth-app/plinth/internal/platform/request"
	"github.com/plinth-app/plinth/internal/platform/respond"
	"github.com/plinth-app/plinth/internal/platform/validate"
)

// Handler implements the draft HTTP endpoints.
type Handler struct {
	draftService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{draftService: service}
}

// Routes returns a [chi.Router] with the draft routes.
//
// Only generation needs a bearer token; validation is stateless and
// reads nothing user-specific.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Post("/generate", handler.generate)
	})
	router.Post("/validate", handler.validateDraft)

	return router
}

// # Request DTOs

type generateRequest struct {
	Topic string `json:"topic"`
}

type validateRequest struct {
	Draft string `json:"draft"`
}

// # Endpoint Implementations

/*
Generate produces a templated draft.

POST /api/v2/drafts/generate

Request:
  - Body: {"topic": "..."} (topic optional)

Response:
  - 200: {personalized, topic, body, tone}
  - 401: ErrUnauthorized: Missing or invalid bearer token
*/
func (handler *Handler) generate(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload generateRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	draft, err := handler.draftService.Generate(request.Context(), userID, payload.Topic)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, request, draft)
}

/*
Validate returns static quality scores for a draft.

POST /api/v2/drafts/validate

Request:
  - Body: {"draft": "..."}

Response:
  - 200: {clarity, voice_fit, evidence, word_count, verdict}
  - 400: ErrValidation: Empty draft
*/
func (handler *Handler) validateDraft(writer http.ResponseWriter, request *http.Request) {
	var payload validateRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	scores, err := handler.draftService.Validate(request.Context(), payload.Draft)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, request, scores)
}

// Copyright (c) 2026 Plinth. All rights reserved.
// Author: engineering@plinth.app

package onboarding

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/plinth-app/plinth/internal/platform/middleware"
	requestutil "github.com/plinth-app/plinth/internal/platform/request"
	"github.com/plinth-app/plinth/internal/platform/respond"
	"github.com/plinth-app/plinth/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the onboarding HTTP endpoints.
type Handler struct {
	onboardingService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{onboardingService: service}
}

// Routes returns a [chi.Router] configured with onboarding routes.
//
// # Endpoints
//   - POST /complete : Stores the questionnaire answers.
//   - GET  /         : Returns the stored answers (or null).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireAuth)
	router.Post("/complete", handler.complete)
	router.Get("/", handler.get)

	return router
}

/*
Complete stores the authenticated user's questionnaire answers.

POST /api/v2/onboarding/complete

Description: Accepts any non-empty JSON mapping and stores it verbatim.
Downstream builders treat every field as optional.

Request:
  - Body: free-form JSON object

Response:
  - 200: Acknowledgement with the stored flag state
  - 400: ErrInvalidJSON: Body is not a JSON object, or is empty
  - 401: ErrUnauthorized: Missing or invalid bearer token
*/
func (handler *Handler) complete(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload Profile
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := handler.onboardingService.Complete(request.Context(), userID, payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, request, map[string]any{
		"onboarding_completed": true,
		"flags": Flags{
			CompletedQuestionnaire: true,
			SelectedTone:           true,
			ReviewedBrief:          false,
		},
	})
}

/*
Get returns the authenticated user's stored onboarding answers.

GET /api/v2/onboarding

Response:
  - 200: The stored mapping, or null when never completed (or corrupt)
  - 401: ErrUnauthorized: Missing or invalid bearer token
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.onboardingService.Get(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, request, map[string]any{
		"onboarding_data":      profile,
		"onboarding_completed": profile != nil,
	})
}

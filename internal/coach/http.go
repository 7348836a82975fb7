// Copyright (c) 2026 Plinth. All rights reserved.
// Author: engineering@plinth.app

package coach

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/plinth-app/plinth/internal/platform/middleware"
	requestutil "github.com/plinth-app/plinth/internal/platform/request"
	"github.com/plinth-app/plinth/internal/platform/respond"
	"github.com/plinth-app/plinth/internal/platform/validate"
)

// Handler implements the coach chat HTTP endpoint.
type Handler struct {
	coachService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{coachService: service}
}

// Routes returns a [chi.Router] with the chat route.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireAuth)
	router.Post("/chat", handler.chat)

	return router
}

type chatRequest struct {
	Message string `json:"message"`

	// Context is accepted for forward compatibility but unused by the
	// keyword rules.
	Context map[string]any `json:"context,omitempty"`
}

/*
Chat answers a coaching message.

POST /api/coach/chat

Request:
  - Body: {"message": "...", "context": {...}?}

Response:
  - 200: {message, topic, suggestions}
  - 400: ErrValidation: Empty message
  - 401: ErrUnauthorized: Missing or invalid bearer token
*/
func (handler *Handler) chat(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload chatRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	reply, err := handler.coachService.Chat(request.Context(), userID, payload.Message)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, request, reply)
}

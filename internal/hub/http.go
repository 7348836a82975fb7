// Copyright (c) 2026 Plinth. All rights reserved.
// Author: engineering@plinth.app

package hub

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/plinth-app/plinth/internal/platform/middleware"
	requestutil "github.com/plinth-app/plinth/internal/platform/request"
	"github.com/plinth-app/plinth/internal/platform/respond"
	"github.com/plinth-app/plinth/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the Daily Creative Hub HTTP endpoints.
type Handler struct {
	hubService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{hubService: service}
}

// Routes returns a [chi.Router] configured with hub routes.
//
// # Endpoints
//   - GET  /today            : Daily brief bundle.
//   - GET  /brief            : Standalone brief(s).
//   - POST /brief/reject     : Record a rejection.
//   - GET  /brief/rejections : Today's rejection state.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireAuth)
	router.Get("/today", handler.today)
	router.Get("/brief", handler.briefs)
	router.Post("/brief/reject", handler.reject)
	router.Get("/brief/rejections", handler.rejections)

	return router
}

// # Request DTOs

type rejectRequest struct {
	Topic string `json:"topic"`
}

// # Endpoint Implementations

/*
Today returns the Daily Creative Hub bundle.

GET /api/hub/today

Response:
  - 200: {personalized, date, brief, memory, focus}
  - 401: ErrUnauthorized: Missing or invalid bearer token
*/
func (handler *Handler) today(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	bundle, err := handler.hubService.Today(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, request, bundle)
}

/*
Briefs returns standalone generated briefs.

GET /api/hub/brief?count=3&exclude_topics=a,b

Query:
  - count: number of briefs, clamped to [1, 5], default 3
  - exclude_topics: comma-separated topics to skip (previously rejected)

Response:
  - 200: {briefs: [...], count}
  - 401: ErrUnauthorized: Missing or invalid bearer token
*/
func (handler *Handler) briefs(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	count, _ := strconv.Atoi(request.URL.Query().Get(FieldCount))

	var excluded []string
	if raw := request.URL.Query().Get(FieldExcludeTopics); raw != "" {
		for _, topic := range strings.Split(raw, ",") {
			if topic = strings.TrimSpace(topic); topic != "" {
				excluded = append(excluded, topic)
			}
		}
	}

	briefs, err := handler.hubService.Briefs(request.Context(), userID, count, excluded)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, request, map[string]any{
		"briefs": briefs,
		"count":  len(briefs),
	})
}

/*
Reject records a brief rejection for today.

POST /api/hub/brief/reject

Request:
  - Body: {"topic": "..."}

Response:
  - 200: {rejected_topics, rejections_today, alternatives_remaining}
  - 400: ErrValidation: Empty topic, or daily cap already reached
  - 401: ErrUnauthorized: Missing or invalid bearer token
*/
func (handler *Handler) reject(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload rejectRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	state, err := handler.hubService.RejectBrief(request.Context(), userID, strings.TrimSpace(payload.Topic))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, request, state)
}

/*
Rejections returns today's rejection state.

GET /api/hub/brief/rejections

Response:
  - 200: Zero state when nothing was rejected today
  - 401: ErrUnauthorized: Missing or invalid bearer token
*/
func (handler *Handler) rejections(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	state, err := handler.hubService.Rejections(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, request, state)
}

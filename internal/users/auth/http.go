// Copyright (c) 2026 Plinth. All rights reserved.
// Author: engineering@plinth.app

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/plinth-app/plinth/internal/platform/middleware"
	requestutil "github.com/plinth-app/plinth/internal/platform/request"
	"github.com/plinth-app/plinth/internal/platform/respond"
	"github.com/plinth-app/plinth/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the authentication HTTP endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with auth routes.
//
// # Endpoints
//   - POST /register : Creates an account, returns a token pair.
//   - POST /login    : Issues a fresh token pair.
//   - POST /refresh  : Exchanges a refresh token for a new pair.
//   - GET  /me       : Returns the current user (bearer required).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Get("/me", handler.me)
	})

	return router
}

// # Request DTOs

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// # Endpoint Implementations

/*
Register creates a new account and signs the user in.

POST /api/v2/auth/register

Request:
  - Body: {"email": "...", "password": "..."}

Response:
  - 201: User view plus {access_token, refresh_token, token_type, expires_in}
  - 400: ErrValidation: Malformed email or short password
  - 409: ErrConflict: Email already registered
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var payload credentialsRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	result, err := handler.authService.Register(request.Context(), payload.Email, payload.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, request, result)
}

/*
Login authenticates by email and password.

POST /api/v2/auth/login

Response:
  - 200: User view plus a fresh token pair
  - 400: ErrValidation: Missing fields
  - 401: ErrUnauthorized: Unknown email or wrong password (generic message)
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var payload credentialsRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.
		Required(FieldEmail, payload.Email).
		Required(FieldPassword, payload.Password)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.Login(request.Context(), payload.Email, payload.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, request, result)
}

/*
Refresh exchanges a refresh token for a brand-new token pair.

POST /api/v2/auth/refresh

Response:
  - 200: {access_token, refresh_token, token_type, expires_in}
  - 400: ErrValidation: Missing refresh_token field
  - 401: ErrUnauthorized: Invalid, expired, or wrong-type token
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	var payload refreshRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldRefreshToken, payload.RefreshToken)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	pair, err := handler.authService.Refresh(request.Context(), payload.RefreshToken)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, request, pair)
}

/*
Me returns the authenticated user's account view.

GET /api/v2/auth/me

Response:
  - 200: User id, email, onboarding flags, onboarding_completed, created_at
  - 401: ErrUnauthorized: Missing or invalid bearer token
  - 404: ErrNotFound: Account row no longer exists
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Me(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, request, map[string]any{FieldUser: user})
}

/*
Session returns the onboarding progress snapshot for the current user.

GET /api/session

Description: Mounted outside the /api/v2 tree; exposed separately so the
router can attach it at the legacy path.

Response:
  - 200: {user_id, questionnaire_complete, tone_complete, brief_reviewed, onboarding_completed}
  - 401: ErrUnauthorized: Missing or invalid bearer token
*/
func (handler *Handler) Session(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	state, err := handler.authService.Session(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, request, state)
}

// Copyright (c) 2026 Plinth. All rights reserved.
// Author: engineering@plinth.app

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plinth-app/plinth/internal/api"
	"github.com/plinth-app/plinth/internal/coach"
	"github.com/plinth-app/plinth/internal/drafts"
	"github.com/plinth-app/plinth/internal/hub"
	"github.com/plinth-app/plinth/internal/memory"
	"github.com/plinth-app/plinth/internal/platform/config"
	"github.com/plinth-app/plinth/internal/platform/sec"
	"github.com/plinth-app/plinth/internal/platform/sqlite"
	"github.com/plinth-app/plinth/internal/strategy"
	"github.com/plinth-app/plinth/internal/users/auth"
	"github.com/plinth-app/plinth/internal/users/onboarding"
	"github.com/plinth-app/plinth/internal/voice"
)

// envelope mirrors the uniform response wrapper for test decoding.
type envelope struct {
	OK   bool            `json:"ok"`
	Data json.RawMessage `json:"data"`
	Err  struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta struct {
		TraceID string `json:"trace_id"`
	} `json:"meta"`
}

// newTestServer wires a full server against an in-memory database.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	db, err := sqlite.Open(ctx, ":memory:", logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	jwtSvc, err := sec.NewTokenService("e2e-test-secret", "plinth.app")
	require.NoError(t, err)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error { return sqlite.Ping(context.Background(), db) },
	}, logger)

	userRepository := auth.NewUserRepository(db)
	authService := auth.NewService(userRepository, jwtSvc, logger)

	onboardingService := onboarding.NewService(onboarding.NewSQLiteRepository(db))
	hubService := hub.NewService(onboardingService, hub.NewMemoryRejectionStore(), logger)

	handlers := api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Auth:       auth.NewHandler(authService),
		Onboarding: onboarding.NewHandler(onboardingService),
		Hub:        hub.NewHandler(hubService),
		Memory:     memory.NewHandler(memory.NewService(onboardingService, logger)),
		Strategy:   strategy.NewHandler(strategy.NewService(onboardingService, logger)),
		Voice:      voice.NewHandler(voice.NewService(onboardingService, logger)),
		Drafts:     drafts.NewHandler(drafts.NewService(onboardingService, logger)),
		Coach:      coach.NewHandler(coach.NewService(onboardingService, logger)),
	}

	cfg := &config.Config{
		ServerPort:  "0",
		Environment: "development",
		JWTSecret:   "e2e-test-secret",
	}

	server := httptest.NewServer(api.NewServer(ctx, cfg, logger, jwtSvc, handlers).Router())
	t.Cleanup(server.Close)

	return server
}

// call performs a JSON request and decodes the envelope.
func call(t *testing.T, server *httptest.Server, method, path, token string, body any) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	request, err := http.NewRequest(method, server.URL+path, reader)
	require.NoError(t, err)
	request.Header.Set("Content-Type", "application/json")
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := server.Client().Do(request)
	require.NoError(t, err)
	defer response.Body.Close()

	var parsed envelope
	require.NoError(t, json.NewDecoder(response.Body).Decode(&parsed))

	return response.StatusCode, parsed
}

/*
TestEndToEnd_OnboardingJourney walks the full register → login → me →
complete onboarding → personalized hub scenario.
*/
func TestEndToEnd_OnboardingJourney(t *testing.T) {
	server := newTestServer(t)

	// ── 1. Register ───────────────────────────────────────────────────────
	status, body := call(t, server, http.MethodPost, "/api/v2/auth/register", "", map[string]string{
		"email":    "a@x.com",
		"password": "password1",
	})
	require.Equal(t, http.StatusCreated, status)
	require.True(t, body.OK)
	assert.NotEmpty(t, body.Meta.TraceID)

	// ── 2. Login with the same credentials ────────────────────────────────
	status, body = call(t, server, http.MethodPost, "/api/v2/auth/login", "", map[string]string{
		"email":    "a@x.com",
		"password": "password1",
	})
	require.Equal(t, http.StatusOK, status)

	var login struct {
		Tokens struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
		} `json:"tokens"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &login))
	require.NotEmpty(t, login.Tokens.AccessToken)
	token := login.Tokens.AccessToken

	// ── 3. /me shows onboarding incomplete ────────────────────────────────
	status, body = call(t, server, http.MethodGet, "/api/v2/auth/me", token, nil)
	require.Equal(t, http.StatusOK, status)

	var me struct {
		User struct {
			Email               string `json:"email"`
			OnboardingCompleted bool   `json:"onboarding_completed"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &me))
	assert.Equal(t, "a@x.com", me.User.Email)
	assert.False(t, me.User.OnboardingCompleted)

	// ── 4. Hub before onboarding: getting-started payload ─────────────────
	status, body = call(t, server, http.MethodGet, "/api/hub/today", token, nil)
	require.Equal(t, http.StatusOK, status)

	var bundle struct {
		Personalized bool `json:"personalized"`
		Brief        struct {
			Topic string `json:"topic"`
		} `json:"brief"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &bundle))
	assert.False(t, bundle.Personalized)

	// ── 5. Complete onboarding ────────────────────────────────────────────
	status, _ = call(t, server, http.MethodPost, "/api/v2/onboarding/complete", token, map[string]any{
		"positioning_target": "AI Ethics",
		"core_ideas":         []string{"X", "Y"},
	})
	require.Equal(t, http.StatusOK, status)

	// ── 6. Hub is now personalized; topic falls back to core_ideas[0] ─────
	status, body = call(t, server, http.MethodGet, "/api/hub/today", token, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body.Data, &bundle))
	assert.True(t, bundle.Personalized)
	assert.Equal(t, "X", bundle.Brief.Topic)

	// ── 7. Session snapshot reflects the flags ────────────────────────────
	status, body = call(t, server, http.MethodGet, "/api/session", token, nil)
	require.Equal(t, http.StatusOK, status)

	var session struct {
		QuestionnaireComplete bool `json:"questionnaire_complete"`
		ToneComplete          bool `json:"tone_complete"`
		BriefReviewed         bool `json:"brief_reviewed"`
		OnboardingCompleted   bool `json:"onboarding_completed"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &session))
	assert.True(t, session.QuestionnaireComplete)
	assert.True(t, session.ToneComplete)
	assert.False(t, session.BriefReviewed)
	assert.True(t, session.OnboardingCompleted)
}

/*
TestEndToEnd_AuthFailures verifies conflict, bad-credential, and
missing-token handling through the HTTP surface.
*/
func TestEndToEnd_AuthFailures(t *testing.T) {
	server := newTestServer(t)

	_, _ = call(t, server, http.MethodPost, "/api/v2/auth/register", "", map[string]string{
		"email": "a@x.com", "password": "password1",
	})

	// 1. Duplicate registration → 409 with the enveloped error shape.
	status, body := call(t, server, http.MethodPost, "/api/v2/auth/register", "", map[string]string{
		"email": "a@x.com", "password": "password2",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.False(t, body.OK)
	assert.Equal(t, "CONFLICT", body.Err.Code)
	assert.NotEmpty(t, body.Meta.TraceID)

	// 2. Wrong password → 401.
	status, body = call(t, server, http.MethodPost, "/api/v2/auth/login", "", map[string]string{
		"email": "a@x.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", body.Err.Code)

	// 3. Protected route without a token → 401.
	status, body = call(t, server, http.MethodGet, "/api/hub/today", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", body.Err.Code)

	// 4. Refresh with an access token → 401 (type discrimination).
	status, body = call(t, server, http.MethodPost, "/api/v2/auth/login", "", map[string]string{
		"email": "a@x.com", "password": "password1",
	})
	require.Equal(t, http.StatusOK, status)

	var login struct {
		Tokens struct {
			AccessToken string `json:"access_token"`
		} `json:"tokens"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &login))

	status, body = call(t, server, http.MethodPost, "/api/v2/auth/refresh", "", map[string]string{
		"refresh_token": login.Tokens.AccessToken,
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", body.Err.Code)
}

/*
TestEndToEnd_RejectionCap verifies the daily brief-rejection cap over HTTP.
*/
func TestEndToEnd_RejectionCap(t *testing.T) {
	server := newTestServer(t)

	_, body := call(t, server, http.MethodPost, "/api/v2/auth/register", "", map[string]string{
		"email": "a@x.com", "password": "password1",
	})

	var registered struct {
		Tokens struct {
			AccessToken string `json:"access_token"`
		} `json:"tokens"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &registered))
	token := registered.Tokens.AccessToken

	// 1. Three rejections pass.
	for _, topic := range []string{"Regulation", "Safety", "Policy"} {
		status, _ := call(t, server, http.MethodPost, "/api/hub/brief/reject", token, map[string]string{
			"topic": topic,
		})
		require.Equal(t, http.StatusOK, status)
	}

	// 2. The fourth hits the cap.
	status, body := call(t, server, http.MethodPost, "/api/hub/brief/reject", token, map[string]string{
		"topic": "Economics",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", body.Err.Code)

	// 3. The rejection snapshot agrees.
	status, body = call(t, server, http.MethodGet, "/api/hub/brief/rejections", token, nil)
	require.Equal(t, http.StatusOK, status)

	var state struct {
		RejectionsToday       int `json:"rejections_today"`
		AlternativesRemaining int `json:"alternatives_remaining"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &state))
	assert.Equal(t, 3, state.RejectionsToday)
	assert.Equal(t, 0, state.AlternativesRemaining)
}

/*
TestEndToEnd_Health verifies the unauthenticated probes.
*/
func TestEndToEnd_Health(t *testing.T) {
	server := newTestServer(t)

	status, body := call(t, server, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, body.OK)

	status, body = call(t, server, http.MethodGet, "/ready", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, body.OK)
}

// Copyright (c) 2026 Plinth. All rights reserved.
// Author: engineering@plinth.app

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plinth-app/plinth/internal/platform/apperr"
	"github.com/plinth-app/plinth/internal/platform/sec"
	"github.com/plinth-app/plinth/internal/users/auth"
)

// fakeUserRepository is an in-memory UserRepository for service tests.
type fakeUserRepository struct {
	byID    map[string]*auth.User
	byEmail map[string]*auth.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		byID:    make(map[string]*auth.User),
		byEmail: make(map[string]*auth.User),
	}
}

func (repo *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	user, ok := repo.byID[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (repo *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	user, ok := repo.byEmail[email]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (repo *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	if _, exists := repo.byEmail[user.Email]; exists {
		return apperr.Conflict("Email is already registered")
	}
	repo.byID[user.ID] = user
	repo.byEmail[user.Email] = user
	return nil
}

func newTestAuthService(t *testing.T) (*auth.Service, *fakeUserRepository, *sec.TokenService) {
	t.Helper()

	tokens, err := sec.NewTokenService("test-secret", "plinth.app")
	require.NoError(t, err)

	repository := newFakeUserRepository()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	return auth.NewService(repository, tokens, logger), repository, tokens
}

/*
TestService_Register verifies account creation, validation, and the
duplicate-email conflict.
*/
func TestService_Register(t *testing.T) {
	service, repository, tokens := newTestAuthService(t)
	ctx := context.Background()

	// 1. Successful registration issues a working token pair.
	result, err := service.Register(ctx, "a@x.com", "password1")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.NotEmpty(t, result.User.ID)
	assert.Equal(t, "a@x.com", result.User.Email)

	claims, err := tokens.VerifyAccessToken(result.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)

	// 2. The stored credential is a digest, never the plaintext.
	assert.NotEqual(t, "password1", repository.byEmail["a@x.com"].PasswordHash)

	// 3. Second registration with the same email fails with Conflict
	//    and never creates a second record.
	_, err = service.Register(ctx, "a@x.com", "password2")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	assert.Len(t, repository.byID, 1)
}

/*
TestService_Register_Validation verifies boundary validation failures.
*/
func TestService_Register_Validation(t *testing.T) {
	service, _, _ := newTestAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"empty_email", "", "password1"},
		{"bad_email", "not-an-email", "password1"},
		{"short_password", "a@x.com", "short"},
		{"empty_password", "a@x.com", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Register(ctx, tt.email, tt.password)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		})
	}
}

/*
TestService_Login verifies credential checks produce the same generic
Unauthorized error for unknown emails and wrong passwords.
*/
func TestService_Login(t *testing.T) {
	service, _, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, "a@x.com", "password1")
	require.NoError(t, err)

	// 1. Correct credentials issue a fresh pair.
	result, err := service.Login(ctx, "a@x.com", "password1")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Tokens.AccessToken)
	assert.NotEmpty(t, result.Tokens.RefreshToken)

	// 2. Wrong password and unknown email return identical errors.
	_, wrongPassword := service.Login(ctx, "a@x.com", "password2")
	_, unknownEmail := service.Login(ctx, "b@x.com", "password1")

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(wrongPassword).Code)
	assert.Equal(t, apperr.As(wrongPassword).Message, apperr.As(unknownEmail).Message)
}

/*
TestService_Refresh verifies the stateless refresh flow and its type
discrimination.
*/
func TestService_Refresh(t *testing.T) {
	service, _, tokens := newTestAuthService(t)
	ctx := context.Background()

	result, err := service.Register(ctx, "a@x.com", "password1")
	require.NoError(t, err)

	// 1. A refresh token yields a brand-new pair for the same subject.
	pair, err := service.Refresh(ctx, result.Tokens.RefreshToken)
	require.NoError(t, err)

	claims, err := tokens.VerifyAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)

	// 2. An access token is rejected where a refresh token is expected.
	_, err = service.Refresh(ctx, result.Tokens.AccessToken)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	// 3. Garbage is rejected the same way.
	_, err = service.Refresh(ctx, "not-a-token")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}

/*
TestService_Session verifies the onboarding snapshot mapping.
*/
func TestService_Session(t *testing.T) {
	service, repository, _ := newTestAuthService(t)
	ctx := context.Background()

	result, err := service.Register(ctx, "a@x.com", "password1")
	require.NoError(t, err)

	state, err := service.Session(ctx, result.User.ID)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, state.UserID)
	assert.False(t, state.QuestionnaireComplete)
	assert.False(t, state.OnboardingCompleted)

	// Flip the stored flags and observe the mapping.
	stored := repository.byID[result.User.ID]
	stored.Flags.CompletedQuestionnaire = true
	stored.Flags.SelectedTone = true
	stored.OnboardingCompleted = true

	state, err = service.Session(ctx, result.User.ID)
	require.NoError(t, err)
	assert.True(t, state.QuestionnaireComplete)
	assert.True(t, state.ToneComplete)
	assert.False(t, state.BriefReviewed)
	assert.True(t, state.OnboardingCompleted)
}

// Copyright (c) 2026 Plinth. All rights reserved.
// Author: engineering@plinth.app

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/plinth-app/plinth/internal/platform/apperr"
	"github.com/plinth-app/plinth/internal/platform/constants"
	"github.com/plinth-app/plinth/internal/platform/sec"
	"github.com/plinth-app/plinth/internal/platform/validate"
	"github.com/plinth-app/plinth/pkg/uuidv7"
)

// # Contracts

// TokenProvider issues and verifies the signed credentials the service hands out.
type TokenProvider interface {
	GenerateToken(userID string, tokenType sec.TokenType, timeToLive time.Duration) (string, error)
	VerifyToken(tokenString string, expectedType sec.TokenType) (*sec.AuthClaims, error)
}

// # DTOs

// TokenPair is the credential bundle returned by register, login, and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"` // Access token lifetime in seconds.
}

// AuthResult couples a token pair with the authenticated user's public view.
type AuthResult struct {
	User   *User     `json:"user"`
	Tokens TokenPair `json:"tokens"`
}

// SessionState is the coarse onboarding progress snapshot for the session endpoint.
type SessionState struct {
	UserID                string `json:"user_id"`
	QuestionnaireComplete bool   `json:"questionnaire_complete"`
	ToneComplete          bool   `json:"tone_complete"`
	BriefReviewed         bool   `json:"brief_reviewed"`
	OnboardingCompleted   bool   `json:"onboarding_completed"`
}

// # Service

// Service orchestrates registration, authentication, and token issuance.
type Service struct {
	repository UserRepository
	tokens     TokenProvider
	logger     *slog.Logger
}

// NewService creates an auth Service with its dependencies.
func NewService(repository UserRepository, tokens TokenProvider, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		tokens:     tokens,
		logger:     logger.With(slog.String("service", "auth")),
	}
}

/*
Register provisions a brand-new account and signs the user in.

Description: Validates credentials at the boundary, stores a salted
digest (never the plaintext), and issues a fresh token pair.

Parameters:
  - context: context.Context
  - email: string
  - password: string (plaintext, minimum 8 characters)

Returns:
  - *AuthResult: The created user plus an access/refresh pair
  - error: apperr.ValidationError, apperr.Conflict, or internal failures
*/
func (service *Service) Register(context context.Context, email, password string) (*AuthResult, error) {
	validator := &validate.Validator{}
	validator.
		Required(FieldEmail, email).
		Email(FieldEmail, email).
		Required(FieldPassword, password).
		MinLen(FieldPassword, password, 8)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	passwordHash, err := sec.HashPassword(password)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_register_hash_failed: %w", err))
	}

	user := &User{
		ID:           uuidv7.Must(),
		Email:        email,
		PasswordHash: passwordHash,
	}

	if err := service.repository.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "user registered", slog.String("user_id", user.ID))

	return service.issueResult(user)
}

/*
Login authenticates an existing account by email and password.

Description: Unknown emails and digest mismatches produce the SAME
generic Unauthorized error so the endpoint cannot be used as an
account-enumeration oracle.

Parameters:
  - context: context.Context
  - email: string
  - password: string

Returns:
  - *AuthResult: The user plus a fresh token pair (prior tokens are never reused)
  - error: apperr.Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, email, password string) (*AuthResult, error) {
	user, err := service.repository.FindByEmail(context, email)
	if err != nil {
		if apperr.IsAppError(err) {
			return nil, apperr.Unauthorized("Invalid login credentials")
		}
		return nil, err
	}

	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	return service.issueResult(user)
}

/*
Refresh exchanges a valid refresh token for a brand-new token pair.

Description: Verification is purely stateless (signature, expiry, and
token type); refresh tokens are not rotated or invalidated, so reuse is
possible until natural expiry.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - *TokenPair: New access+refresh pair bound to the same subject
  - error: apperr.Unauthorized on any verification failure
*/
func (service *Service) Refresh(context context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := service.tokens.VerifyToken(refreshToken, sec.TokenTypeRefresh)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	pair, err := service.issuePair(claims.UserID)
	if err != nil {
		return nil, err
	}

	service.logger.DebugContext(context, "tokens refreshed", slog.String("user_id", claims.UserID))

	return pair, nil
}

/*
Me returns the authenticated user's account view.

Parameters:
  - context: context.Context
  - userID: string (from the verified access token)

Returns:
  - *User: Current account state including onboarding status
  - error: apperr.NotFound if the row vanished after token issuance
*/
func (service *Service) Me(context context.Context, userID string) (*User, error) {
	return service.repository.FindByID(context, userID)
}

/*
Session returns the onboarding progress snapshot for the current user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *SessionState: Flag map plus the profile-presence gate
  - error: apperr.NotFound or database failures
*/
func (service *Service) Session(context context.Context, userID string) (*SessionState, error) {
	user, err := service.repository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	return &SessionState{
		UserID:                user.ID,
		QuestionnaireComplete: user.Flags.CompletedQuestionnaire,
		ToneComplete:          user.Flags.SelectedTone,
		BriefReviewed:         user.Flags.ReviewedBrief,
		OnboardingCompleted:   user.OnboardingCompleted,
	}, nil
}

// issueResult issues a token pair and bundles it with the user.
func (service *Service) issueResult(user *User) (*AuthResult, error) {
	pair, err := service.issuePair(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Tokens: *pair}, nil
}

// issuePair mints a fresh access+refresh pair for a subject.
func (service *Service) issuePair(userID string) (*TokenPair, error) {
	accessToken, err := service.tokens.GenerateToken(userID, sec.TokenTypeAccess, constants.AccessTokenTTL)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_issue_access_failed: %w", err))
	}

	refreshToken, err := service.tokens.GenerateToken(userID, sec.TokenTypeRefresh, constants.RefreshTokenTTL)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_issue_refresh_failed: %w", err))
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(constants.AccessTokenTTL.Seconds()),
	}, nil
}

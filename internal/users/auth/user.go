// Copyright (c) 2026 Plinth. All rights reserved.
// Author: engineering@plinth.app

/*
Package auth implements the user identity and session layer.

It defines the core domain entity (User) and the logic for registration,
authentication, and token issuance.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import (
	"time"

	"github.com/plinth-app/plinth/internal/users/onboarding"
)

// # Domain Entities

// User represents a registered member of the Plinth platform.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Explicitly omitted from JSON for security.

	// Flags tracks coarse onboarding milestones. Tracked and surfaced,
	// but gating keys on OnboardingCompleted (profile presence).
	Flags onboarding.Flags `json:"onboarding_flags"`

	// OnboardingCompleted reports whether a usable onboarding profile is
	// stored for this user.
	OnboardingCompleted bool `json:"onboarding_completed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldEmail        = "email"
	FieldPassword     = "password"
	FieldRefreshToken = "refresh_token"
	FieldAccessToken  = "access_token"
	FieldTokenType    = "token_type"
	FieldExpiresIn    = "expires_in"
	FieldUser         = "user"
)

// Copyright (c) 2026 Plinth. All rights reserved.
// Author: engineering@plinth.app

// SQLite storage layer for user accounts.
//
// # Error Mapping
//
// Storage-specific errors (like sql.ErrNoRows) are mapped to domain-friendly
// [apperr.AppError] types to avoid leaking storage implementation details.
package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/plinth-app/plinth/internal/platform/apperr"
	"github.com/plinth-app/plinth/internal/users/onboarding"
)

// # User Repository

// SQLiteUserRepository implements the UserRepository interface using database/sql.
type SQLiteUserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new SQLite implementation of the UserRepository.
func NewUserRepository(db *sql.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db}
}

/*
Create persists a new user record into the user_account table.

Description: Deep-persists account metadata, ensuring timestamps are
initialized if not provided.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: apperr.Conflict on duplicate email, or connectivity errors
*/
func (repository *SQLiteUserRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO user_account (
			id, email, password_hash, completed_questionnaire, selected_tone, reviewed_brief, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.db.ExecContext(context, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Flags.CompletedQuestionnaire,
		user.Flags.SelectedTone,
		user.Flags.ReviewedBrief,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: user_account.email") {
			return apperr.Conflict("Email is already registered")
		}
		return fmt.Errorf("sqlite_user_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByEmail retrieves a user record by their unique email address.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *SQLiteUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	const query = `
		SELECT id, email, password_hash, completed_questionnaire, selected_tone, reviewed_brief, onboarding_data, created_at, updated_at
		FROM user_account
		WHERE email = ?`

	return repository.scanUser(repository.db.QueryRowContext(context, query, email), "find_by_email")
}

/*
FindByID retrieves a user record by their unique ID.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or execution errors
*/
func (repository *SQLiteUserRepository) FindByID(context context.Context, id string) (*User, error) {
	const query = `
		SELECT id, email, password_hash, completed_questionnaire, selected_tone, reviewed_brief, onboarding_data, created_at, updated_at
		FROM user_account
		WHERE id = ?`

	return repository.scanUser(repository.db.QueryRowContext(context, query, id), "find_by_id")
}

// scanUser hydrates a User from a single-row query.
//
// OnboardingCompleted is derived here: a NULL or corrupt onboarding blob
// counts as not onboarded, per the profile corruption policy.
func (repository *SQLiteUserRepository) scanUser(row *sql.Row, action string) (*User, error) {
	user := &User{}
	var onboardingData sql.NullString

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Flags.CompletedQuestionnaire,
		&user.Flags.SelectedTone,
		&user.Flags.ReviewedBrief,
		&onboardingData,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("sqlite_user_repo_%s_failed: %w", action, err)
	}

	if onboardingData.Valid {
		_, user.OnboardingCompleted = onboarding.ParseProfile(onboardingData.String)
	}

	return user, nil
}

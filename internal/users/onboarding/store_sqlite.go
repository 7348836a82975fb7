// Copyright (c) 2026 Plinth. All rights reserved.
// Author: engineering@plinth.app

package onboarding

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/plinth-app/plinth/internal/platform/apperr"
)

// # SQLite Repository

// SQLiteRepository implements the Repository interface over the shared
// user_account table.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite implementation of the Repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

/*
GetProfile retrieves the stored onboarding JSON for a user.

Description: NULL and corrupt blobs both read as absence per the
corruption policy in [ParseProfile].

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - Profile: Decoded mapping, or nil when absent
  - error: apperr.NotFound or execution errors
*/
func (repository *SQLiteRepository) GetProfile(context context.Context, userID string) (Profile, error) {
	const query = `
		SELECT onboarding_data
		FROM user_account
		WHERE id = ?`

	var raw sql.NullString
	err := repository.db.QueryRowContext(context, query, userID).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("sqlite_onboarding_repo_get_profile_failed: %w", err)
	}

	if !raw.Valid {
		return nil, nil
	}

	profile, ok := ParseProfile(raw.String)
	if !ok {
		return nil, nil
	}

	return profile, nil
}

/*
SaveProfile overwrites the onboarding blob and flags for a user.

Description: The mapping is stored verbatim as JSON; no shape validation
happens at this layer.

Parameters:
  - context: context.Context
  - userID: string
  - profile: Profile
  - flags: Flags

Returns:
  - error: apperr.NotFound or execution errors
*/
func (repository *SQLiteRepository) SaveProfile(context context.Context, userID string, profile Profile, flags Flags) error {
	const query = `
		UPDATE user_account
		SET onboarding_data = ?,
		    completed_questionnaire = ?,
		    selected_tone = ?,
		    reviewed_brief = ?,
		    updated_at = ?
		WHERE id = ?`

	encoded, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("sqlite_onboarding_repo_encode_failed: %w", err)
	}

	result, err := repository.db.ExecContext(context, query,
		string(encoded),
		flags.CompletedQuestionnaire,
		flags.SelectedTone,
		flags.ReviewedBrief,
		time.Now(),
		userID,
	)
	if err != nil {
		return fmt.Errorf("sqlite_onboarding_repo_save_profile_failed: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite_onboarding_repo_save_profile_failed: %w", err)
	}
	if affected == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

/*
GetFlags retrieves the onboarding milestone flags for a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - Flags: Stored flag set
  - error: apperr.NotFound or execution errors
*/
func (repository *SQLiteRepository) GetFlags(context context.Context, userID string) (Flags, error) {
	const query = `
		SELECT completed_questionnaire, selected_tone, reviewed_brief
		FROM user_account
		WHERE id = ?`

	var flags Flags
	err := repository.db.QueryRowContext(context, query, userID).Scan(
		&flags.CompletedQuestionnaire,
		&flags.SelectedTone,
		&flags.ReviewedBrief,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Flags{}, apperr.NotFound("User")
		}
		return Flags{}, fmt.Errorf("sqlite_onboarding_repo_get_flags_failed: %w", err)
	}

	return flags, nil
}

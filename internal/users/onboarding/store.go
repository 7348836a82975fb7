// Copyright (c) 2026 Plinth. All rights reserved.
// Author: engineering@plinth.app

package onboarding

import "context"

// # Onboarding Data Access

// Repository defines the data access contract for onboarding state.
type Repository interface {

	/*
		GetProfile returns the stored onboarding profile for a user.

		Description: Corrupt or never-written profiles read as (nil, nil) —
		absence, not failure. Only a missing user row is an error.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - Profile: Stored mapping, or nil if absent
		  - error: apperr.NotFound if the user row is gone, or storage errors
	*/
	GetProfile(context context.Context, userID string) (Profile, error)

	/*
		SaveProfile overwrites a user's onboarding profile and flags wholesale.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - profile: Profile (stored verbatim as JSON)
		  - flags: Flags

		Returns:
		  - error: apperr.NotFound if the user row is gone, or storage errors
	*/
	SaveProfile(context context.Context, userID string, profile Profile, flags Flags) error

	/*
		GetFlags returns the onboarding milestone flags for a user.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - Flags: Stored flag set
		  - error: apperr.NotFound if the user row is gone, or storage errors
	*/
	GetFlags(context context.Context, userID string) (Flags, error)
}

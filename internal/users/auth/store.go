// Copyright (c) 2026 Plinth. All rights reserved.
// Author: engineering@plinth.app

package auth

import "context"

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Description: The lookup is case-sensitive, matching the stored value.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: apperr.Conflict on duplicate email, or persistence failures
	*/
	Create(context context.Context, user *User) error
}

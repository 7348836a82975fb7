// Copyright (c) 2026 Plinth. All rights reserved.
// Author: engineering@plinth.app

package onboarding

import (
	"context"
	"fmt"

	"github.com/plinth-app/plinth/internal/platform/apperr"
)

// Service implements the onboarding use cases.
type Service struct {
	repository Repository
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

/*
Complete stores a user's questionnaire answers.

Description: The payload is overwritten wholesale — there is no partial
or incremental state. Flags are set to {questionnaire: true, tone: true,
brief_reviewed: false} on every completion.

Parameters:
  - context: context.Context
  - userID: string
  - payload: Profile

Returns:
  - error: Validation (empty payload), NotFound, or storage errors
*/
func (service *Service) Complete(context context.Context, userID string, payload Profile) error {

	// A completion with nothing in it is a client error, not a reset.
	if len(payload) == 0 {
		return apperr.ValidationError("Onboarding payload must not be empty")
	}

	flags := Flags{
		CompletedQuestionnaire: true,
		SelectedTone:           true,
		ReviewedBrief:          false,
	}

	if err := service.repository.SaveProfile(context, userID, payload, flags); err != nil {
		return fmt.Errorf("onboarding_service_complete_failed: %w", err)
	}

	return nil
}

/*
Get returns the stored onboarding profile, or nil when the user has not
onboarded (or the stored blob is corrupt).

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - Profile: Stored mapping or nil
  - error: NotFound or storage errors
*/
func (service *Service) Get(context context.Context, userID string) (Profile, error) {
	return service.repository.GetProfile(context, userID)
}

/*
GetFlags returns the onboarding milestone flags.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - Flags: Stored flag set
  - error: NotFound or storage errors
*/
func (service *Service) GetFlags(context context.Context, userID string) (Flags, error) {
	return service.repository.GetFlags(context, userID)
}

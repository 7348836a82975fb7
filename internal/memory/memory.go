// Copyright (c) 2026 Plinth. All rights reserved.
// Author: engineering@plinth.app

/*
Package memory implements the derived territory-memory views: memory
state, reinforcement counts, and territory coverage.

Nothing here is independently persisted. Every view is a pure function
of the onboarding profile; no profile yields the zeroed getting-started
view.
*/
package memory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/plinth-app/plinth/internal/users/onboarding"
)

// # View Caps

const (
	maxStateEntries    = 5
	maxCountEntries    = 5
	maxCoverageEntries = 6
)

// # Domain Entities

// StateEntry describes a single territory's reinforcement standing.
type StateEntry struct {
	Territory string `json:"territory"`
	Strength  string `json:"strength"`
	Status    string `json:"status"`
}

// MemoryState is the /memory/state payload.
type MemoryState struct {
	Personalized bool         `json:"personalized"`
	Entries      []StateEntry `json:"entries"`
	Message      string       `json:"message,omitempty"`
}

// ReinforcementCount is one territory's reinforcement tally.
type ReinforcementCount struct {
	Territory string `json:"territory"`
	Count     int    `json:"count"`
}

// CoverageEntry describes how well a territory is covered.
type CoverageEntry struct {
	Territory  string `json:"territory"`
	Coverage   string `json:"coverage"`
	Suggestion string `json:"suggestion"`
}

// # Contracts

// ProfileSource loads a user's onboarding profile. A nil profile with a
// nil error means the user has not onboarded.
type ProfileSource interface {
	Get(context context.Context, userID string) (onboarding.Profile, error)
}

// # Service

// Service builds the derived memory views.
type Service struct {
	profiles ProfileSource
	logger   *slog.Logger
}

// NewService creates a memory Service.
func NewService(profiles ProfileSource, logger *slog.Logger) *Service {
	return &Service{
		profiles: profiles,
		logger:   logger.With(slog.String("service", "memory")),
	}
}

/*
State returns the territory reinforcement state view.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *MemoryState: Up to 5 entries, or the zeroed view when not onboarded
  - error: Database failures only
*/
func (service *Service) State(context context.Context, userID string) (*MemoryState, error) {
	profile, err := service.profiles.Get(context, userID)
	if err != nil {
		return nil, err
	}

	if profile == nil {
		return &MemoryState{
			Personalized: false,
			Entries:      []StateEntry{},
			Message:      "Complete onboarding to start tracking your territories.",
		}, nil
	}

	territories := capped(profile.Territories(), maxStateEntries)
	entries := make([]StateEntry, len(territories))
	for i, territory := range territories {
		entries[i] = StateEntry{
			Territory: territory,
			Strength:  "building",
			Status:    fmt.Sprintf("Keep publishing on %s to build recall.", territory),
		}
	}

	return &MemoryState{Personalized: true, Entries: entries}, nil
}

/*
ReinforcementCounts returns per-territory reinforcement tallies.

Description: No reinforcement events are persisted yet, so counts are
zero; the view exists so clients can render the territory list with a
stable shape.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []ReinforcementCount: Up to 5 entries, empty when not onboarded
  - error: Database failures only
*/
func (service *Service) ReinforcementCounts(context context.Context, userID string) ([]ReinforcementCount, error) {
	profile, err := service.profiles.Get(context, userID)
	if err != nil {
		return nil, err
	}

	if profile == nil {
		return []ReinforcementCount{}, nil
	}

	territories := capped(profile.Territories(), maxCountEntries)
	counts := make([]ReinforcementCount, len(territories))
	for i, territory := range territories {
		counts[i] = ReinforcementCount{Territory: territory, Count: 0}
	}

	return counts, nil
}

/*
TerritoryCoverage returns the coverage view across territories.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []CoverageEntry: Up to 6 entries, empty when not onboarded
  - error: Database failures only
*/
func (service *Service) TerritoryCoverage(context context.Context, userID string) ([]CoverageEntry, error) {
	profile, err := service.profiles.Get(context, userID)
	if err != nil {
		return nil, err
	}

	if profile == nil {
		return []CoverageEntry{}, nil
	}

	territories := capped(profile.Territories(), maxCoverageEntries)
	entries := make([]CoverageEntry, len(territories))
	for i, territory := range territories {
		entries[i] = CoverageEntry{
			Territory:  territory,
			Coverage:   "low",
			Suggestion: fmt.Sprintf("Draft a post about %s this week.", territory),
		}
	}

	return entries, nil
}

func capped(values []string, max int) []string {
	if len(values) > max {
		return values[:max]
	}
	return values
}

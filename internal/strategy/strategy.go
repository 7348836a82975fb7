// Copyright (c) 2026 Plinth. All rights reserved.
// Author: engineering@plinth.app

// Package strategy implements the derived positioning/focus view.
package strategy

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/plinth-app/plinth/internal/users/onboarding"
)

const maxFocusAreas = 4

// Snapshot is the /api/v2/strategy payload.
type Snapshot struct {
	Personalized bool     `json:"personalized"`
	Positioning  string   `json:"positioning"`
	FocusAreas   []string `json:"focus_areas"`
	NextActions  []string `json:"next_actions"`
	Audience     string   `json:"audience"`
}

// ProfileSource loads a user's onboarding profile. A nil profile with a
// nil error means the user has not onboarded.
type ProfileSource interface {
	Get(context context.Context, userID string) (onboarding.Profile, error)
}

// Service builds strategy snapshots.
type Service struct {
	profiles ProfileSource
	logger   *slog.Logger
}

// NewService creates a strategy Service.
func NewService(profiles ProfileSource, logger *slog.Logger) *Service {
	return &Service{
		profiles: profiles,
		logger:   logger.With(slog.String("service", "strategy")),
	}
}

/*
Snapshot builds the positioning/focus view for a user.

Description: Total over "has onboarded / has not"; the getting-started
snapshot carries placeholder strings, never an error.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *Snapshot: Positioning statement, focus areas (≤4), templated next actions
  - error: Database failures only
*/
func (service *Service) Snapshot(context context.Context, userID string) (*Snapshot, error) {
	profile, err := service.profiles.Get(context, userID)
	if err != nil {
		return nil, err
	}

	if profile == nil {
		return &Snapshot{
			Personalized: false,
			Positioning:  fmt.Sprintf("Build authority in %s", onboarding.DefaultPositioning),
			FocusAreas:   []string{},
			NextActions:  []string{"Complete onboarding to define your positioning and territories."},
			Audience:     onboarding.DefaultAudience,
		}, nil
	}

	positioning := profile.PositioningTarget()
	focusAreas := profile.Territories()
	if len(focusAreas) > maxFocusAreas {
		focusAreas = focusAreas[:maxFocusAreas]
	}

	return &Snapshot{
		Personalized: true,
		Positioning:  fmt.Sprintf("Build authority in %s", positioning),
		FocusAreas:   focusAreas,
		NextActions: []string{
			fmt.Sprintf("Publish one piece this week that reinforces %s.", positioning),
			fmt.Sprintf("Engage with conversations about %s where your audience already is.", positioning),
			"Review your rejected briefs for topics worth revisiting.",
		},
		Audience: profile.AudienceDescription(),
	}, nil
}

// Copyright (c) 2026 Plinth. All rights reserved.
// Author: engineering@plinth.app

// Package voice implements the derived tone/voice profile view.
package voice

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/plinth-app/plinth/internal/users/onboarding"
)

const maxSamplePhrases = 3

// Profile is the /api/v2/voice/profile payload.
type Profile struct {
	Personalized  bool     `json:"personalized"`
	Tone          string   `json:"tone"`
	SamplePhrases []string `json:"sample_phrases"`
	Boundaries    []string `json:"boundaries"`
}

// ProfileSource loads a user's onboarding profile. A nil profile with a
// nil error means the user has not onboarded.
type ProfileSource interface {
	Get(context context.Context, userID string) (onboarding.Profile, error)
}

// Service builds voice profiles.
type Service struct {
	profiles ProfileSource
	logger   *slog.Logger
}

// NewService creates a voice Service.
func NewService(profiles ProfileSource, logger *slog.Logger) *Service {
	return &Service{
		profiles: profiles,
		logger:   logger.With(slog.String("service", "voice")),
	}
}

/*
Profile builds the tone/voice view for a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *Profile: Tone descriptor, sample phrases (≤3), integrity boundaries
  - error: Database failures only
*/
func (service *Service) Profile(context context.Context, userID string) (*Profile, error) {
	stored, err := service.profiles.Get(context, userID)
	if err != nil {
		return nil, err
	}

	if stored == nil {
		return &Profile{
			Personalized:  false,
			Tone:          onboarding.DefaultVoiceStyle,
			SamplePhrases: []string{},
			Boundaries:    []string{},
		}, nil
	}

	phrases := stored.CoreIdeas()
	if len(phrases) > maxSamplePhrases {
		phrases = phrases[:maxSamplePhrases]
	}
	if phrases == nil {
		phrases = []string{}
	}

	boundaries := stored.IntegrityBoundaries()
	if boundaries == nil {
		boundaries = []string{}
	}

	return &Profile{
		Personalized:  true,
		Tone:          fmt.Sprintf("%s, anchored in %s", stored.VoiceStyle(), stored.PositioningTarget()),
		SamplePhrases: phrases,
		Boundaries:    boundaries,
	}, nil
}

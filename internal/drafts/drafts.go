// Copyright (c) 2026 Plinth. All rights reserved.
// Author: engineering@plinth.app

// Package drafts implements templated draft generation and the static
// draft validation scores.
package drafts

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/plinth-app/plinth/internal/platform/apperr"
	"github.com/plinth-app/plinth/internal/users/onboarding"
)

// # Domain Entities

// Draft is the generated draft payload.
type Draft struct {
	Personalized bool   `json:"personalized"`
	Topic        string `json:"topic"`
	Body         string `json:"body"`
	Tone         string `json:"tone"`
}

// ValidationScores are the static quality scores for a submitted draft.
//
// The scoring is a stand-in: fixed values with a length-based word
// count, no actual content analysis.
type ValidationScores struct {
	Clarity   float64 `json:"clarity"`
	VoiceFit  float64 `json:"voice_fit"`
	Evidence  float64 `json:"evidence"`
	WordCount int     `json:"word_count"`
	Verdict   string  `json:"verdict"`
}

// ProfileSource loads a user's onboarding profile. A nil profile with a
// nil error means the user has not onboarded.
type ProfileSource interface {
	Get(context context.Context, userID string) (onboarding.Profile, error)
}

// # Service

// Service generates and validates drafts.
type Service struct {
	profiles ProfileSource
	logger   *slog.Logger
}

// NewService creates a drafts Service.
func NewService(profiles ProfileSource, logger *slog.Logger) *Service {
	return &Service{
		profiles: profiles,
		logger:   logger.With(slog.String("service", "drafts")),
	}
}

/*
Generate produces a templated draft for a topic.

Description: Total function. An empty topic falls back to the user's
first territory, then their positioning, then the generic placeholder.

Parameters:
  - context: context.Context
  - userID: string
  - topic: string (optional)

Returns:
  - *Draft: Templated draft text interpolating topic, positioning, and audience
  - error: Database failures only
*/
func (service *Service) Generate(context context.Context, userID, topic string) (*Draft, error) {
	profile, err := service.profiles.Get(context, userID)
	if err != nil {
		return nil, err
	}

	if profile == nil {
		if topic == "" {
			topic = onboarding.DefaultPositioning
		}
		return &Draft{
			Personalized: false,
			Topic:        topic,
			Body: fmt.Sprintf(
				"Here's a starting point on %s.\n\nShare one observation from your own experience, explain why it matters to %s, and close with the question you're still wrestling with.",
				topic, onboarding.DefaultAudience),
			Tone: onboarding.DefaultVoiceStyle,
		}, nil
	}

	if topic == "" {
		if territories := profile.Territories(); len(territories) > 0 {
			topic = territories[0]
		} else {
			topic = profile.PositioningTarget()
		}
	}

	positioning := profile.PositioningTarget()

	return &Draft{
		Personalized: true,
		Topic:        topic,
		Body: fmt.Sprintf(
			"Most people get %s wrong.\n\nAfter working in %s, here's what I keep seeing: the fundamentals matter more than the trends. Speak directly to %s about what you've actually observed, not what the feed rewards.\n\nWhat's one assumption about %s you've changed your mind on?",
			topic, positioning, profile.AudienceDescription(), topic),
		Tone: profile.VoiceStyle(),
	}, nil
}

/*
Validate returns the static quality scores for a submitted draft.

Parameters:
  - context: context.Context
  - draft: string (must be non-empty)

Returns:
  - *ValidationScores: Fixed clarity/voice/evidence scores plus word count
  - error: apperr.ValidationError on an empty draft
*/
func (service *Service) Validate(_ context.Context, draft string) (*ValidationScores, error) {
	if strings.TrimSpace(draft) == "" {
		return nil, apperr.ValidationError("Draft text must not be empty")
	}

	return &ValidationScores{
		Clarity:   0.8,
		VoiceFit:  0.75,
		Evidence:  0.7,
		WordCount: len(strings.Fields(draft)),
		Verdict:   "Solid foundation. Tighten the opening and add one concrete example.",
	}, nil
}

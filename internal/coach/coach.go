// Copyright (c) 2026 Plinth. All rights reserved.
// Author: engineering@plinth.app

/*
Package coach implements the keyword-matched coaching chat.

# Rule Model

Replies come from an ordered list of (predicate, template) rules
evaluated first-match-wins over the lower-cased message. This is a
deliberate stand-in: extensible without implying any language
understanding exists.
*/
package coach

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/plinth-app/plinth/internal/platform/apperr"
	"github.com/plinth-app/plinth/internal/users/onboarding"
)

// # Domain Entities

// Reply is the coach chat response payload.
type Reply struct {
	Message     string   `json:"message"`
	Topic       string   `json:"topic"`
	Suggestions []string `json:"suggestions"`
}

// ProfileSource loads a user's onboarding profile. A nil profile with a
// nil error means the user has not onboarded.
type ProfileSource interface {
	Get(context context.Context, userID string) (onboarding.Profile, error)
}

// rule maps a message predicate to a reply builder.
type rule struct {
	topic   string
	matches func(message string) bool
	build   func(profile onboarding.Profile) string
}

// defaultSuggestions is the fixed suggestion list attached to every reply.
var defaultSuggestions = []string{
	"Show me today's brief",
	"How is my memory tracking?",
	"What should my strategy focus be?",
}

// # Service

// Service answers coaching chat messages.
type Service struct {
	profiles ProfileSource
	logger   *slog.Logger
	rules    []rule
}

// NewService creates a coach Service with the fixed rule set.
func NewService(profiles ProfileSource, logger *slog.Logger) *Service {
	service := &Service{
		profiles: profiles,
		logger:   logger.With(slog.String("service", "coach")),
	}

	// Order matters: first match wins.
	service.rules = []rule{
		{
			topic:   "brief",
			matches: func(m string) bool { return strings.Contains(m, "brief") },
			build: func(profile onboarding.Profile) string {
				positioning := positioningOf(profile)
				return fmt.Sprintf(
					"Your daily brief is built from your territories. Today, lean into %s: pick the angle that feels most like a conversation you've actually had.",
					positioning)
			},
		},
		{
			topic: "memory",
			matches: func(m string) bool {
				return strings.Contains(m, "memory") || strings.Contains(m, "reinforce")
			},
			build: func(profile onboarding.Profile) string {
				territories := territoriesOf(profile)
				if len(territories) == 0 {
					return "Memory tracking starts once you've defined your territories. Complete onboarding and every post you publish will reinforce them."
				}
				return fmt.Sprintf(
					"You're tracking %d territories. Repetition builds recall: your audience needs to see %s from you several times before it sticks.",
					len(territories), territories[0])
			},
		},
		{
			topic:   "strategy",
			matches: func(m string) bool { return strings.Contains(m, "strategy") },
			build: func(profile onboarding.Profile) string {
				return fmt.Sprintf(
					"Strategy is subtraction. Everything you publish should reinforce your positioning in %s; if a post doesn't, skip it.",
					positioningOf(profile))
			},
		},
	}

	return service
}

/*
Chat answers a coaching message.

Description: Keyword-matches the lower-cased message against the ordered
rule list; falls through to a default reply when nothing matches.

Parameters:
  - context: context.Context
  - userID: string
  - message: string (must be non-empty)

Returns:
  - *Reply: Templated reply plus the fixed suggestion list
  - error: apperr.ValidationError on an empty message, or database failures
*/
func (service *Service) Chat(context context.Context, userID, message string) (*Reply, error) {
	if strings.TrimSpace(message) == "" {
		return nil, apperr.ValidationError("Message is required")
	}

	profile, err := service.profiles.Get(context, userID)
	if err != nil {
		return nil, err
	}

	lowered := strings.ToLower(message)
	for _, rule := range service.rules {
		if rule.matches(lowered) {
			return &Reply{
				Message:     rule.build(profile),
				Topic:       rule.topic,
				Suggestions: defaultSuggestions,
			}, nil
		}
	}

	return &Reply{
		Message: fmt.Sprintf(
			"I coach on briefs, memory, and strategy. Ask me about any of them, and I'll tie the answer back to %s.",
			positioningOf(profile)),
		Topic:       "general",
		Suggestions: defaultSuggestions,
	}, nil
}

// # Helpers

// positioningOf tolerates a nil profile (user not onboarded).
func positioningOf(profile onboarding.Profile) string {
	if profile == nil {
		return onboarding.DefaultPositioning
	}
	return profile.PositioningTarget()
}

func territoriesOf(profile onboarding.Profile) []string {
	if profile == nil {
		return nil
	}
	return profile.Territories()
}

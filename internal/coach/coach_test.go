// Copyright (c) 2026 Plinth. All rights reserved.
// Author: engineering@plinth.app

package coach_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plinth-app/plinth/internal/coach"
	"github.com/plinth-app/plinth/internal/platform/apperr"
	"github.com/plinth-app/plinth/internal/users/onboarding"
)

type fakeProfileSource struct {
	profiles map[string]onboarding.Profile
}

func (source *fakeProfileSource) Get(_ context.Context, userID string) (onboarding.Profile, error) {
	return source.profiles[userID], nil
}

func newTestCoachService(profiles map[string]onboarding.Profile) *coach.Service {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return coach.NewService(&fakeProfileSource{profiles: profiles}, logger)
}

/*
TestService_Chat_KeywordRouting verifies the ordered first-match-wins
keyword rules over the lower-cased message.
*/
func TestService_Chat_KeywordRouting(t *testing.T) {
	service := newTestCoachService(map[string]onboarding.Profile{
		"user": {
			"positioning_target":  "AI Ethics",
			"content_territories": []any{"Regulation", "Safety"},
		},
	})
	ctx := context.Background()

	tests := []struct {
		name          string
		message       string
		expectedTopic string
	}{
		{"brief_keyword", "Show me my BRIEF please", "brief"},
		{"memory_keyword", "how is my memory doing", "memory"},
		{"reinforce_keyword", "what should I reinforce", "memory"},
		{"strategy_keyword", "explain my strategy", "strategy"},
		{"no_match", "hello there", "general"},

		// "brief" is checked before "strategy": first match wins.
		{"ordering", "does my brief fit my strategy?", "brief"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, err := service.Chat(ctx, "user", tt.message)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedTopic, reply.Topic)
			assert.NotEmpty(t, reply.Message)
			assert.Len(t, reply.Suggestions, 3)
		})
	}
}

/*
TestService_Chat_Personalization verifies replies interpolate the
stored positioning and degrade to placeholders when not onboarded.
*/
func TestService_Chat_Personalization(t *testing.T) {
	service := newTestCoachService(map[string]onboarding.Profile{
		"onboarded": {"positioning_target": "AI Ethics"},
	})
	ctx := context.Background()

	reply, err := service.Chat(ctx, "onboarded", "my strategy?")
	require.NoError(t, err)
	assert.True(t, strings.Contains(reply.Message, "AI Ethics"))

	reply, err = service.Chat(ctx, "stranger", "my strategy?")
	require.NoError(t, err)
	assert.True(t, strings.Contains(reply.Message, onboarding.DefaultPositioning))
}

/*
TestService_Chat_EmptyMessage verifies the validation boundary.
*/
func TestService_Chat_EmptyMessage(t *testing.T) {
	service := newTestCoachService(nil)

	for _, message := range []string{"", "   "} {
		_, err := service.Chat(context.Background(), "user", message)
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	}
}

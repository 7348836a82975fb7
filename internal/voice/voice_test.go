// Copyright (c) 2026 Plinth. All rights reserved.
// Author: engineering@plinth.app

package voice_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plinth-app/plinth/internal/users/onboarding"
	"github.com/plinth-app/plinth/internal/voice"
)

type fakeProfileSource struct {
	profiles map[string]onboarding.Profile
}

func (source *fakeProfileSource) Get(_ context.Context, userID string) (onboarding.Profile, error) {
	return source.profiles[userID], nil
}

/*
TestService_Profile verifies tone interpolation, the sample-phrase cap
of 3, and the placeholder profile for users who have not onboarded.
*/
func TestService_Profile(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	service := voice.NewService(&fakeProfileSource{profiles: map[string]onboarding.Profile{
		"user": {
			"positioning_target":   "AI Ethics",
			"voice_style":          "dry and precise",
			"core_ideas":           []any{"A", "B", "C", "D"},
			"integrity_boundaries": []any{"no hype", "no engagement bait"},
		},
	}}, logger)
	ctx := context.Background()

	// 1. Personalized profile.
	profile, err := service.Profile(ctx, "user")
	require.NoError(t, err)
	assert.True(t, profile.Personalized)
	assert.Contains(t, profile.Tone, "dry and precise")
	assert.Contains(t, profile.Tone, "AI Ethics")
	assert.Equal(t, []string{"A", "B", "C"}, profile.SamplePhrases)
	assert.Equal(t, []string{"no hype", "no engagement bait"}, profile.Boundaries)

	// 2. Not onboarded: placeholder tone, empty lists, no error.
	profile, err = service.Profile(ctx, "stranger")
	require.NoError(t, err)
	assert.False(t, profile.Personalized)
	assert.Equal(t, onboarding.DefaultVoiceStyle, profile.Tone)
	assert.Empty(t, profile.SamplePhrases)
	assert.Empty(t, profile.Boundaries)
}

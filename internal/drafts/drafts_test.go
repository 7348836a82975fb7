// Copyright (c) 2026 Plinth. All rights reserved.
// Author: engineering@plinth.app

package drafts_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plinth-app/plinth/internal/drafts"
	"github.com/plinth-app/plinth/internal/platform/apperr"
	"github.com/plinth-app/plinth/internal/users/onboarding"
)

type fakeProfileSource struct {
	profiles map[string]onboarding.Profile
}

func (source *fakeProfileSource) Get(_ context.Context, userID string) (onboarding.Profile, error) {
	return source.profiles[userID], nil
}

func newTestDraftService() *drafts.Service {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return drafts.NewService(&fakeProfileSource{profiles: map[string]onboarding.Profile{
		"user": {
			"positioning_target":  "AI Ethics",
			"content_territories": []any{"Regulation", "Safety"},
			"voice_style":         "dry and precise",
		},
	}}, logger)
}

/*
TestService_Generate verifies topic selection and placeholder fallbacks.
*/
func TestService_Generate(t *testing.T) {
	service := newTestDraftService()
	ctx := context.Background()

	// 1. Explicit topic is interpolated.
	draft, err := service.Generate(ctx, "user", "Audit trails")
	require.NoError(t, err)
	assert.True(t, draft.Personalized)
	assert.Equal(t, "Audit trails", draft.Topic)
	assert.Contains(t, draft.Body, "Audit trails")
	assert.Contains(t, draft.Body, "AI Ethics")
	assert.Equal(t, "dry and precise", draft.Tone)

	// 2. Empty topic falls back to the first territory.
	draft, err = service.Generate(ctx, "user", "")
	require.NoError(t, err)
	assert.Equal(t, "Regulation", draft.Topic)

	// 3. Not onboarded: total function, placeholder draft.
	draft, err = service.Generate(ctx, "stranger", "")
	require.NoError(t, err)
	assert.False(t, draft.Personalized)
	assert.Equal(t, onboarding.DefaultPositioning, draft.Topic)
	assert.Equal(t, onboarding.DefaultVoiceStyle, draft.Tone)
}

/*
TestService_Validate verifies the static scores and the empty-draft
validation failure.
*/
func TestService_Validate(t *testing.T) {
	service := newTestDraftService()
	ctx := context.Background()

	scores, err := service.Validate(ctx, "Three words here")
	require.NoError(t, err)
	assert.Equal(t, 3, scores.WordCount)
	assert.InDelta(t, 0.8, scores.Clarity, 0.001)
	assert.NotEmpty(t, scores.Verdict)

	for _, empty := range []string{"", "   ", "\n\t"} {
		_, err := service.Validate(ctx, empty)
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	}
}

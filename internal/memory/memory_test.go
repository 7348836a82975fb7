// Copyright (c) 2026 Plinth. All rights reserved.
// Author: engineering@plinth.app

package memory_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plinth-app/plinth/internal/memory"
	"github.com/plinth-app/plinth/internal/users/onboarding"
)

type fakeProfileSource struct {
	profiles map[string]onboarding.Profile
}

func (source *fakeProfileSource) Get(_ context.Context, userID string) (onboarding.Profile, error) {
	return source.profiles[userID], nil
}

func newTestMemoryService(profiles map[string]onboarding.Profile) *memory.Service {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return memory.NewService(&fakeProfileSource{profiles: profiles}, logger)
}

// manyTerritories exceeds every view cap to exercise prefix truncation.
var manyTerritories = onboarding.Profile{
	"content_territories": []any{"T1", "T2", "T3", "T4", "T5", "T6", "T7"},
}

/*
TestService_State verifies the reinforcement state view and its cap of 5.
*/
func TestService_State(t *testing.T) {
	service := newTestMemoryService(map[string]onboarding.Profile{
		"user": manyTerritories,
	})
	ctx := context.Background()

	state, err := service.State(ctx, "user")
	require.NoError(t, err)
	assert.True(t, state.Personalized)
	require.Len(t, state.Entries, 5)
	assert.Equal(t, "T1", state.Entries[0].Territory)
	assert.Equal(t, "T5", state.Entries[4].Territory)

	// Not onboarded: zeroed view with a message, not an error.
	state, err = service.State(ctx, "stranger")
	require.NoError(t, err)
	assert.False(t, state.Personalized)
	assert.Empty(t, state.Entries)
	assert.NotEmpty(t, state.Message)
}

/*
TestService_ReinforcementCounts verifies tallies are capped at 5 and zeroed.
*/
func TestService_ReinforcementCounts(t *testing.T) {
	service := newTestMemoryService(map[string]onboarding.Profile{
		"user": manyTerritories,
	})
	ctx := context.Background()

	counts, err := service.ReinforcementCounts(ctx, "user")
	require.NoError(t, err)
	require.Len(t, counts, 5)
	for _, count := range counts {
		assert.Zero(t, count.Count)
	}

	counts, err = service.ReinforcementCounts(ctx, "stranger")
	require.NoError(t, err)
	assert.Empty(t, counts)
}

/*
TestService_TerritoryCoverage verifies the coverage view and its cap of 6.
*/
func TestService_TerritoryCoverage(t *testing.T) {
	service := newTestMemoryService(map[string]onboarding.Profile{
		"user": manyTerritories,
	})
	ctx := context.Background()

	coverage, err := service.TerritoryCoverage(ctx, "user")
	require.NoError(t, err)
	require.Len(t, coverage, 6)
	assert.Equal(t, "T6", coverage[5].Territory)
	assert.Equal(t, "low", coverage[0].Coverage)
	assert.Contains(t, coverage[0].Suggestion, "T1")

	coverage, err = service.TerritoryCoverage(ctx, "stranger")
	require.NoError(t, err)
	assert.Empty(t, coverage)
}

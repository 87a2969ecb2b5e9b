package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shelterplus/shelterplus-api/internal/domain"
	"github.com/shelterplus/shelterplus-api/internal/service"
	"github.com/shelterplus/shelterplus-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameService_EnqueueMinute_Idempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	env := testutil.NewTestEnv(t)
	ctx := context.Background()

	_, game := testutil.StartedGame(t, env, nil)
	first := game.Players[0]
	second := game.Players[1]

	req1, err := env.Services.Game.EnqueueMinute(ctx, game.ID, 1, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, req1.Position)

	// Re-enqueueing the same player returns the existing request
	again, err := env.Services.Game.EnqueueMinute(ctx, game.ID, 1, first.ID)
	require.NoError(t, err)
	assert.Equal(t, req1.ID, again.ID)
	assert.Equal(t, 1, again.Position)

	req2, err := env.Services.Game.EnqueueMinute(ctx, game.ID, 1, second.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, req2.Position)

	queue, err := env.Services.Game.MinuteQueue(ctx, game.ID, 1)
	require.NoError(t, err)
	assert.Len(t, queue, 2)
}

func TestGameService_ApproveMinute_NotQueued(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	env := testutil.NewTestEnv(t)
	ctx := context.Background()

	_, game := testutil.StartedGame(t, env, nil)

	_, err := env.Services.Game.ApproveMinute(ctx, game.ID, game.Players[0].ID, 1)
	assert.ErrorIs(t, err, service.ErrMinuteNotFound)
}

func TestGameService_ControlMinuteTimer_DurationInheritance(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	env := testutil.NewTestEnv(t)
	ctx := context.Background()

	_, game := testutil.StartedGame(t, env, testutil.NewLobbyBuilder().WithMinuteDuration(90))
	player := game.Players[0]

	_, err := env.Services.Game.EnqueueMinute(ctx, game.ID, 1, player.ID)
	require.NoError(t, err)
	_, err = env.Services.Game.ApproveMinute(ctx, game.ID, player.ID, 1)
	require.NoError(t, err)

	// No explicit duration: fall back to the lobby's configured one
	started, err := env.Services.Game.ControlMinuteTimer(ctx, game.ID, &player.ID, service.TimerActionStart, nil)
	require.NoError(t, err)
	require.NotNil(t, started.StartedAt)
	require.NotNil(t, started.DurationSec)
	assert.Equal(t, 90, *started.DurationSec)

	// Stop clears the running mark but keeps the duration
	stopped, err := env.Services.Game.ControlMinuteTimer(ctx, game.ID, &player.ID, service.TimerActionStop, nil)
	require.NoError(t, err)
	assert.Nil(t, stopped.StartedAt)
	require.NotNil(t, stopped.DurationSec)
	assert.Equal(t, 90, *stopped.DurationSec)

	// Explicit duration wins over everything
	explicit := 45
	reset, err := env.Services.Game.ControlMinuteTimer(ctx, game.ID, &player.ID, service.TimerActionReset, &explicit)
	require.NoError(t, err)
	require.NotNil(t, reset.DurationSec)
	assert.Equal(t, 45, *reset.DurationSec)
}

func TestGameService_ControlMinuteTimer_LatestApproved(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	env := testutil.NewTestEnv(t)
	ctx := context.Background()

	_, game := testutil.StartedGame(t, env, nil)
	player := game.Players[0]

	// Nothing queued yet
	_, err := env.Services.Game.ControlMinuteTimer(ctx, game.ID, nil, service.TimerActionStart, nil)
	assert.ErrorIs(t, err, service.ErrMinuteNotFound)

	_, err = env.Services.Game.EnqueueMinute(ctx, game.ID, 1, player.ID)
	require.NoError(t, err)
	_, err = env.Services.Game.ApproveMinute(ctx, game.ID, player.ID, 1)
	require.NoError(t, err)

	// With no player named, the latest approved request is the target
	started, err := env.Services.Game.ControlMinuteTimer(ctx, game.ID, nil, service.TimerActionStart, nil)
	require.NoError(t, err)
	assert.Equal(t, player.ID, started.PlayerID)
}

func TestGameService_ControlMinuteTimer_UnknownAction(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	env := testutil.NewTestEnv(t)
	ctx := context.Background()

	_, game := testutil.StartedGame(t, env, nil)
	player := game.Players[0]

	_, err := env.Services.Game.EnqueueMinute(ctx, game.ID, 1, player.ID)
	require.NoError(t, err)

	_, err = env.Services.Game.ControlMinuteTimer(ctx, game.ID, &player.ID, service.TimerAction("pause"), nil)
	assert.ErrorIs(t, err, service.ErrInvalidTimerAction)
}

func TestMinuteRequest_RemainingSec(t *testing.T) {
	started := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	duration := 60
	req := &domain.MinuteRequest{
		ID:          uuid.New(),
		StartedAt:   &started,
		DurationSec: &duration,
	}

	assert.Equal(t, 60, req.RemainingSec(started))
	assert.Equal(t, 30, req.RemainingSec(started.Add(30*time.Second)))
	// Elapsed time truncates to whole seconds
	assert.Equal(t, 30, req.RemainingSec(started.Add(30*time.Second+500*time.Millisecond)))
	// Floors at zero once elapsed
	assert.Equal(t, 0, req.RemainingSec(started.Add(2*time.Minute)))

	// Not running means zero
	idle := &domain.MinuteRequest{ID: uuid.New()}
	assert.Equal(t, 0, idle.RemainingSec(started))
}

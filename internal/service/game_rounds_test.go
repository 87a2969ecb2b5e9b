package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shelterplus/shelterplus-api/internal/domain"
	"github.com/shelterplus/shelterplus-api/internal/service"
	"github.com/shelterplus/shelterplus-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameService_StartRound_AutoRevealsProfessions(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	env := testutil.NewTestEnv(t)
	ctx := context.Background()

	_, game := testutil.StartedGame(t, env, nil)

	updated, err := env.Services.Game.StartRound(ctx, game.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.CurrentRound)
	assert.Contains(t, env.Broadcaster.EventNames(), service.RealtimeRoundChange)

	players, err := env.Repos.Player.GetByGameID(ctx, game.ID)
	require.NoError(t, err)
	for _, player := range players {
		for _, card := range player.Cards {
			if card.Category == domain.CategoryProfession {
				assert.True(t, card.IsOpen, "profession card should auto-open at round 1")
				require.NotNil(t, card.OpenedRound)
				assert.Equal(t, 1, *card.OpenedRound)
			} else {
				assert.False(t, card.IsOpen)
			}
		}
	}

	// The reveal is logged once, distinct from manual opens
	events, err := env.Repos.GameEvent.List(ctx, game.ID, listAll())
	require.NoError(t, err)
	revealed := 0
	for _, e := range events {
		if e.Type == domain.EventProfessionsRevealed {
			revealed++
		}
	}
	assert.Equal(t, 1, revealed)
}

func TestGameService_StartRound_Regression(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	env := testutil.NewTestEnv(t)
	ctx := context.Background()

	_, game := testutil.StartedGame(t, env, nil)

	_, err := env.Services.Game.StartRound(ctx, game.ID, 2)
	require.NoError(t, err)

	_, err = env.Services.Game.StartRound(ctx, game.ID, 2)
	assert.ErrorIs(t, err, service.ErrRoundRegression)

	_, err = env.Services.Game.StartRound(ctx, game.ID, 1)
	assert.ErrorIs(t, err, service.ErrRoundRegression)
}

func TestGameService_OpenCategory_Idempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	env := testutil.NewTestEnv(t)
	ctx := context.Background()

	_, game := testutil.StartedGame(t, env, nil)
	player := game.Players[0]

	_, err := env.Services.Game.StartRound(ctx, game.ID, 1)
	require.NoError(t, err)

	card, err := env.Services.Game.OpenCategory(ctx, game.ID, player.ID, domain.CategoryHobby, 1)
	require.NoError(t, err)
	assert.True(t, card.IsOpen)
	require.NotNil(t, card.OpenedRound)
	assert.Equal(t, 1, *card.OpenedRound)
	firstOpenedAt := card.OpenedAt

	// Re-opening in a later round changes nothing
	again, err := env.Services.Game.OpenCategory(ctx, game.ID, player.ID, domain.CategoryHobby, 2)
	require.NoError(t, err)
	assert.True(t, again.IsOpen)
	assert.Equal(t, 1, *again.OpenedRound)
	assert.Equal(t, firstOpenedAt.Unix(), again.OpenedAt.Unix())

	events, err := env.Repos.GameEvent.List(ctx, game.ID, listAll())
	require.NoError(t, err)
	opened := 0
	for _, e := range events {
		if e.Type == domain.EventCategoryOpened {
			opened++
		}
	}
	assert.Equal(t, 1, opened, "idempotent re-open must not log a second event")
}

func TestGameService_OpenCategory_WrongPlayer(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	env := testutil.NewTestEnv(t)
	ctx := context.Background()

	_, game := testutil.StartedGame(t, env, nil)

	_, err := env.Services.Game.OpenCategory(ctx, game.ID, uuid.New(), domain.CategoryHobby, 1)
	assert.ErrorIs(t, err, service.ErrPlayerNotFound)
}

func TestGameService_PreselectCategories_Upsert(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	env := testutil.NewTestEnv(t)
	ctx := context.Background()

	_, game := testutil.StartedGame(t, env, nil)
	player := game.Players[0]

	plan, err := env.Services.Game.PreselectCategories(ctx, game.ID, player.ID, 1,
		[]domain.CardCategory{domain.CategoryHobby})
	require.NoError(t, err)
	assert.Equal(t, []domain.CardCategory{domain.CategoryHobby}, plan.DecodedCategories())

	// Second call replaces the plan in place
	plan, err = env.Services.Game.PreselectCategories(ctx, game.ID, player.ID, 1,
		[]domain.CardCategory{domain.CategoryHealth, domain.CategoryLuggage})
	require.NoError(t, err)
	assert.Equal(t, []domain.CardCategory{domain.CategoryHealth, domain.CategoryLuggage}, plan.DecodedCategories())

	plans, err := env.Repos.RevealPlan.GetByGameAndRound(ctx, game.ID, 1)
	require.NoError(t, err)
	assert.Len(t, plans, 1)

	// The plan never opens cards by itself
	fetched, err := env.Repos.Player.GetByID(ctx, player.ID)
	require.NoError(t, err)
	for _, card := range fetched.Cards {
		assert.False(t, card.IsOpen)
	}
}

func TestGameService_KickPlayer(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	env := testutil.NewTestEnv(t)
	ctx := context.Background()

	_, game := testutil.StartedGame(t, env, nil)
	player := game.Players[0]

	kicked, err := env.Services.Game.KickPlayer(ctx, game.ID, player.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PlayerStatusOut, kicked.Status)

	assert.Equal(t, 1, env.Broadcaster.CountEvent(service.RealtimePlayerKicked))
}

func TestGameService_TriggerEnding_SetOnce(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	env := testutil.NewTestEnv(t)
	ctx := context.Background()

	_, game := testutil.StartedGame(t, env, nil)

	ended, err := env.Services.Game.TriggerEnding(ctx, game.ID)
	require.NoError(t, err)
	assert.True(t, ended.HasEnded())

	_, err = env.Services.Game.TriggerEnding(ctx, game.ID)
	assert.ErrorIs(t, err, service.ErrEndingAlreadySet)

	// The stored ending survives a reload unchanged
	reloaded, err := env.Services.Game.GetGame(ctx, game.ID)
	require.NoError(t, err)
	assert.Equal(t, string(ended.Ending), string(reloaded.Ending))
}

func TestGameService_SetSpectatorsEnabled(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	env := testutil.NewTestEnv(t)
	ctx := context.Background()

	_, game := testutil.StartedGame(t, env, nil)

	updated, err := env.Services.Game.SetSpectatorsEnabled(ctx, game.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.IsSpectatorsEnabled)

	_, err = env.Services.Game.SpectatorState(ctx, game.ID)
	assert.ErrorIs(t, err, service.ErrSpectatorsDisabled)
}

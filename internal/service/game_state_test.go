package service_test

import (
	"context"
	"testing"

	"github.com/shelterplus/shelterplus-api/internal/domain"
	"github.com/shelterplus/shelterplus-api/internal/repository"
	"github.com/shelterplus/shelterplus-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameService_StateViews(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	env := testutil.NewTestEnv(t)
	ctx := context.Background()

	_, game := testutil.StartedGame(t, env, nil)
	player := game.Players[0]

	_, err := env.Services.Game.StartRound(ctx, game.ID, 1)
	require.NoError(t, err)
	_, err = env.Services.Game.OpenCategory(ctx, game.ID, player.ID, domain.CategoryLuggage, 1)
	require.NoError(t, err)

	// Host view carries every card value
	hostState, err := env.Services.Game.GetState(ctx, game.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, hostState.CurrentRound)
	for _, p := range hostState.Players {
		for _, c := range p.Cards {
			assert.NotEmpty(t, c.Title, "host view must include hidden card values")
		}
	}

	// Public view redacts everything unopened
	publicState, err := env.Services.Game.SpectatorState(ctx, game.ID)
	require.NoError(t, err)
	for _, p := range publicState.Players {
		for _, c := range p.Cards {
			if c.IsOpen {
				assert.NotEmpty(t, c.Title)
			} else {
				assert.Empty(t, c.Title, "unopened cards must be redacted for spectators")
			}
		}
	}
}

func TestGameService_ListEvents_Pagination(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	env := testutil.NewTestEnv(t)
	ctx := context.Background()

	builder := testutil.NewLobbyBuilder().
		WithMode(domain.LobbyModeCustom).
		WithRounds(3)
	_, game := testutil.StartedGame(t, env, builder)
	for round := 1; round <= 3; round++ {
		_, err := env.Services.Game.StartRound(ctx, game.ID, round)
		require.NoError(t, err)
		require.NoError(t, env.Services.Game.EndRound(ctx, game.ID, round))
	}

	// Newest-first pages stitched by cursor cover the log without overlap
	firstPage, err := env.Services.Game.ListEvents(ctx, game.ID, repository.EventFilter{Take: 3})
	require.NoError(t, err)
	require.Len(t, firstPage, 3)

	cursor := firstPage[len(firstPage)-1].ID
	secondPage, err := env.Services.Game.ListEvents(ctx, game.ID, repository.EventFilter{Take: 3, Cursor: &cursor})
	require.NoError(t, err)
	require.NotEmpty(t, secondPage)

	seen := map[string]bool{}
	for _, e := range append(firstPage, secondPage...) {
		assert.False(t, seen[e.ID.String()], "pages must not overlap")
		seen[e.ID.String()] = true
	}

	// Type filter narrows to matching events only
	roundEnds, err := env.Services.Game.ListEvents(ctx, game.ID, repository.EventFilter{Type: domain.EventRoundEnded})
	require.NoError(t, err)
	require.Len(t, roundEnds, 3)
	for _, e := range roundEnds {
		assert.Equal(t, domain.EventRoundEnded, e.Type)
	}
}

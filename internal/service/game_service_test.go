package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shelterplus/shelterplus-api/internal/domain"
	"github.com/shelterplus/shelterplus-api/internal/repository"
	"github.com/shelterplus/shelterplus-api/internal/service"
	"github.com/shelterplus/shelterplus-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// listAll is a wide-open event filter for assertions over the full log.
func listAll() repository.EventFilter {
	return repository.EventFilter{Take: 100}
}

func TestGameService_StartFromLobby(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	env := testutil.NewTestEnv(t)
	ctx := context.Background()

	lobby := testutil.NewLobbyBuilder().
		WithPlayers(6).
		WithChannels(domain.ChannelsConfig{TextChannelID: "text-123"}).
		Create(t, env.DB.DB)

	hostID := uuid.New()
	game, err := env.Services.Game.StartFromLobby(ctx, lobby.ID, hostID)
	require.NoError(t, err)
	require.NotNil(t, game)

	assert.Equal(t, lobby.ID, game.LobbyID)
	assert.NotEmpty(t, game.Apocalypse)
	assert.NotEmpty(t, game.Bunker)
	assert.Equal(t, 3, game.Seats) // half of 6 players
	assert.Equal(t, 0, game.CurrentRound)
	assert.True(t, game.IsSpectatorsEnabled)
	assert.False(t, game.HasEnded())

	// One player per roster entry, one card per enabled category each
	require.Len(t, game.Players, 6)
	for _, player := range game.Players {
		assert.Len(t, player.Cards, len(domain.CardCategoryOrder))
		for _, card := range player.Cards {
			assert.False(t, card.IsOpen)
			assert.NotEmpty(t, card.DecodedPayload().Title)
		}
	}

	// Opening event and host admin are created with the game
	events, err := env.Repos.GameEvent.List(ctx, game.ID, listAll())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventGameStarted, events[0].Type)

	admin, err := env.Repos.GameAdmin.GetByGameAndUser(ctx, game.ID, hostID)
	require.NoError(t, err)
	assert.Equal(t, domain.GameAdminRoleHost, admin.Role)

	// Channel summary plus hidden listings plus a DM per player
	assert.GreaterOrEqual(t, env.Notifier.ChannelMessageCount(), 2)
	assert.Len(t, env.Notifier.DirectMessages, 6)
}

func TestGameService_StartFromLobby_DisabledCategory(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	env := testutil.NewTestEnv(t)
	ctx := context.Background()

	lobby := testutil.NewLobbyBuilder().
		WithPlayers(4).
		WithCategoryDisabled(domain.CategoryPhobia).
		Create(t, env.DB.DB)

	game, err := env.Services.Game.StartFromLobby(ctx, lobby.ID, uuid.New())
	require.NoError(t, err)

	for _, player := range game.Players {
		assert.Len(t, player.Cards, len(domain.CardCategoryOrder)-1)
		for _, card := range player.Cards {
			assert.NotEqual(t, domain.CategoryPhobia, card.Category)
		}
	}
}

func TestGameService_StartFromLobby_EmptyLobby(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	env := testutil.NewTestEnv(t)
	ctx := context.Background()

	lobby := testutil.NewLobbyBuilder().WithPlayers(0).Create(t, env.DB.DB)

	_, err := env.Services.Game.StartFromLobby(ctx, lobby.ID, uuid.New())
	assert.ErrorIs(t, err, service.ErrLobbyEmpty)
}

func TestGameService_StartFromLobby_DoubleStart(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	env := testutil.NewTestEnv(t)
	ctx := context.Background()

	lobby, _ := testutil.StartedGame(t, env, nil)

	_, err := env.Services.Game.StartFromLobby(ctx, lobby.ID, uuid.New())
	assert.ErrorIs(t, err, service.ErrGameAlreadyStarted)
}

func TestGameService_StartFromLobby_LobbyNotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	env := testutil.NewTestEnv(t)

	_, err := env.Services.Game.StartFromLobby(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, service.ErrLobbyNotFound)
}

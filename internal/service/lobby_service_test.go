package service_test

import (
	"context"
	"testing"

	"github.com/shelterplus/shelterplus-api/internal/domain"
	"github.com/shelterplus/shelterplus-api/internal/service"
	"github.com/shelterplus/shelterplus-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLobbyService_Create(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	env := testutil.NewTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		input   service.CreateLobbyInput
		wantErr error
	}{
		{
			name: "web lobby with defaults",
			input: service.CreateLobbyInput{
				Mode:              domain.LobbyModeWeb,
				Rounds:            3,
				MinuteDurationSec: 60,
			},
		},
		{
			name: "custom lobby with disabled category",
			input: service.CreateLobbyInput{
				Mode:              domain.LobbyModeCustom,
				Rounds:            5,
				MinuteDurationSec: 90,
				EnabledCategories: map[domain.CardCategory]bool{domain.CategoryPhobia: false},
			},
		},
		{
			name: "zero rounds rejected",
			input: service.CreateLobbyInput{
				Mode:              domain.LobbyModeWeb,
				Rounds:            0,
				MinuteDurationSec: 60,
			},
			wantErr: service.ErrInvalidRounds,
		},
		{
			name: "zero duration rejected",
			input: service.CreateLobbyInput{
				Mode:              domain.LobbyModeWeb,
				Rounds:            3,
				MinuteDurationSec: 0,
			},
			wantErr: service.ErrInvalidDuration,
		},
		{
			name: "unknown mode rejected",
			input: service.CreateLobbyInput{
				Mode:              domain.LobbyMode("RANKED"),
				Rounds:            3,
				MinuteDurationSec: 60,
			},
			wantErr: service.ErrInvalidMode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env.DB.Truncate(t)

			lobby, err := env.Services.Lobby.Create(ctx, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.input.Mode, lobby.Mode)
			assert.Equal(t, tt.input.Rounds, lobby.Rounds)
			assert.Equal(t, tt.input.MinuteDurationSec, lobby.MinuteDurationSec)

			categories := lobby.Categories()
			for cat, want := range domain.NormalizeCategories(tt.input.EnabledCategories) {
				assert.Equal(t, want, categories[cat], "category %s", cat)
			}
		})
	}
}

func TestLobbyService_Create_OfficialPreset(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	env := testutil.NewTestEnv(t)
	ctx := context.Background()

	presetIndex := 1
	lobby, err := env.Services.Lobby.Create(ctx, service.CreateLobbyInput{
		Mode:              domain.LobbyModeOfficial,
		Rounds:            3,
		MinuteDurationSec: 60,
		Channels:          domain.ChannelsConfig{OfficialPresetIndex: &presetIndex},
	})
	require.NoError(t, err)

	preset := env.Presets.GetByIndex(presetIndex)
	require.NotNil(t, preset)

	channels := lobby.Channels()
	assert.Equal(t, preset.VoiceChannelID, channels.VoiceChannelID)
	assert.Equal(t, preset.TextChannelID, channels.TextChannelID)
}

func TestLobbyService_CollectPlayers(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	env := testutil.NewTestEnv(t)
	ctx := context.Background()

	lobby := testutil.NewLobbyBuilder().
		WithPlayers(0).
		WithChannels(domain.ChannelsConfig{VoiceChannelID: "voice-1"}).
		Create(t, env.DB.DB)

	env.Notifier.VoiceParticipants = []service.VoiceParticipant{
		{ID: "d-1", Nickname: "3 Alice"},
		{ID: "d-2", Nickname: "Bob"},
		{ID: "d-3", Nickname: "7Carol"},
	}

	players, err := env.Services.Lobby.CollectPlayers(ctx, lobby.ID)
	require.NoError(t, err)
	require.Len(t, players, 3)

	byDiscord := map[string]*domain.LobbyPlayer{}
	for _, p := range players {
		byDiscord[*p.DiscordID] = p
	}

	// Leading digits become the seat number, the rest the nickname
	assert.Equal(t, 3, byDiscord["d-1"].Number)
	assert.Equal(t, "Alice", byDiscord["d-1"].Nickname)
	assert.Equal(t, 7, byDiscord["d-3"].Number)
	assert.Equal(t, "Carol", byDiscord["d-3"].Nickname)
	// No prefix: next free fallback number
	assert.Equal(t, 1, byDiscord["d-2"].Number)
	assert.Equal(t, "Bob", byDiscord["d-2"].Nickname)
}

func TestLobbyService_CollectPlayers_EmptyFetchKeepsRoster(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	env := testutil.NewTestEnv(t)
	ctx := context.Background()

	lobby := testutil.NewLobbyBuilder().
		WithPlayers(4).
		WithChannels(domain.ChannelsConfig{VoiceChannelID: "voice-1"}).
		Create(t, env.DB.DB)

	// Empty voice channel: the stored roster survives
	env.Notifier.VoiceParticipants = nil

	players, err := env.Services.Lobby.CollectPlayers(ctx, lobby.ID)
	require.NoError(t, err)
	assert.Len(t, players, 4)
}

func TestLobbyService_UpdatePlayers_Replaces(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	env := testutil.NewTestEnv(t)
	ctx := context.Background()

	lobby := testutil.NewLobbyBuilder().WithPlayers(4).Create(t, env.DB.DB)

	players, err := env.Services.Lobby.UpdatePlayers(ctx, lobby.ID, []service.RosterEntry{
		{Number: 1, Nickname: "Dana"},
		{Number: 2, Nickname: "Eli"},
	})
	require.NoError(t, err)
	require.Len(t, players, 2, "roster replacement is wholesale")
}

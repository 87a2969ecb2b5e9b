package testutil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shelterplus/shelterplus-api/internal/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var errNotifierDown = errors.New("notifier unavailable")

// LobbyBuilder creates test lobbies with a builder pattern
type LobbyBuilder struct {
	mode              domain.LobbyMode
	rounds            int
	minuteDurationSec int
	categories        map[domain.CardCategory]bool
	channels          domain.ChannelsConfig
	playerCount       int
}

// NewLobbyBuilder creates a LobbyBuilder with sensible defaults: a web lobby
// with 3 rounds and 6 players.
func NewLobbyBuilder() *LobbyBuilder {
	return &LobbyBuilder{
		mode:              domain.LobbyModeWeb,
		rounds:            3,
		minuteDurationSec: domain.DefaultMinuteDurationSec,
		categories:        map[domain.CardCategory]bool{},
		playerCount:       6,
	}
}

// WithMode sets the lobby mode
func (b *LobbyBuilder) WithMode(mode domain.LobbyMode) *LobbyBuilder {
	b.mode = mode
	return b
}

// WithRounds sets the round count
func (b *LobbyBuilder) WithRounds(rounds int) *LobbyBuilder {
	b.rounds = rounds
	return b
}

// WithMinuteDuration sets the per-turn speaking duration
func (b *LobbyBuilder) WithMinuteDuration(sec int) *LobbyBuilder {
	b.minuteDurationSec = sec
	return b
}

// WithCategoryDisabled excludes a category from the deal
func (b *LobbyBuilder) WithCategoryDisabled(c domain.CardCategory) *LobbyBuilder {
	b.categories[c] = false
	return b
}

// WithChannels sets the Discord channel wiring
func (b *LobbyBuilder) WithChannels(channels domain.ChannelsConfig) *LobbyBuilder {
	b.channels = channels
	return b
}

// WithPlayers sets how many roster players to seed
func (b *LobbyBuilder) WithPlayers(count int) *LobbyBuilder {
	b.playerCount = count
	return b
}

// Create persists the lobby and its roster
func (b *LobbyBuilder) Create(t *testing.T, db *gorm.DB) *domain.Lobby {
	t.Helper()

	categories, err := json.Marshal(domain.NormalizeCategories(b.categories))
	if err != nil {
		t.Fatalf("failed to marshal categories: %v", err)
	}
	channels, err := json.Marshal(b.channels)
	if err != nil {
		t.Fatalf("failed to marshal channels: %v", err)
	}

	lobby := &domain.Lobby{
		ID:                uuid.New(),
		Mode:              b.mode,
		Rounds:            b.rounds,
		MinuteDurationSec: b.minuteDurationSec,
		EnabledCategories: datatypes.JSON(categories),
		ChannelsConfig:    datatypes.JSON(channels),
	}

	for i := 1; i <= b.playerCount; i++ {
		discordID := fmt.Sprintf("discord-%d", i)
		lobby.Players = append(lobby.Players, domain.LobbyPlayer{
			ID:        uuid.New(),
			Number:    i,
			Nickname:  fmt.Sprintf("Player %d", i),
			DiscordID: &discordID,
		})
	}

	if err := db.WithContext(context.Background()).Create(lobby).Error; err != nil {
		t.Fatalf("failed to create lobby fixture: %v", err)
	}

	return lobby
}

// StartedGame seeds a lobby and starts a game from it through the real
// service, returning both. The caller's env fakes record the side effects.
func StartedGame(t *testing.T, env *TestEnv, builder *LobbyBuilder) (*domain.Lobby, *domain.Game) {
	t.Helper()

	if builder == nil {
		builder = NewLobbyBuilder()
	}
	lobby := builder.Create(t, env.DB.DB)

	game, err := env.Services.Game.StartFromLobby(context.Background(), lobby.ID, uuid.New())
	if err != nil {
		t.Fatalf("failed to start game fixture: %v", err)
	}
	return lobby, game
}

package service

import (
	"context"

	"github.com/shelterplus/shelterplus-api/internal/config"
	"github.com/shelterplus/shelterplus-api/internal/repository"
)

// VoiceParticipant is one member of a Discord voice channel at collect time.
type VoiceParticipant struct {
	ID       string
	Nickname string
}

// Notifier is the outbound Discord side channel. Every call is best-effort:
// callers log failures and move on, never roll back.
type Notifier interface {
	PostToChannel(ctx context.Context, channelID, content string) error
	SendDirectMessage(ctx context.Context, discordUserID, content string) error
	FetchVoiceParticipants(ctx context.Context, voiceChannelID string) ([]VoiceParticipant, error)
}

// Broadcaster pushes room-scoped realtime events. Delivery is at-most-once;
// emits for rooms nobody joined are dropped.
type Broadcaster interface {
	Emit(gameID, event string, payload interface{})
}

// Realtime event names pushed to game rooms.
const (
	RealtimeRoundChange    = "round:change"
	RealtimeCharOpen       = "char:open"
	RealtimeCharPreselect  = "char:preselect"
	RealtimeMinutesQueue   = "minutes:queue"
	RealtimeMinutesTimer   = "minutes:timer"
	RealtimeVoteStats      = "vote:stats"
	RealtimePlayerKicked   = "player:kicked"
	RealtimeEventsAppend   = "events:append"
	RealtimeSpectatorState = "spectator:state"
	RealtimeEndingShow     = "ending:show"
)

type Services struct {
	Lobby *LobbyService
	Game  *GameService
}

func NewServices(repos *repository.Repositories, presets *config.OfficialPresets, notifier Notifier, broadcaster Broadcaster) *Services {
	return &Services{
		Lobby: NewLobbyService(repos.Lobby, repos.LobbyPlayer, presets, notifier),
		Game: NewGameService(
			repos.Lobby,
			repos.Game,
			repos.Player,
			repos.Card,
			repos.Vote,
			repos.Minute,
			repos.RevealPlan,
			repos.GameEvent,
			repos.GameAdmin,
			repos.Invite,
			notifier,
			broadcaster,
		),
	}
}

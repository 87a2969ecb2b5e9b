package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shelterplus/shelterplus-api/internal/deck"
	"github.com/shelterplus/shelterplus-api/internal/domain"
	"github.com/shelterplus/shelterplus-api/internal/metrics"
	"github.com/shelterplus/shelterplus-api/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrGameNotFound          = errors.New("game not found")
	ErrPlayerNotFound        = errors.New("player not found")
	ErrCardNotFound          = errors.New("card not found")
	ErrLobbyEmpty            = errors.New("cannot start game without players")
	ErrGameAlreadyStarted    = errors.New("game already started")
	ErrRoundRegression       = errors.New("round must move forward")
	ErrRoundOutOfRange       = errors.New("round is ahead of game progress")
	ErrMinuteNotFound        = errors.New("minute request not found")
	ErrInvalidTimerAction    = errors.New("unknown timer action")
	ErrEndingAlreadySet      = errors.New("ending already triggered")
	ErrSpectatorsDisabled    = errors.New("spectators are disabled for this game")
	ErrInviteNotFound        = errors.New("invite not found")
	ErrInviteExpired         = errors.New("invite expired")
	ErrInviteConflict        = errors.New("invite already used by another user")
	ErrUnsupportedInviteRole = errors.New("unsupported invite role")
)

// discordListingChunkSize is how many players share one hidden-card message in
// the channel summary.
const discordListingChunkSize = 4

type GameService struct {
	lobbyRepo   repository.LobbyRepository
	gameRepo    repository.GameRepository
	playerRepo  repository.PlayerRepository
	cardRepo    repository.CardRepository
	voteRepo    repository.VoteRepository
	minuteRepo  repository.MinuteRequestRepository
	revealRepo  repository.RevealPlanRepository
	eventRepo   repository.GameEventRepository
	adminRepo   repository.GameAdminRepository
	inviteRepo  repository.InviteRepository
	notifier    Notifier
	broadcaster Broadcaster

	// now is swappable in tests
	now func() time.Time
}

func NewGameService(
	lobbyRepo repository.LobbyRepository,
	gameRepo repository.GameRepository,
	playerRepo repository.PlayerRepository,
	cardRepo repository.CardRepository,
	voteRepo repository.VoteRepository,
	minuteRepo repository.MinuteRequestRepository,
	revealRepo repository.RevealPlanRepository,
	eventRepo repository.GameEventRepository,
	adminRepo repository.GameAdminRepository,
	inviteRepo repository.InviteRepository,
	notifier Notifier,
	broadcaster Broadcaster,
) *GameService {
	return &GameService{
		lobbyRepo:   lobbyRepo,
		gameRepo:    gameRepo,
		playerRepo:  playerRepo,
		cardRepo:    cardRepo,
		voteRepo:    voteRepo,
		minuteRepo:  minuteRepo,
		revealRepo:  revealRepo,
		eventRepo:   eventRepo,
		adminRepo:   adminRepo,
		inviteRepo:  inviteRepo,
		notifier:    notifier,
		broadcaster: broadcaster,
		now:         time.Now,
	}
}

// StartFromLobby creates the game for a lobby: scenario draw, seat count,
// deterministic deal, players, cards, host admin and opening event, all in one
// transaction. Discord notification happens after commit and never rolls the
// game back.
func (s *GameService) StartFromLobby(ctx context.Context, lobbyID, hostUserID uuid.UUID) (*domain.Game, error) {
	lobby, err := s.lobbyRepo.GetByID(ctx, lobbyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLobbyNotFound
		}
		return nil, err
	}

	if len(lobby.Players) == 0 {
		return nil, ErrLobbyEmpty
	}
	if lobby.Game != nil {
		return nil, ErrGameAlreadyStarted
	}

	enabled := lobby.Categories()
	rng := deck.NewRand(deck.Seed(lobby))

	apocalypse := deck.Pick(deck.ApocalypsePool, rng)
	bunker := deck.Pick(deck.BunkerPool, rng)
	seats := len(lobby.Players) / 2

	dealt := deck.Deal(lobby.Players, enabled, rng)

	players := make([]domain.Player, 0, len(dealt))
	for _, dp := range dealt {
		cards := make([]domain.Card, 0, len(dp.Cards))
		for _, dc := range dp.Cards {
			payload, _ := json.Marshal(domain.CardPayload{Title: dc.Value})
			cards = append(cards, domain.Card{
				ID:       uuid.New(),
				Category: dc.Category,
				Payload:  datatypes.JSON(payload),
			})
		}
		players = append(players, domain.Player{
			ID:        uuid.New(),
			Number:    dp.Number,
			Nickname:  dp.Nickname,
			DiscordID: dp.DiscordID,
			Status:    domain.PlayerStatusAlive,
			Role:      domain.PlayerRolePlayer,
			Cards:     cards,
		})
	}

	startedPayload, _ := json.Marshal(map[string]interface{}{
		"apocalypse": apocalypse,
		"bunker":     bunker,
		"seats":      seats,
		"players":    len(lobby.Players),
	})

	game := &domain.Game{
		ID:                  uuid.New(),
		LobbyID:             lobby.ID,
		Apocalypse:          apocalypse,
		Bunker:              bunker,
		Seats:               seats,
		IsSpectatorsEnabled: true,
		Players:             players,
		Events: []domain.GameEvent{{
			ID:      uuid.New(),
			Type:    domain.EventGameStarted,
			Payload: datatypes.JSON(startedPayload),
		}},
		Admins: []domain.GameAdmin{{
			ID:     uuid.New(),
			UserID: hostUserID,
			Role:   domain.GameAdminRoleHost,
		}},
	}

	if err := s.gameRepo.CreateWithDeal(ctx, game); err != nil {
		// Concurrent double-starts race the pre-check; the unique index on
		// lobby_id is the authoritative rejection.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrGameAlreadyStarted
		}
		return nil, err
	}
	metrics.EventsAppended.Inc()

	created, err := s.gameRepo.GetByID(ctx, game.ID)
	if err != nil {
		return nil, err
	}

	s.sendStartNotifications(ctx, created, lobby)

	return created, nil
}

func (s *GameService) GetGame(ctx context.Context, gameID uuid.UUID) (*domain.Game, error) {
	game, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return game, nil
}

// ensureRound guards operations acting on a round: the game must exist and
// the round may be at most one ahead of actual progress.
func (s *GameService) ensureRound(ctx context.Context, gameID uuid.UUID, round int) (*domain.Game, error) {
	game, err := s.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if round > game.CurrentRound+1 {
		return nil, ErrRoundOutOfRange
	}
	return game, nil
}

func (s *GameService) getGamePlayer(ctx context.Context, gameID, playerID uuid.UUID) (*domain.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	if player.GameID != gameID {
		return nil, ErrPlayerNotFound
	}
	return player, nil
}

// logEvent appends the audit record for a mutation and mirrors it to the room
// as events:append. Log failures are reported but do not fail the mutation
// that already committed.
func (s *GameService) logEvent(ctx context.Context, gameID uuid.UUID, eventType string, payload map[string]interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("ERROR [game.logEvent] failed to marshal %s payload: %v", eventType, err)
		return
	}

	event := &domain.GameEvent{
		ID:      uuid.New(),
		GameID:  gameID,
		Type:    eventType,
		Payload: datatypes.JSON(data),
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		log.Printf("ERROR [game.logEvent] failed to append %s: %v", eventType, err)
		return
	}
	metrics.EventsAppended.Inc()

	s.emit(gameID, RealtimeEventsAppend, map[string]interface{}{
		"type":    eventType,
		"payload": payload,
	})
}

func (s *GameService) emit(gameID uuid.UUID, event string, payload interface{}) {
	if s.broadcaster == nil {
		return
	}
	s.broadcaster.Emit(gameID.String(), event, payload)
}

// broadcastPublicState recomputes and pushes the full derived public view.
// This is a push-on-every-change model, not a diff stream.
func (s *GameService) broadcastPublicState(ctx context.Context, gameID uuid.UUID) {
	state, err := s.buildPublicState(ctx, gameID)
	if err != nil {
		log.Printf("ERROR [game.broadcastPublicState] failed to build state for %s: %v", gameID, err)
		return
	}
	s.emit(gameID, RealtimeSpectatorState, state)
}

func (s *GameService) sendStartNotifications(ctx context.Context, game *domain.Game, lobby *domain.Lobby) {
	if s.notifier == nil {
		return
	}
	channels := lobby.Channels()

	if channels.TextChannelID != "" {
		summary := fmt.Sprintf("**Apocalypse**: %s\n**Bunker**: %s", game.Apocalypse, game.Bunker)
		if err := s.notifier.PostToChannel(ctx, channels.TextChannelID, summary); err != nil {
			metrics.DiscordFailures.Inc()
			log.Printf("ERROR [game.notify] failed to post scenario summary: %v", err)
		}

		for start := 0; start < len(game.Players); start += discordListingChunkSize {
			end := start + discordListingChunkSize
			if end > len(game.Players) {
				end = len(game.Players)
			}

			var blocks []string
			for _, player := range game.Players[start:end] {
				lines := []string{fmt.Sprintf("**%d. %s**", player.Number, player.Nickname)}
				for _, card := range player.Cards {
					lines = append(lines, fmt.Sprintf("- %s: _hidden_", card.Category))
				}
				blocks = append(blocks, strings.Join(lines, "\n"))
			}

			if err := s.notifier.PostToChannel(ctx, channels.TextChannelID, strings.Join(blocks, "\n\n")); err != nil {
				metrics.DiscordFailures.Inc()
				log.Printf("ERROR [game.notify] failed to post player listing: %v", err)
			}
		}
	}

	for _, player := range game.Players {
		if player.DiscordID == nil {
			continue
		}

		lines := []string{
			fmt.Sprintf("Apocalypse: %s", game.Apocalypse),
			fmt.Sprintf("Bunker: %s", game.Bunker),
			"Your cards:",
		}
		for _, card := range player.Cards {
			lines = append(lines, fmt.Sprintf("%s: %s", card.Category, card.DecodedPayload().Title))
		}

		if err := s.notifier.SendDirectMessage(ctx, *player.DiscordID, strings.Join(lines, "\n")); err != nil {
			metrics.DiscordFailures.Inc()
			log.Printf("ERROR [game.notify] failed to DM player %d: %v", player.Number, err)
		}
	}
}

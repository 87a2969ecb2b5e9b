package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shelterplus/shelterplus-api/internal/domain"
	"github.com/shelterplus/shelterplus-api/internal/repository"
	"gorm.io/gorm"
)

// CardView is one card as exposed to a reader. Value is omitted for cards the
// reader must not see.
type CardView struct {
	ID          uuid.UUID           `json:"id"`
	Category    domain.CardCategory `json:"category"`
	Title       string              `json:"title,omitempty"`
	Description string              `json:"description,omitempty"`
	IsOpen      bool                `json:"isOpen"`
	OpenedRound *int                `json:"openedRound,omitempty"`
}

// PlayerView is one player in a state view.
type PlayerView struct {
	ID       uuid.UUID           `json:"id"`
	Number   int                 `json:"number"`
	Nickname string              `json:"nickname"`
	Status   domain.PlayerStatus `json:"status"`
	Role     domain.PlayerRole   `json:"role"`
	Cards    []CardView          `json:"cards"`
}

// TimerView is the currently running minute timer, derived on demand.
type TimerView struct {
	PlayerID     uuid.UUID `json:"playerId"`
	Round        int       `json:"round"`
	DurationSec  int       `json:"durationSec"`
	RemainingSec int       `json:"remainingSec"`
}

// QueueEntryView is one position in the host's minute queue view.
type QueueEntryView struct {
	PlayerID uuid.UUID `json:"playerId"`
	Position int       `json:"position"`
	Approved bool      `json:"approved"`
}

// GameStateView is a full derived snapshot of a game. The host view carries
// every card value; the public view only what has been opened.
type GameStateView struct {
	GameID              uuid.UUID        `json:"gameId"`
	Apocalypse          string           `json:"apocalypse"`
	Bunker              string           `json:"bunker"`
	Seats               int              `json:"seats"`
	CurrentRound        int              `json:"currentRound"`
	IsSpectatorsEnabled bool             `json:"isSpectatorsEnabled"`
	Players             []PlayerView     `json:"players"`
	VoteTally           map[string]int   `json:"voteTally"`
	MinuteQueue         []QueueEntryView `json:"minuteQueue,omitempty"`
	Timer               *TimerView       `json:"timer,omitempty"`
	Ending              interface{}      `json:"ending,omitempty"`
	UpdatedAt           time.Time        `json:"updatedAt"`
}

// GetState returns the host view: all card values visible, the current
// round's minute queue and any running timer.
func (s *GameService) GetState(ctx context.Context, gameID uuid.UUID) (*GameStateView, error) {
	game, err := s.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	state, err := s.assembleState(ctx, game, true)
	if err != nil {
		return nil, err
	}

	queue, err := s.minuteRepo.GetQueue(ctx, gameID, game.CurrentRound)
	if err != nil {
		return nil, err
	}
	for _, req := range queue {
		state.MinuteQueue = append(state.MinuteQueue, QueueEntryView{
			PlayerID: req.PlayerID,
			Position: req.Position,
			Approved: req.Approved,
		})
	}

	running, err := s.minuteRepo.GetRunning(ctx, gameID)
	if err == nil && running.DurationSec != nil {
		state.Timer = &TimerView{
			PlayerID:     running.PlayerID,
			Round:        running.Round,
			DurationSec:  *running.DurationSec,
			RemainingSec: running.RemainingSec(s.now()),
		}
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return state, nil
}

// SpectatorState returns the public view. It refuses when spectators are
// disabled for the game.
func (s *GameService) SpectatorState(ctx context.Context, gameID uuid.UUID) (*GameStateView, error) {
	game, err := s.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if !game.IsSpectatorsEnabled {
		return nil, ErrSpectatorsDisabled
	}
	return s.assembleState(ctx, game, false)
}

// buildPublicState is the broadcast variant of SpectatorState: it skips the
// spectator gate because room membership already decided who is listening.
func (s *GameService) buildPublicState(ctx context.Context, gameID uuid.UUID) (*GameStateView, error) {
	game, err := s.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return s.assembleState(ctx, game, false)
}

func (s *GameService) assembleState(ctx context.Context, game *domain.Game, includeHidden bool) (*GameStateView, error) {
	players, err := s.playerRepo.GetByGameID(ctx, game.ID)
	if err != nil {
		return nil, err
	}

	views := make([]PlayerView, 0, len(players))
	for _, player := range players {
		cards := make([]CardView, 0, len(player.Cards))
		for _, card := range player.Cards {
			view := CardView{
				ID:          card.ID,
				Category:    card.Category,
				IsOpen:      card.IsOpen,
				OpenedRound: card.OpenedRound,
			}
			if card.IsOpen || includeHidden {
				payload := card.DecodedPayload()
				view.Title = payload.Title
				view.Description = payload.Description
			}
			cards = append(cards, view)
		}
		views = append(views, PlayerView{
			ID:       player.ID,
			Number:   player.Number,
			Nickname: player.Nickname,
			Status:   player.Status,
			Role:     player.Role,
			Cards:    cards,
		})
	}

	tally, err := s.voteRepo.TallyByTarget(ctx, game.ID)
	if err != nil {
		return nil, err
	}
	voteTally := make(map[string]int, len(tally))
	for target, count := range tally {
		voteTally[target.String()] = count
	}

	state := &GameStateView{
		GameID:              game.ID,
		Apocalypse:          game.Apocalypse,
		Bunker:              game.Bunker,
		Seats:               game.Seats,
		CurrentRound:        game.CurrentRound,
		IsSpectatorsEnabled: game.IsSpectatorsEnabled,
		Players:             views,
		VoteTally:           voteTally,
		UpdatedAt:           s.now(),
	}

	if game.HasEnded() {
		var ending interface{}
		if err := json.Unmarshal(game.Ending, &ending); err == nil {
			state.Ending = ending
		}
	}

	return state, nil
}

// ListEvents pages through the game's audit log, newest-first.
func (s *GameService) ListEvents(ctx context.Context, gameID uuid.UUID, filter repository.EventFilter) ([]*domain.GameEvent, error) {
	if _, err := s.GetGame(ctx, gameID); err != nil {
		return nil, err
	}
	return s.eventRepo.List(ctx, gameID, filter)
}

// RevealPlans returns the round's preselected category plans.
func (s *GameService) RevealPlans(ctx context.Context, gameID uuid.UUID, round int) ([]*domain.RevealPlan, error) {
	if _, err := s.GetGame(ctx, gameID); err != nil {
		return nil, err
	}
	return s.revealRepo.GetByGameAndRound(ctx, gameID, round)
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/shelterplus/shelterplus-api/internal/deck"
	"github.com/shelterplus/shelterplus-api/internal/domain"
	"github.com/shelterplus/shelterplus-api/internal/metrics"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// StartRound advances the round counter. Rounds only move forward; round 1
// additionally auto-opens every not-yet-open Profession card and records the
// reveal as its own event, distinct from manual opens.
func (s *GameService) StartRound(ctx context.Context, gameID uuid.UUID, round int) (*domain.Game, error) {
	game, err := s.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if round <= game.CurrentRound {
		return nil, ErrRoundRegression
	}

	game.CurrentRound = round
	if err := s.gameRepo.Update(ctx, game); err != nil {
		return nil, err
	}

	if round == 1 {
		if err := s.autoRevealProfessions(ctx, game); err != nil {
			log.Printf("ERROR [game.StartRound] profession auto-reveal failed: %v", err)
		}
	}

	s.logEvent(ctx, gameID, domain.EventRoundStarted, map[string]interface{}{
		"round": round,
	})
	s.emit(gameID, RealtimeRoundChange, map[string]interface{}{
		"round": round,
	})
	s.broadcastPublicState(ctx, gameID)

	return s.GetGame(ctx, gameID)
}

func (s *GameService) autoRevealProfessions(ctx context.Context, game *domain.Game) error {
	unopened, err := s.cardRepo.GetUnopenedByGameAndCategory(ctx, game.ID, domain.CategoryProfession)
	if err != nil {
		return err
	}
	if len(unopened) == 0 {
		return nil
	}

	now := s.now()
	round := game.CurrentRound
	playerIDs := make([]string, 0, len(unopened))
	for _, card := range unopened {
		card.IsOpen = true
		card.OpenedAt = &now
		card.OpenedRound = &round
		if err := s.cardRepo.Update(ctx, card); err != nil {
			return err
		}
		playerIDs = append(playerIDs, card.PlayerID.String())
	}

	s.logEvent(ctx, game.ID, domain.EventProfessionsRevealed, map[string]interface{}{
		"round":     round,
		"playerIds": playerIDs,
	})
	return nil
}

// EndRound records the round's end in the audit log; there is no other state.
func (s *GameService) EndRound(ctx context.Context, gameID uuid.UUID, round int) error {
	if _, err := s.ensureRound(ctx, gameID, round); err != nil {
		return err
	}

	s.logEvent(ctx, gameID, domain.EventRoundEnded, map[string]interface{}{
		"round": round,
	})
	s.emit(gameID, RealtimeRoundChange, map[string]interface{}{
		"round": round,
		"ended": true,
	})
	return nil
}

// PreselectCategories stores the categories a player intends to reveal. It is
// an upsert per (player, round) and never opens cards.
func (s *GameService) PreselectCategories(ctx context.Context, gameID, playerID uuid.UUID, round int, categories []domain.CardCategory) (*domain.RevealPlan, error) {
	if _, err := s.ensureRound(ctx, gameID, round); err != nil {
		return nil, err
	}
	if _, err := s.getGamePlayer(ctx, gameID, playerID); err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(categories)
	if err != nil {
		return nil, err
	}

	plan := &domain.RevealPlan{
		ID:         uuid.New(),
		GameID:     gameID,
		PlayerID:   playerID,
		Round:      round,
		Categories: datatypes.JSON(encoded),
	}
	if err := s.revealRepo.Upsert(ctx, plan); err != nil {
		return nil, err
	}

	s.logEvent(ctx, gameID, domain.EventCategoryPreselected, map[string]interface{}{
		"playerId":   playerID.String(),
		"round":      round,
		"categories": categories,
	})
	s.emit(gameID, RealtimeCharPreselect, map[string]interface{}{
		"playerId":   playerID.String(),
		"round":      round,
		"categories": categories,
	})

	return plan, nil
}

// OpenCategory reveals a player's card in one category. Re-opening an already
// open card returns it unchanged without logging or broadcasting.
func (s *GameService) OpenCategory(ctx context.Context, gameID, playerID uuid.UUID, category domain.CardCategory, round int) (*domain.Card, error) {
	if _, err := s.ensureRound(ctx, gameID, round); err != nil {
		return nil, err
	}
	if _, err := s.getGamePlayer(ctx, gameID, playerID); err != nil {
		return nil, err
	}

	card, err := s.cardRepo.GetByPlayerAndCategory(ctx, playerID, category)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}

	if card.IsOpen {
		return card, nil
	}

	now := s.now()
	card.IsOpen = true
	card.OpenedAt = &now
	card.OpenedRound = &round
	if err := s.cardRepo.Update(ctx, card); err != nil {
		return nil, err
	}

	s.logEvent(ctx, gameID, domain.EventCategoryOpened, map[string]interface{}{
		"playerId": playerID.String(),
		"category": category,
		"round":    round,
	})
	s.emit(gameID, RealtimeCharOpen, map[string]interface{}{
		"playerId": playerID.String(),
		"category": category,
		"payload":  card.DecodedPayload(),
		"round":    round,
	})
	s.broadcastPublicState(ctx, gameID)

	return card, nil
}

// KickPlayer marks a player OUT. Cards, votes and history stay; there is no
// way back in.
func (s *GameService) KickPlayer(ctx context.Context, gameID, playerID uuid.UUID) (*domain.Player, error) {
	if _, err := s.GetGame(ctx, gameID); err != nil {
		return nil, err
	}
	player, err := s.getGamePlayer(ctx, gameID, playerID)
	if err != nil {
		return nil, err
	}

	player.Status = domain.PlayerStatusOut
	if err := s.playerRepo.Update(ctx, player); err != nil {
		return nil, err
	}

	s.logEvent(ctx, gameID, domain.EventPlayerKicked, map[string]interface{}{
		"playerId": playerID.String(),
	})
	s.emit(gameID, RealtimePlayerKicked, map[string]interface{}{
		"playerId": playerID.String(),
	})
	s.broadcastPublicState(ctx, gameID)

	return player, nil
}

// SetSpectatorsEnabled toggles spectator access to the public projection.
func (s *GameService) SetSpectatorsEnabled(ctx context.Context, gameID uuid.UUID, enabled bool) (*domain.Game, error) {
	game, err := s.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	game.IsSpectatorsEnabled = enabled
	if err := s.gameRepo.Update(ctx, game); err != nil {
		return nil, err
	}

	s.logEvent(ctx, gameID, domain.EventSpectatorsToggled, map[string]interface{}{
		"enabled": enabled,
	})
	s.emit(gameID, RealtimeSpectatorState, map[string]interface{}{
		"enabled": enabled,
	})

	return s.GetGame(ctx, gameID)
}

// TriggerEnding draws the finale. The draw reuses the lobby seed with a
// distinguishing suffix, so it is deterministic per lobby and independent of
// the dealing draw. An ending is set at most once.
func (s *GameService) TriggerEnding(ctx context.Context, gameID uuid.UUID) (*domain.Game, error) {
	game, err := s.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game.HasEnded() {
		return nil, ErrEndingAlreadySet
	}

	lobby, err := s.lobbyRepo.GetByID(ctx, game.LobbyID)
	if err != nil {
		return nil, err
	}

	ending := deck.Pick(deck.EndingPool, deck.NewRand(deck.EndingSeed(lobby)))
	payload, _ := json.Marshal(map[string]interface{}{"text": ending})

	game.Ending = datatypes.JSON(payload)
	if err := s.gameRepo.Update(ctx, game); err != nil {
		return nil, err
	}

	s.logEvent(ctx, gameID, domain.EventEndingTriggered, map[string]interface{}{
		"text": ending,
	})

	if channels := lobby.Channels(); channels.TextChannelID != "" && s.notifier != nil {
		if err := s.notifier.PostToChannel(ctx, channels.TextChannelID, "**Ending**: "+ending); err != nil {
			metrics.DiscordFailures.Inc()
			log.Printf("ERROR [game.TriggerEnding] failed to post ending: %v", err)
		}
	}

	s.emit(gameID, RealtimeEndingShow, map[string]interface{}{
		"text": ending,
	})
	s.broadcastPublicState(ctx, gameID)

	return s.GetGame(ctx, gameID)
}

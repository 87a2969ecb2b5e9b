package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shelterplus/shelterplus-api/internal/domain"
	"gorm.io/gorm"
)

// TimerAction controls the minute timer.
type TimerAction string

const (
	TimerActionStart TimerAction = "start"
	TimerActionStop  TimerAction = "stop"
	TimerActionReset TimerAction = "reset"
)

// EnqueueMinute queues a speaking turn. Re-enqueueing the same (game, round,
// player) returns the existing request; positions are count+1 at enqueue time
// and never reindexed.
func (s *GameService) EnqueueMinute(ctx context.Context, gameID uuid.UUID, round int, playerID uuid.UUID) (*domain.MinuteRequest, error) {
	if _, err := s.ensureRound(ctx, gameID, round); err != nil {
		return nil, err
	}
	if _, err := s.getGamePlayer(ctx, gameID, playerID); err != nil {
		return nil, err
	}

	existing, err := s.minuteRepo.GetByGameRoundPlayer(ctx, gameID, round, playerID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	count, err := s.minuteRepo.CountByGameAndRound(ctx, gameID, round)
	if err != nil {
		return nil, err
	}

	request := &domain.MinuteRequest{
		ID:       uuid.New(),
		GameID:   gameID,
		Round:    round,
		PlayerID: playerID,
		Position: int(count) + 1,
	}
	if err := s.minuteRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	s.logEvent(ctx, gameID, domain.EventMinuteEnqueued, map[string]interface{}{
		"playerId": playerID.String(),
		"round":    round,
		"position": request.Position,
	})
	s.broadcastMinuteQueue(ctx, gameID, round)

	return request, nil
}

// ApproveMinute marks a queued request as approved by the host.
func (s *GameService) ApproveMinute(ctx context.Context, gameID, playerID uuid.UUID, round int) (*domain.MinuteRequest, error) {
	if _, err := s.ensureRound(ctx, gameID, round); err != nil {
		return nil, err
	}

	request, err := s.minuteRepo.GetByGameRoundPlayer(ctx, gameID, round, playerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMinuteNotFound
		}
		return nil, err
	}

	request.Approved = true
	if err := s.minuteRepo.Update(ctx, request); err != nil {
		return nil, err
	}

	s.logEvent(ctx, gameID, domain.EventMinuteApproved, map[string]interface{}{
		"playerId": playerID.String(),
		"round":    round,
	})
	s.broadcastMinuteQueue(ctx, gameID, round)

	return request, nil
}

// ControlMinuteTimer starts, stops or resets the running timer. With no player
// named it targets the most recently updated approved request. Start and reset
// stamp startedAt and resolve a duration (explicit, previously set, lobby
// configured, then the 60s default); stop clears startedAt but keeps the
// duration.
func (s *GameService) ControlMinuteTimer(ctx context.Context, gameID uuid.UUID, playerID *uuid.UUID, action TimerAction, durationSec *int) (*domain.MinuteRequest, error) {
	game, err := s.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	var request *domain.MinuteRequest
	if playerID != nil {
		request, err = s.minuteRepo.GetLatestByPlayer(ctx, gameID, *playerID)
	} else {
		request, err = s.minuteRepo.GetLatestApproved(ctx, gameID)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMinuteNotFound
		}
		return nil, err
	}

	switch action {
	case TimerActionStart, TimerActionReset:
		now := s.now()
		request.StartedAt = &now
		duration := s.resolveDuration(ctx, game, request, durationSec)
		request.DurationSec = &duration
	case TimerActionStop:
		request.StartedAt = nil
	default:
		return nil, ErrInvalidTimerAction
	}

	if err := s.minuteRepo.Update(ctx, request); err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"action":   string(action),
		"playerId": request.PlayerID.String(),
		"round":    request.Round,
	}
	if request.DurationSec != nil {
		payload["durationSec"] = *request.DurationSec
	}
	s.logEvent(ctx, gameID, domain.EventMinuteTimer, payload)

	timer := map[string]interface{}{
		"action":       string(action),
		"playerId":     request.PlayerID.String(),
		"remainingSec": request.RemainingSec(s.now()),
	}
	if request.DurationSec != nil {
		timer["durationSec"] = *request.DurationSec
	}
	s.emit(gameID, RealtimeMinutesTimer, timer)

	return request, nil
}

// resolveDuration picks the timer length: explicit value, then whatever the
// request already had, then the lobby's configured per-round duration, then
// the global default.
func (s *GameService) resolveDuration(ctx context.Context, game *domain.Game, request *domain.MinuteRequest, explicit *int) int {
	if explicit != nil && *explicit > 0 {
		return *explicit
	}
	if request.DurationSec != nil && *request.DurationSec > 0 {
		return *request.DurationSec
	}
	if lobby, err := s.lobbyRepo.GetByID(ctx, game.LobbyID); err == nil && lobby.MinuteDurationSec > 0 {
		return lobby.MinuteDurationSec
	}
	return domain.DefaultMinuteDurationSec
}

// MinuteQueue returns the round's queue in position order.
func (s *GameService) MinuteQueue(ctx context.Context, gameID uuid.UUID, round int) ([]*domain.MinuteRequest, error) {
	if _, err := s.GetGame(ctx, gameID); err != nil {
		return nil, err
	}
	return s.minuteRepo.GetQueue(ctx, gameID, round)
}

func (s *GameService) broadcastMinuteQueue(ctx context.Context, gameID uuid.UUID, round int) {
	queue, err := s.minuteRepo.GetQueue(ctx, gameID, round)
	if err != nil {
		return
	}

	entries := make([]map[string]interface{}, 0, len(queue))
	for _, req := range queue {
		entries = append(entries, map[string]interface{}{
			"playerId": req.PlayerID.String(),
			"position": req.Position,
			"approved": req.Approved,
		})
	}
	s.emit(gameID, RealtimeMinutesQueue, map[string]interface{}{
		"round": round,
		"queue": entries,
	})
}

package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shelterplus/shelterplus-api/internal/domain"
)

// StartVoting marks the opening of a voting phase. No state is mutated beyond
// the audit log; round-scoped vote rows are created lazily by CastVote.
func (s *GameService) StartVoting(ctx context.Context, gameID uuid.UUID, round int) error {
	if _, err := s.ensureRound(ctx, gameID, round); err != nil {
		return err
	}

	s.logEvent(ctx, gameID, domain.EventVotingStarted, map[string]interface{}{
		"round": round,
	})
	s.broadcastVoteStats(ctx, gameID, round)
	return nil
}

// StopVoting closes a voting phase. Vote rows are left untouched so the
// lifetime tally survives.
func (s *GameService) StopVoting(ctx context.Context, gameID uuid.UUID, round int) error {
	if _, err := s.ensureRound(ctx, gameID, round); err != nil {
		return err
	}

	s.logEvent(ctx, gameID, domain.EventVotingStopped, map[string]interface{}{
		"round": round,
	})
	s.broadcastVoteStats(ctx, gameID, round)
	return nil
}

// CastVote records or replaces a voter's choice for the round. One row per
// (game, round, voter); re-voting updates the target in place.
func (s *GameService) CastVote(ctx context.Context, gameID uuid.UUID, round int, voterID, targetID uuid.UUID, source domain.VoteSource) (*domain.Vote, error) {
	if _, err := s.ensureRound(ctx, gameID, round); err != nil {
		return nil, err
	}
	if _, err := s.getGamePlayer(ctx, gameID, voterID); err != nil {
		return nil, err
	}
	if _, err := s.getGamePlayer(ctx, gameID, targetID); err != nil {
		return nil, err
	}
	if source == "" {
		source = domain.VoteSourceWeb
	}

	vote := &domain.Vote{
		ID:             uuid.New(),
		GameID:         gameID,
		Round:          round,
		VoterPlayerID:  voterID,
		TargetPlayerID: &targetID,
		Source:         source,
	}
	if err := s.voteRepo.Upsert(ctx, vote); err != nil {
		return nil, err
	}

	s.logEvent(ctx, gameID, domain.EventVoteCast, map[string]interface{}{
		"round":    round,
		"playerId": voterID.String(),
		"targetId": targetID.String(),
		"source":   string(source),
	})
	s.broadcastVoteStats(ctx, gameID, round)

	return vote, nil
}

// Revote clears the targets of the round's existing votes so players can vote
// again. Rows are kept so column-level history and the unique constraint stay
// intact.
func (s *GameService) Revote(ctx context.Context, gameID uuid.UUID, round int) error {
	if _, err := s.ensureRound(ctx, gameID, round); err != nil {
		return err
	}

	if err := s.voteRepo.ClearTargets(ctx, gameID, round); err != nil {
		return err
	}

	s.logEvent(ctx, gameID, domain.EventRevote, map[string]interface{}{
		"round": round,
	})
	s.broadcastVoteStats(ctx, gameID, round)
	return nil
}

// VoteTally returns game-lifetime counts of non-null targets keyed by target
// player id.
func (s *GameService) VoteTally(ctx context.Context, gameID uuid.UUID) (map[uuid.UUID]int, error) {
	if _, err := s.GetGame(ctx, gameID); err != nil {
		return nil, err
	}
	return s.voteRepo.TallyByTarget(ctx, gameID)
}

func (s *GameService) broadcastVoteStats(ctx context.Context, gameID uuid.UUID, round int) {
	tally, err := s.voteRepo.TallyByTarget(ctx, gameID)
	if err != nil {
		return
	}

	stats := make(map[string]int, len(tally))
	for target, count := range tally {
		stats[target.String()] = count
	}
	s.emit(gameID, RealtimeVoteStats, map[string]interface{}{
		"round": round,
		"tally": stats,
	})
}

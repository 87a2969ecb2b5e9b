package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/shelterplus/shelterplus-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type voteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) *voteRepository {
	return &voteRepository{db: db}
}

// Upsert writes one row per (game, round, voter); casting again overwrites
// target and source on the existing row.
func (r *voteRepository) Upsert(ctx context.Context, vote *domain.Vote) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "game_id"}, {Name: "round"}, {Name: "voter_player_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"target_player_id", "source", "updated_at"}),
		}).
		Create(vote).Error
}

// ClearTargets nulls every target in the round without deleting rows, so
// voters must re-cast but their vote records persist.
func (r *voteRepository) ClearTargets(ctx context.Context, gameID uuid.UUID, round int) error {
	return r.db.WithContext(ctx).
		Model(&domain.Vote{}).
		Where("game_id = ? AND round = ?", gameID, round).
		Update("target_player_id", nil).Error
}

func (r *voteRepository) GetByGameAndRound(ctx context.Context, gameID uuid.UUID, round int) ([]*domain.Vote, error) {
	var votes []*domain.Vote
	err := r.db.WithContext(ctx).
		Where("game_id = ? AND round = ?", gameID, round).
		Order("updated_at ASC").
		Find(&votes).Error
	if err != nil {
		return nil, err
	}
	return votes, nil
}

func (r *voteRepository) TallyByTarget(ctx context.Context, gameID uuid.UUID) (map[uuid.UUID]int, error) {
	type row struct {
		TargetPlayerID uuid.UUID
		Total          int
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&domain.Vote{}).
		Select("target_player_id, COUNT(*) AS total").
		Where("game_id = ? AND target_player_id IS NOT NULL", gameID).
		Group("target_player_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	tally := make(map[uuid.UUID]int, len(rows))
	for _, r := range rows {
		tally[r.TargetPlayerID] = r.Total
	}
	return tally, nil
}

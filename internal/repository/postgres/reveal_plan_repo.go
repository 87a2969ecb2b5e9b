package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/shelterplus/shelterplus-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type revealPlanRepository struct {
	db *gorm.DB
}

func NewRevealPlanRepository(db *gorm.DB) *revealPlanRepository {
	return &revealPlanRepository{db: db}
}

// Upsert replaces the planned categories for (game, player, round) instead of
// appending.
func (r *revealPlanRepository) Upsert(ctx context.Context, plan *domain.RevealPlan) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "game_id"}, {Name: "player_id"}, {Name: "round"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"categories", "updated_at"}),
		}).
		Create(plan).Error
}

func (r *revealPlanRepository) GetByGameAndRound(ctx context.Context, gameID uuid.UUID, round int) ([]*domain.RevealPlan, error) {
	var plans []*domain.RevealPlan
	err := r.db.WithContext(ctx).
		Where("game_id = ? AND round = ?", gameID, round).
		Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

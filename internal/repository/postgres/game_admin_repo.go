package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/shelterplus/shelterplus-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gameAdminRepository struct {
	db *gorm.DB
}

func NewGameAdminRepository(db *gorm.DB) *gameAdminRepository {
	return &gameAdminRepository{db: db}
}

// Upsert keeps one admin row per (game, user); re-accepting a co-host invite
// overwrites the role rather than duplicating.
func (r *gameAdminRepository) Upsert(ctx context.Context, admin *domain.GameAdmin) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "game_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"role"}),
		}).
		Create(admin).Error
}

func (r *gameAdminRepository) GetByGameAndUser(ctx context.Context, gameID, userID uuid.UUID) (*domain.GameAdmin, error) {
	var admin domain.GameAdmin
	err := r.db.WithContext(ctx).
		First(&admin, "game_id = ? AND user_id = ?", gameID, userID).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

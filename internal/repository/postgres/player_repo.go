package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/shelterplus/shelterplus-api/internal/domain"
	"gorm.io/gorm"
)

type playerRepository struct {
	db *gorm.DB
}

func NewPlayerRepository(db *gorm.DB) *playerRepository {
	return &playerRepository{db: db}
}

func (r *playerRepository) Create(ctx context.Context, player *domain.Player) error {
	return r.db.WithContext(ctx).Create(player).Error
}

func (r *playerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Player, error) {
	var player domain.Player
	err := r.db.WithContext(ctx).
		Preload("Cards").
		First(&player, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &player, nil
}

func (r *playerRepository) GetByGameID(ctx context.Context, gameID uuid.UUID) ([]*domain.Player, error) {
	var players []*domain.Player
	err := r.db.WithContext(ctx).
		Preload("Cards").
		Where("game_id = ?", gameID).
		Order("number ASC").
		Find(&players).Error
	if err != nil {
		return nil, err
	}
	return players, nil
}

func (r *playerRepository) Update(ctx context.Context, player *domain.Player) error {
	return r.db.WithContext(ctx).
		Model(&domain.Player{ID: player.ID}).
		Updates(map[string]interface{}{
			"status":   player.Status,
			"nickname": player.Nickname,
		}).Error
}

func (r *playerRepository) CountSpectators(ctx context.Context, gameID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Player{}).
		Where("game_id = ? AND role = ?", gameID, domain.PlayerRoleSpectator).
		Count(&count).Error
	return count, err
}

func (r *playerRepository) FindSpectator(ctx context.Context, gameID, userID uuid.UUID) (*domain.Player, error) {
	var player domain.Player
	err := r.db.WithContext(ctx).
		First(&player, "game_id = ? AND user_id = ? AND role = ?", gameID, userID, domain.PlayerRoleSpectator).Error
	if err != nil {
		return nil, err
	}
	return &player, nil
}

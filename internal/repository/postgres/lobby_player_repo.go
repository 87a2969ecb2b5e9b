package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/shelterplus/shelterplus-api/internal/domain"
	"gorm.io/gorm"
)

type lobbyPlayerRepository struct {
	db *gorm.DB
}

func NewLobbyPlayerRepository(db *gorm.DB) *lobbyPlayerRepository {
	return &lobbyPlayerRepository{db: db}
}

func (r *lobbyPlayerRepository) GetByLobbyID(ctx context.Context, lobbyID uuid.UUID) ([]*domain.LobbyPlayer, error) {
	var players []*domain.LobbyPlayer
	err := r.db.WithContext(ctx).
		Where("lobby_id = ?", lobbyID).
		Order("number ASC").
		Find(&players).Error
	if err != nil {
		return nil, err
	}
	return players, nil
}

// ReplaceAll swaps the whole roster in one transaction. Collect/update player
// actions always replace wholesale rather than merging.
func (r *lobbyPlayerRepository) ReplaceAll(ctx context.Context, lobbyID uuid.UUID, players []*domain.LobbyPlayer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lobby_id = ?", lobbyID).Delete(&domain.LobbyPlayer{}).Error; err != nil {
			return err
		}
		if len(players) == 0 {
			return nil
		}
		return tx.Create(players).Error
	})
}

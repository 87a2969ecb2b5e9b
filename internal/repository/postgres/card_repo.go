package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/shelterplus/shelterplus-api/internal/domain"
	"gorm.io/gorm"
)

type cardRepository struct {
	db *gorm.DB
}

func NewCardRepository(db *gorm.DB) *cardRepository {
	return &cardRepository{db: db}
}

func (r *cardRepository) GetByPlayerAndCategory(ctx context.Context, playerID uuid.UUID, category domain.CardCategory) (*domain.Card, error) {
	var card domain.Card
	err := r.db.WithContext(ctx).
		First(&card, "player_id = ? AND category = ?", playerID, category).Error
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *cardRepository) GetUnopenedByGameAndCategory(ctx context.Context, gameID uuid.UUID, category domain.CardCategory) ([]*domain.Card, error) {
	var cards []*domain.Card
	err := r.db.WithContext(ctx).
		Joins("JOIN players ON players.id = cards.player_id").
		Where("players.game_id = ? AND cards.category = ? AND cards.is_open = false", gameID, category).
		Order("players.number ASC").
		Find(&cards).Error
	if err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *cardRepository) Update(ctx context.Context, card *domain.Card) error {
	return r.db.WithContext(ctx).
		Model(&domain.Card{ID: card.ID}).
		Updates(map[string]interface{}{
			"is_open":      card.IsOpen,
			"opened_at":    card.OpenedAt,
			"opened_round": card.OpenedRound,
		}).Error
}

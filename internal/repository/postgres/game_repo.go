package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/shelterplus/shelterplus-api/internal/domain"
	"gorm.io/gorm"
)

type gameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) *gameRepository {
	return &gameRepository{db: db}
}

// CreateWithDeal inserts the game and every nested association (players with
// their cards, the host admin row, the opening event) in a single transaction.
// The unique index on lobby_id makes a concurrent double-start fail here with
// gorm.ErrDuplicatedKey regardless of any earlier existence check.
func (r *gameRepository) CreateWithDeal(ctx context.Context, game *domain.Game) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(game).Error
	})
}

func (r *gameRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Game, error) {
	var game domain.Game
	err := r.db.WithContext(ctx).
		Preload("Players", func(db *gorm.DB) *gorm.DB {
			return db.Order("players.number ASC")
		}).
		Preload("Players.Cards").
		First(&game, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *gameRepository) GetByLobbyID(ctx context.Context, lobbyID uuid.UUID) (*domain.Game, error) {
	var game domain.Game
	err := r.db.WithContext(ctx).First(&game, "lobby_id = ?", lobbyID).Error
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *gameRepository) Update(ctx context.Context, game *domain.Game) error {
	return r.db.WithContext(ctx).
		Model(&domain.Game{ID: game.ID}).
		Updates(map[string]interface{}{
			"current_round":         game.CurrentRound,
			"is_spectators_enabled": game.IsSpectatorsEnabled,
			"ending":                game.Ending,
		}).Error
}

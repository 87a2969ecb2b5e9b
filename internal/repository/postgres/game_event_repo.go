package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/shelterplus/shelterplus-api/internal/domain"
	"github.com/shelterplus/shelterplus-api/internal/repository"
	"gorm.io/gorm"
)

const defaultEventPageSize = 50

type gameEventRepository struct {
	db *gorm.DB
}

func NewGameEventRepository(db *gorm.DB) *gameEventRepository {
	return &gameEventRepository{db: db}
}

func (r *gameEventRepository) Create(ctx context.Context, event *domain.GameEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// List pages through the audit log newest-first. The cursor is the id of the
// last event already seen; pagination resumes strictly before it.
func (r *gameEventRepository) List(ctx context.Context, gameID uuid.UUID, filter repository.EventFilter) ([]*domain.GameEvent, error) {
	q := r.db.WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("created_at DESC, id DESC")

	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.PlayerID != nil {
		q = q.Where("payload->>'playerId' = ?", filter.PlayerID.String())
	}
	if filter.From != nil {
		q = q.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("created_at <= ?", *filter.To)
	}

	if filter.Cursor != nil {
		var cursor domain.GameEvent
		if err := r.db.WithContext(ctx).First(&cursor, "id = ?", *filter.Cursor).Error; err != nil {
			return nil, err
		}
		q = q.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	take := filter.Take
	if take <= 0 {
		take = defaultEventPageSize
	}

	var events []*domain.GameEvent
	if err := q.Limit(take).Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

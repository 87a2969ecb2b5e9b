package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/shelterplus/shelterplus-api/internal/domain"
	"gorm.io/gorm"
)

type minuteRequestRepository struct {
	db *gorm.DB
}

func NewMinuteRequestRepository(db *gorm.DB) *minuteRequestRepository {
	return &minuteRequestRepository{db: db}
}

func (r *minuteRequestRepository) Create(ctx context.Context, req *domain.MinuteRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *minuteRequestRepository) Update(ctx context.Context, req *domain.MinuteRequest) error {
	return r.db.WithContext(ctx).
		Model(&domain.MinuteRequest{ID: req.ID}).
		Select("approved", "started_at", "duration_sec").
		Updates(map[string]interface{}{
			"approved":     req.Approved,
			"started_at":   req.StartedAt,
			"duration_sec": req.DurationSec,
		}).Error
}

func (r *minuteRequestRepository) GetByGameRoundPlayer(ctx context.Context, gameID uuid.UUID, round int, playerID uuid.UUID) (*domain.MinuteRequest, error) {
	var req domain.MinuteRequest
	err := r.db.WithContext(ctx).
		First(&req, "game_id = ? AND round = ? AND player_id = ?", gameID, round, playerID).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *minuteRequestRepository) CountByGameAndRound(ctx context.Context, gameID uuid.UUID, round int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.MinuteRequest{}).
		Where("game_id = ? AND round = ?", gameID, round).
		Count(&count).Error
	return count, err
}

func (r *minuteRequestRepository) GetQueue(ctx context.Context, gameID uuid.UUID, round int) ([]*domain.MinuteRequest, error) {
	var queue []*domain.MinuteRequest
	err := r.db.WithContext(ctx).
		Where("game_id = ? AND round = ?", gameID, round).
		Order("position ASC").
		Find(&queue).Error
	if err != nil {
		return nil, err
	}
	return queue, nil
}

func (r *minuteRequestRepository) GetLatestByPlayer(ctx context.Context, gameID, playerID uuid.UUID) (*domain.MinuteRequest, error) {
	var req domain.MinuteRequest
	err := r.db.WithContext(ctx).
		Where("game_id = ? AND player_id = ?", gameID, playerID).
		Order("updated_at DESC").
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *minuteRequestRepository) GetLatestApproved(ctx context.Context, gameID uuid.UUID) (*domain.MinuteRequest, error) {
	var req domain.MinuteRequest
	err := r.db.WithContext(ctx).
		Where("game_id = ? AND approved = true", gameID).
		Order("updated_at DESC").
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// GetRunning returns the request currently being timed, the one with a
// non-null started_at. At most one is conceptually running per game.
func (r *minuteRequestRepository) GetRunning(ctx context.Context, gameID uuid.UUID) (*domain.MinuteRequest, error) {
	var req domain.MinuteRequest
	err := r.db.WithContext(ctx).
		Where("game_id = ? AND started_at IS NOT NULL", gameID).
		Order("updated_at DESC").
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

package postgres

import (
	"context"

	"github.com/shelterplus/shelterplus-api/internal/domain"
	"gorm.io/gorm"
)

type inviteRepository struct {
	db *gorm.DB
}

func NewInviteRepository(db *gorm.DB) *inviteRepository {
	return &inviteRepository{db: db}
}

func (r *inviteRepository) Create(ctx context.Context, invite *domain.Invite) error {
	return r.db.WithContext(ctx).Create(invite).Error
}

func (r *inviteRepository) GetByCode(ctx context.Context, code string) (*domain.Invite, error) {
	var invite domain.Invite
	err := r.db.WithContext(ctx).First(&invite, "code = ?", code).Error
	if err != nil {
		return nil, err
	}
	return &invite, nil
}

func (r *inviteRepository) Update(ctx context.Context, invite *domain.Invite) error {
	return r.db.WithContext(ctx).
		Model(&domain.Invite{ID: invite.ID}).
		Update("used_by_user_id", invite.UsedByUserID).Error
}

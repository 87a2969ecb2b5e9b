package domain

import (
	"time"

	"github.com/google/uuid"
)

// GameAdminRole distinguishes the game host from invited co-hosts.
type GameAdminRole string

const (
	GameAdminRoleHost   GameAdminRole = "HOST"
	GameAdminRoleCoHost GameAdminRole = "CO_HOST"
)

// GameAdmin grants a user control over a game. The host row is created at
// game start; co-hosts arrive through invite acceptance.
type GameAdmin struct {
	ID        uuid.UUID     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	GameID    uuid.UUID     `json:"gameId" gorm:"type:uuid;not null;uniqueIndex:idx_admins_game_user"`
	UserID    uuid.UUID     `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_admins_game_user"`
	Role      GameAdminRole `json:"role" gorm:"type:varchar(10);not null"`
	CreatedAt time.Time     `json:"createdAt"`
}

// TableName returns the table name for GORM
func (GameAdmin) TableName() string {
	return "game_admins"
}

// InviteRole is the access an invite grants when accepted.
type InviteRole string

const (
	InviteRoleCoHost    InviteRole = "CO_HOST"
	InviteRoleSpectator InviteRole = "SPECTATOR"
)

// InviteTTL is the fixed validity window from issuance.
const InviteTTL = 15 * time.Minute

// Invite is a short-lived code granting co-host or spectator access. It is
// consumed by exactly one user; re-acceptance by that user is idempotent.
type Invite struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	GameID       uuid.UUID  `json:"gameId" gorm:"type:uuid;not null;index"`
	Code         string     `json:"code" gorm:"size:16;not null;uniqueIndex"`
	Role         InviteRole `json:"role" gorm:"type:varchar(12);not null"`
	ExpiresAt    time.Time  `json:"expiresAt" gorm:"not null"`
	UsedByUserID *uuid.UUID `json:"usedByUserId" gorm:"type:uuid"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// TableName returns the table name for GORM
func (Invite) TableName() string {
	return "invites"
}

// IsExpired reports whether the invite is past its validity window at now.
func (i *Invite) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

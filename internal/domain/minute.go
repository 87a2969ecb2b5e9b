package domain

import (
	"time"

	"github.com/google/uuid"
)

// MinuteRequest is a queued speaking turn for one player in one round.
// Position is assigned as count+1 at enqueue time and never reindexed. The
// request with a non-nil StartedAt is the one currently running.
type MinuteRequest struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	GameID      uuid.UUID  `json:"gameId" gorm:"type:uuid;not null;uniqueIndex:idx_minutes_game_round_player"`
	Round       int        `json:"round" gorm:"not null;uniqueIndex:idx_minutes_game_round_player"`
	PlayerID    uuid.UUID  `json:"playerId" gorm:"type:uuid;not null;uniqueIndex:idx_minutes_game_round_player"`
	Position    int        `json:"position" gorm:"not null"`
	Approved    bool       `json:"approved" gorm:"not null;default:false"`
	StartedAt   *time.Time `json:"startedAt"`
	DurationSec *int       `json:"durationSec"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// TableName returns the table name for GORM
func (MinuteRequest) TableName() string {
	return "minute_requests"
}

// RemainingSec computes the time left on a running request at now. The server
// never ticks timers; remaining time is derived on demand and floors at zero.
func (m *MinuteRequest) RemainingSec(now time.Time) int {
	if m.StartedAt == nil || m.DurationSec == nil {
		return 0
	}
	elapsed := int(now.Sub(*m.StartedAt) / time.Second)
	remaining := *m.DurationSec - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Domain event types appended to the per-game audit log. Exactly one event is
// recorded per state-changing operation.
const (
	EventGameStarted         = "GAME_STARTED"
	EventRoundStarted        = "ROUND_STARTED"
	EventRoundEnded          = "ROUND_ENDED"
	EventProfessionsRevealed = "PROFESSIONS_REVEALED"
	EventCategoryPreselected = "CATEGORY_PRESELECTED"
	EventCategoryOpened      = "CATEGORY_OPENED"
	EventMinuteEnqueued      = "MINUTE_ENQUEUED"
	EventMinuteApproved      = "MINUTE_APPROVED"
	EventMinuteTimer         = "MINUTE_TIMER"
	EventVotingStarted       = "VOTING_STARTED"
	EventVotingStopped       = "VOTING_STOPPED"
	EventRevote              = "REVOTE"
	EventVoteCast            = "VOTE_CAST"
	EventPlayerKicked        = "PLAYER_KICKED"
	EventInviteCreated       = "INVITE_CREATED"
	EventInviteAccepted      = "INVITE_ACCEPTED"
	EventSpectatorsToggled   = "SPECTATORS_TOGGLED"
	EventEndingTriggered     = "ENDING_TRIGGERED"
)

// GameEvent is an append-only audit record of a domain mutation, ordered by
// creation time and queryable by type, player and time range.
type GameEvent struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	GameID    uuid.UUID      `json:"gameId" gorm:"type:uuid;not null;index"`
	Type      string         `json:"type" gorm:"size:40;not null;index"`
	Payload   datatypes.JSON `json:"payload" gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt time.Time      `json:"createdAt" gorm:"index"`
}

// TableName returns the table name for GORM
func (GameEvent) TableName() string {
	return "game_events"
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// VoteSource records which surface a vote came from.
type VoteSource string

const (
	VoteSourceWeb     VoteSource = "WEB"
	VoteSourceDiscord VoteSource = "DISCORD"
)

// Vote is one row per (game, round, voter). Casting again overwrites
// target and source; a revote nulls targets without deleting rows.
type Vote struct {
	ID             uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	GameID         uuid.UUID  `json:"gameId" gorm:"type:uuid;not null;uniqueIndex:idx_votes_game_round_voter"`
	Round          int        `json:"round" gorm:"not null;uniqueIndex:idx_votes_game_round_voter"`
	VoterPlayerID  uuid.UUID  `json:"voterPlayerId" gorm:"type:uuid;not null;uniqueIndex:idx_votes_game_round_voter"`
	TargetPlayerID *uuid.UUID `json:"targetPlayerId" gorm:"type:uuid"`
	Source         VoteSource `json:"source" gorm:"type:varchar(10);not null;default:'WEB'"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// TableName returns the table name for GORM
func (Vote) TableName() string {
	return "votes"
}

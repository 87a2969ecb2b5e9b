package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// RevealPlan is the set of categories a player intends to open in a round.
// It is upserted per (game, player, round) and never affects Card.IsOpen.
type RevealPlan struct {
	ID         uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	GameID     uuid.UUID      `json:"gameId" gorm:"type:uuid;not null;uniqueIndex:idx_reveals_game_player_round"`
	PlayerID   uuid.UUID      `json:"playerId" gorm:"type:uuid;not null;uniqueIndex:idx_reveals_game_player_round"`
	Round      int            `json:"round" gorm:"not null;uniqueIndex:idx_reveals_game_player_round"`
	Categories datatypes.JSON `json:"categories" gorm:"type:jsonb;not null;default:'[]'"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

// TableName returns the table name for GORM
func (RevealPlan) TableName() string {
	return "reveal_plans"
}

// DecodedCategories unmarshals the planned category list.
func (r *RevealPlan) DecodedCategories() []CardCategory {
	var cats []CardCategory
	if len(r.Categories) > 0 {
		_ = json.Unmarshal(r.Categories, &cats)
	}
	return cats
}

package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PlayerStatus tracks whether a player is still in the bunker.
type PlayerStatus string

const (
	PlayerStatusAlive PlayerStatus = "ALIVE"
	PlayerStatusOut   PlayerStatus = "OUT"
)

// PlayerRole separates dealt players from spectators added later via invite.
type PlayerRole string

const (
	PlayerRolePlayer    PlayerRole = "PLAYER"
	PlayerRoleSpectator PlayerRole = "SPECTATOR"
)

// SpectatorNumberOffset keeps spectator numbers clear of real seat numbers.
const SpectatorNumberOffset = 1000

// Game is a started play-through. Scenario and seat fields are fixed at
// creation; only CurrentRound and Ending mutate afterwards (rounds forward
// only, ending set at most once).
type Game struct {
	ID                  uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	LobbyID             uuid.UUID      `json:"lobbyId" gorm:"type:uuid;not null;uniqueIndex"`
	Apocalypse          string         `json:"apocalypse" gorm:"not null"`
	Bunker              string         `json:"bunker" gorm:"not null"`
	Seats               int            `json:"seats" gorm:"not null"`
	CurrentRound        int            `json:"currentRound" gorm:"not null;default:0"`
	IsSpectatorsEnabled bool           `json:"isSpectatorsEnabled" gorm:"not null;default:true"`
	Ending              datatypes.JSON `json:"ending" gorm:"type:jsonb"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`

	// Relations
	Lobby   *Lobby          `json:"-" gorm:"foreignKey:LobbyID"`
	Players []Player        `json:"players,omitempty" gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE"`
	Events  []GameEvent     `json:"events,omitempty" gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE"`
	Votes   []Vote          `json:"-" gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE"`
	Minutes []MinuteRequest `json:"-" gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE"`
	Reveals []RevealPlan    `json:"-" gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE"`
	Admins  []GameAdmin     `json:"-" gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE"`
	Invites []Invite        `json:"-" gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Game) TableName() string {
	return "games"
}

// HasEnded reports whether an ending has been triggered.
func (g *Game) HasEnded() bool {
	return len(g.Ending) > 0
}

// Player is an in-game participant. Status moves ALIVE to OUT once and never
// back; spectators are appended after the deal with numbers past
// SpectatorNumberOffset.
type Player struct {
	ID        uuid.UUID    `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	GameID    uuid.UUID    `json:"gameId" gorm:"type:uuid;not null;index"`
	Number    int          `json:"number" gorm:"not null"`
	Nickname  string       `json:"nickname" gorm:"size:100;not null"`
	DiscordID *string      `json:"discordId" gorm:"size:32"`
	UserID    *uuid.UUID   `json:"userId" gorm:"type:uuid;index"`
	Status    PlayerStatus `json:"status" gorm:"type:varchar(10);not null;default:'ALIVE'"`
	Role      PlayerRole   `json:"role" gorm:"type:varchar(12);not null;default:'PLAYER'"`
	CreatedAt time.Time    `json:"createdAt"`

	Cards []Card `json:"cards,omitempty" gorm:"foreignKey:PlayerID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Player) TableName() string {
	return "players"
}

// CardPayload is the flavor content of a dealt card.
type CardPayload struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Card is one dealt value in one category. IsOpen flips false to true exactly
// once; re-opening is a no-op.
type Card struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	PlayerID    uuid.UUID      `json:"playerId" gorm:"type:uuid;not null;index"`
	Category    CardCategory   `json:"category" gorm:"type:varchar(20);not null"`
	Payload     datatypes.JSON `json:"payload" gorm:"type:jsonb;not null"`
	IsOpen      bool           `json:"isOpen" gorm:"not null;default:false"`
	OpenedAt    *time.Time     `json:"openedAt"`
	OpenedRound *int           `json:"openedRound"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// TableName returns the table name for GORM
func (Card) TableName() string {
	return "cards"
}

// DecodedPayload unmarshals the jsonb payload; malformed payloads decode to the
// zero value.
func (c *Card) DecodedPayload() CardPayload {
	var p CardPayload
	if len(c.Payload) > 0 {
		_ = json.Unmarshal(c.Payload, &p)
	}
	return p
}

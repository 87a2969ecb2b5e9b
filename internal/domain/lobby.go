package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// LobbyMode selects how a lobby is run.
type LobbyMode string

const (
	LobbyModeOfficial LobbyMode = "OFFICIAL"
	LobbyModeCustom   LobbyMode = "CUSTOM"
	LobbyModeWeb      LobbyMode = "WEB"
)

// DefaultMinuteDurationSec is the speaking-turn length used when a lobby does
// not configure one.
const DefaultMinuteDurationSec = 60

// ChannelsConfig holds the Discord wiring for a lobby. All fields are optional;
// web-only lobbies leave everything empty.
type ChannelsConfig struct {
	GuildID             string `json:"guildId,omitempty"`
	VoiceChannelID      string `json:"voiceChannelId,omitempty"`
	TextChannelID       string `json:"textChannelId,omitempty"`
	OfficialPresetIndex *int   `json:"officialPresetIndex,omitempty"`
}

// Lobby is the pre-game configuration and roster container. It is mutated
// freely until a Game is created from it; the unique index on games.lobby_id
// makes a second start impossible.
type Lobby struct {
	ID                uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Mode              LobbyMode      `json:"mode" gorm:"type:varchar(20);not null;default:'CUSTOM'"`
	Rounds            int            `json:"rounds" gorm:"not null"`
	MinuteDurationSec int            `json:"minuteDurationSec" gorm:"not null;default:60"`
	EnabledCategories datatypes.JSON `json:"enabledCategories" gorm:"type:jsonb;not null"`
	ChannelsConfig    datatypes.JSON `json:"channelsConfig" gorm:"type:jsonb"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`

	// Relations
	Players []LobbyPlayer `json:"players,omitempty" gorm:"foreignKey:LobbyID;constraint:OnDelete:CASCADE"`
	Game    *Game         `json:"game,omitempty" gorm:"foreignKey:LobbyID"`
}

// TableName returns the table name for GORM
func (Lobby) TableName() string {
	return "lobbies"
}

// Channels decodes the jsonb channel configuration. Malformed or missing
// config decodes to the zero value.
func (l *Lobby) Channels() ChannelsConfig {
	var cfg ChannelsConfig
	if len(l.ChannelsConfig) > 0 {
		_ = json.Unmarshal(l.ChannelsConfig, &cfg)
	}
	return cfg
}

// Categories decodes the enabled-category map. Categories absent from the
// stored map count as enabled.
func (l *Lobby) Categories() map[CardCategory]bool {
	stored := map[CardCategory]bool{}
	if len(l.EnabledCategories) > 0 {
		_ = json.Unmarshal(l.EnabledCategories, &stored)
	}
	enabled := make(map[CardCategory]bool, len(CardCategoryOrder))
	for _, c := range CardCategoryOrder {
		on, ok := stored[c]
		enabled[c] = !ok || on
	}
	return enabled
}

// NormalizeCategories fills in missing categories as enabled and drops unknown
// keys, producing the map stored on a lobby.
func NormalizeCategories(in map[CardCategory]bool) map[CardCategory]bool {
	out := make(map[CardCategory]bool, len(CardCategoryOrder))
	for _, c := range CardCategoryOrder {
		on, ok := in[c]
		out[c] = !ok || on
	}
	return out
}

// LobbyPlayer is a roster entry collected from Discord or entered on the web.
// The roster is replaced wholesale on every collect/update action.
type LobbyPlayer struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	LobbyID   uuid.UUID `json:"lobbyId" gorm:"type:uuid;not null;index"`
	Number    int       `json:"number" gorm:"not null"`
	Nickname  string    `json:"nickname" gorm:"size:100;not null"`
	DiscordID *string   `json:"discordId" gorm:"size:32"`
	CreatedAt time.Time `json:"createdAt"`

	Lobby *Lobby `json:"-" gorm:"foreignKey:LobbyID"`
}

// TableName returns the table name for GORM
func (LobbyPlayer) TableName() string {
	return "lobby_players"
}

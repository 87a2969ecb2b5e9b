package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shelterplus/shelterplus-api/internal/config"
	"github.com/shelterplus/shelterplus-api/internal/domain"
	"github.com/shelterplus/shelterplus-api/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrLobbyNotFound   = errors.New("lobby not found")
	ErrInvalidRounds   = errors.New("rounds must be positive")
	ErrInvalidDuration = errors.New("minute duration must be positive")
	ErrInvalidMode     = errors.New("unknown lobby mode")
)

// numberedNickname matches voice nicknames like "3 Alice" where the member
// encodes their seat number in front of the display name.
var numberedNickname = regexp.MustCompile(`^(\d+)\s*(.*)$`)

type LobbyService struct {
	lobbyRepo       repository.LobbyRepository
	lobbyPlayerRepo repository.LobbyPlayerRepository
	presets         *config.OfficialPresets
	notifier        Notifier
}

func NewLobbyService(
	lobbyRepo repository.LobbyRepository,
	lobbyPlayerRepo repository.LobbyPlayerRepository,
	presets *config.OfficialPresets,
	notifier Notifier,
) *LobbyService {
	return &LobbyService{
		lobbyRepo:       lobbyRepo,
		lobbyPlayerRepo: lobbyPlayerRepo,
		presets:         presets,
		notifier:        notifier,
	}
}

type CreateLobbyInput struct {
	Mode              domain.LobbyMode
	Rounds            int
	MinuteDurationSec int
	EnabledCategories map[domain.CardCategory]bool
	Channels          domain.ChannelsConfig
}

func (s *LobbyService) Create(ctx context.Context, input CreateLobbyInput) (*domain.Lobby, error) {
	switch input.Mode {
	case domain.LobbyModeOfficial, domain.LobbyModeCustom, domain.LobbyModeWeb:
	default:
		return nil, ErrInvalidMode
	}
	if input.Rounds <= 0 {
		return nil, ErrInvalidRounds
	}
	if input.MinuteDurationSec <= 0 {
		return nil, ErrInvalidDuration
	}

	channels := input.Channels
	if input.Mode == domain.LobbyModeOfficial {
		presetIndex := 0
		if channels.OfficialPresetIndex != nil {
			presetIndex = *channels.OfficialPresetIndex
		}
		if preset := s.presets.GetByIndex(presetIndex); preset != nil {
			channels.VoiceChannelID = preset.VoiceChannelID
			channels.TextChannelID = preset.TextChannelID
			channels.OfficialPresetIndex = &presetIndex
		}
	}

	categories, err := json.Marshal(domain.NormalizeCategories(input.EnabledCategories))
	if err != nil {
		return nil, err
	}
	channelsJSON, err := json.Marshal(channels)
	if err != nil {
		return nil, err
	}

	lobby := &domain.Lobby{
		ID:                uuid.New(),
		Mode:              input.Mode,
		Rounds:            input.Rounds,
		MinuteDurationSec: input.MinuteDurationSec,
		EnabledCategories: datatypes.JSON(categories),
		ChannelsConfig:    datatypes.JSON(channelsJSON),
	}

	if err := s.lobbyRepo.Create(ctx, lobby); err != nil {
		return nil, err
	}

	return s.lobbyRepo.GetByID(ctx, lobby.ID)
}

func (s *LobbyService) Get(ctx context.Context, id uuid.UUID) (*domain.Lobby, error) {
	lobby, err := s.lobbyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLobbyNotFound
		}
		return nil, err
	}
	return lobby, nil
}

// CollectPlayers rebuilds the roster from the lobby's configured voice
// channel. Voice nicknames may carry a leading seat number; members without
// one get the next free fallback number. An empty fetch (offline Discord,
// empty channel) leaves the existing roster untouched.
func (s *LobbyService) CollectPlayers(ctx context.Context, lobbyID uuid.UUID) ([]*domain.LobbyPlayer, error) {
	lobby, err := s.Get(ctx, lobbyID)
	if err != nil {
		return nil, err
	}

	var participants []VoiceParticipant
	if voiceID := lobby.Channels().VoiceChannelID; voiceID != "" {
		participants, err = s.notifier.FetchVoiceParticipants(ctx, voiceID)
		if err != nil {
			log.Printf("ERROR [lobby.CollectPlayers] failed to fetch voice participants: %v", err)
			participants = nil
		}
	}

	if len(participants) == 0 {
		return s.lobbyPlayerRepo.GetByLobbyID(ctx, lobbyID)
	}

	fallbackNumber := 1
	players := make([]*domain.LobbyPlayer, 0, len(participants))
	for _, participant := range participants {
		number := 0
		nickname := participant.Nickname
		if m := numberedNickname.FindStringSubmatch(participant.Nickname); m != nil {
			if n, convErr := strconv.Atoi(m[1]); convErr == nil {
				number = n
			}
			if trimmed := strings.TrimSpace(m[2]); trimmed != "" {
				nickname = trimmed
			}
		}
		if number == 0 {
			number = fallbackNumber
			fallbackNumber++
		}

		discordID := participant.ID
		players = append(players, &domain.LobbyPlayer{
			ID:        uuid.New(),
			LobbyID:   lobbyID,
			Number:    number,
			Nickname:  nickname,
			DiscordID: &discordID,
		})
	}

	if err := s.lobbyPlayerRepo.ReplaceAll(ctx, lobbyID, players); err != nil {
		return nil, err
	}
	return s.lobbyPlayerRepo.GetByLobbyID(ctx, lobbyID)
}

type RosterEntry struct {
	Number    int
	Nickname  string
	DiscordID *string
}

// UpdatePlayers replaces the roster wholesale from an explicit list.
func (s *LobbyService) UpdatePlayers(ctx context.Context, lobbyID uuid.UUID, entries []RosterEntry) ([]*domain.LobbyPlayer, error) {
	if _, err := s.Get(ctx, lobbyID); err != nil {
		return nil, err
	}

	players := make([]*domain.LobbyPlayer, 0, len(entries))
	for _, entry := range entries {
		players = append(players, &domain.LobbyPlayer{
			ID:        uuid.New(),
			LobbyID:   lobbyID,
			Number:    entry.Number,
			Nickname:  entry.Nickname,
			DiscordID: entry.DiscordID,
		})
	}

	if err := s.lobbyPlayerRepo.ReplaceAll(ctx, lobbyID, players); err != nil {
		return nil, err
	}
	return s.lobbyPlayerRepo.GetByLobbyID(ctx, lobbyID)
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shelterplus/shelterplus-api/internal/api/middleware"
	"github.com/shelterplus/shelterplus-api/internal/domain"
	"github.com/shelterplus/shelterplus-api/internal/service"
)

type LobbyHandler struct {
	lobbyService *service.LobbyService
	gameService  *service.GameService
}

func NewLobbyHandler(lobbyService *service.LobbyService, gameService *service.GameService) *LobbyHandler {
	return &LobbyHandler{
		lobbyService: lobbyService,
		gameService:  gameService,
	}
}

type CreateLobbyRequest struct {
	Mode              string                       `json:"mode"`
	Rounds            int                          `json:"rounds"`
	MinuteDurationSec int                          `json:"minuteDurationSec"`
	EnabledCategories map[domain.CardCategory]bool `json:"enabledCategories"`
	Channels          domain.ChannelsConfig        `json:"channels"`
}

type RosterEntryRequest struct {
	Number    int     `json:"number"`
	Nickname  string  `json:"nickname"`
	DiscordID *string `json:"discordId"`
}

type UpdatePlayersRequest struct {
	Players []RosterEntryRequest `json:"players"`
}

func (h *LobbyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateLobbyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	mode := domain.LobbyMode(req.Mode)
	if req.Mode == "" {
		mode = domain.LobbyModeWeb
	}
	minuteDuration := req.MinuteDurationSec
	if minuteDuration == 0 {
		minuteDuration = domain.DefaultMinuteDurationSec
	}

	lobby, err := h.lobbyService.Create(r.Context(), service.CreateLobbyInput{
		Mode:              mode,
		Rounds:            req.Rounds,
		MinuteDurationSec: minuteDuration,
		EnabledCategories: req.EnabledCategories,
		Channels:          req.Channels,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, lobby)
}

func (h *LobbyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid lobby id", http.StatusBadRequest)
		return
	}

	lobby, err := h.lobbyService.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, lobby)
}

// CollectPlayers rebuilds the roster from the lobby's Discord voice channel.
func (h *LobbyHandler) CollectPlayers(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid lobby id", http.StatusBadRequest)
		return
	}

	players, err := h.lobbyService.CollectPlayers(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"players": players})
}

// UpdatePlayers replaces the roster wholesale from an explicit list.
func (h *LobbyHandler) UpdatePlayers(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid lobby id", http.StatusBadRequest)
		return
	}

	var req UpdatePlayersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	entries := make([]service.RosterEntry, 0, len(req.Players))
	for _, p := range req.Players {
		entries = append(entries, service.RosterEntry{
			Number:    p.Number,
			Nickname:  p.Nickname,
			DiscordID: p.DiscordID,
		})
	}

	players, err := h.lobbyService.UpdatePlayers(r.Context(), id, entries)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"players": players})
}

// StartGame creates the game for a lobby; the caller becomes its host.
func (h *LobbyHandler) StartGame(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid lobby id", http.StatusBadRequest)
		return
	}

	game, err := h.gameService.StartFromLobby(r.Context(), id, userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, game)
}

package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shelterplus/shelterplus-api/internal/domain"
	"github.com/shelterplus/shelterplus-api/internal/repository"
	"github.com/shelterplus/shelterplus-api/internal/service"
)

type GameHandler struct {
	gameService *service.GameService
}

func NewGameHandler(gameService *service.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

func (h *GameHandler) gameID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid game id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

func (h *GameHandler) round(w http.ResponseWriter, r *http.Request) (int, bool) {
	round, err := strconv.Atoi(chi.URLParam(r, "round"))
	if err != nil || round < 1 {
		http.Error(w, "Invalid round", http.StatusBadRequest)
		return 0, false
	}
	return round, true
}

func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}

	game, err := h.gameService.GetGame(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, game)
}

// GetState returns the host view with every card value visible.
func (h *GameHandler) GetState(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}

	state, err := h.gameService.GetState(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, state)
}

// Spectate returns the public view: opened cards only.
func (h *GameHandler) Spectate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}

	state, err := h.gameService.SpectatorState(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, state)
}

func (h *GameHandler) StartRound(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}
	round, ok := h.round(w, r)
	if !ok {
		return
	}

	game, err := h.gameService.StartRound(r.Context(), id, round)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, game)
}

func (h *GameHandler) EndRound(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}
	round, ok := h.round(w, r)
	if !ok {
		return
	}

	if err := h.gameService.EndRound(r.Context(), id, round); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"round": round, "ended": true})
}

type PreselectRequest struct {
	PlayerID   uuid.UUID             `json:"playerId"`
	Categories []domain.CardCategory `json:"categories"`
}

func (h *GameHandler) Preselect(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}
	round, ok := h.round(w, r)
	if !ok {
		return
	}

	var req PreselectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	for _, c := range req.Categories {
		if !domain.ValidCategory(string(c)) {
			http.Error(w, "Unknown category", http.StatusBadRequest)
			return
		}
	}

	plan, err := h.gameService.PreselectCategories(r.Context(), id, req.PlayerID, round, req.Categories)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, plan)
}

// GetRevealPlans lists the categories players preselected for a round.
func (h *GameHandler) GetRevealPlans(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}
	round, ok := h.round(w, r)
	if !ok {
		return
	}

	plans, err := h.gameService.RevealPlans(r.Context(), id, round)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"plans": plans})
}

type OpenCategoryRequest struct {
	Category domain.CardCategory `json:"category"`
	Round    int                 `json:"round"`
}

func (h *GameHandler) OpenCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}
	playerID, err := uuid.Parse(chi.URLParam(r, "playerId"))
	if err != nil {
		http.Error(w, "Invalid player id", http.StatusBadRequest)
		return
	}

	var req OpenCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if !domain.ValidCategory(string(req.Category)) {
		http.Error(w, "Unknown category", http.StatusBadRequest)
		return
	}

	card, err := h.gameService.OpenCategory(r.Context(), id, playerID, req.Category, req.Round)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, card)
}

func (h *GameHandler) KickPlayer(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}
	playerID, err := uuid.Parse(chi.URLParam(r, "playerId"))
	if err != nil {
		http.Error(w, "Invalid player id", http.StatusBadRequest)
		return
	}

	player, err := h.gameService.KickPlayer(r.Context(), id, playerID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, player)
}

type SpectatorsRequest struct {
	Enabled bool `json:"enabled"`
}

func (h *GameHandler) SetSpectators(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}

	var req SpectatorsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	game, err := h.gameService.SetSpectatorsEnabled(r.Context(), id, req.Enabled)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, game)
}

func (h *GameHandler) TriggerEnding(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}

	game, err := h.gameService.TriggerEnding(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, game)
}

type EnqueueMinuteRequest struct {
	PlayerID uuid.UUID `json:"playerId"`
}

func (h *GameHandler) EnqueueMinute(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}
	round, ok := h.round(w, r)
	if !ok {
		return
	}

	var req EnqueueMinuteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	request, err := h.gameService.EnqueueMinute(r.Context(), id, round, req.PlayerID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, request)
}

func (h *GameHandler) ApproveMinute(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}
	round, ok := h.round(w, r)
	if !ok {
		return
	}
	playerID, err := uuid.Parse(chi.URLParam(r, "playerId"))
	if err != nil {
		http.Error(w, "Invalid player id", http.StatusBadRequest)
		return
	}

	request, err := h.gameService.ApproveMinute(r.Context(), id, playerID, round)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, request)
}

type TimerRequest struct {
	PlayerID    *uuid.UUID `json:"playerId"`
	Action      string     `json:"action"`
	DurationSec *int       `json:"durationSec"`
}

func (h *GameHandler) ControlTimer(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}

	var req TimerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	request, err := h.gameService.ControlMinuteTimer(r.Context(), id, req.PlayerID, service.TimerAction(req.Action), req.DurationSec)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, request)
}

func (h *GameHandler) StartVoting(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}
	round, ok := h.round(w, r)
	if !ok {
		return
	}

	if err := h.gameService.StartVoting(r.Context(), id, round); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"round": round, "voting": true})
}

func (h *GameHandler) StopVoting(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}
	round, ok := h.round(w, r)
	if !ok {
		return
	}

	if err := h.gameService.StopVoting(r.Context(), id, round); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"round": round, "voting": false})
}

type CastVoteRequest struct {
	VoterID  uuid.UUID `json:"voterId"`
	TargetID uuid.UUID `json:"targetId"`
	Source   string    `json:"source"`
}

func (h *GameHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}
	round, ok := h.round(w, r)
	if !ok {
		return
	}

	var req CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	vote, err := h.gameService.CastVote(r.Context(), id, round, req.VoterID, req.TargetID, domain.VoteSource(req.Source))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, vote)
}

func (h *GameHandler) Revote(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}
	round, ok := h.round(w, r)
	if !ok {
		return
	}

	if err := h.gameService.Revote(r.Context(), id, round); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"round": round, "revote": true})
}

// ListEvents pages through the audit log, newest-first. Filters arrive as
// query parameters; cursor is the id of the previous page's last event.
func (h *GameHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}

	filter := repository.EventFilter{
		Type: r.URL.Query().Get("type"),
	}
	if raw := r.URL.Query().Get("playerId"); raw != "" {
		playerID, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "Invalid playerId filter", http.StatusBadRequest)
			return
		}
		filter.PlayerID = &playerID
	}
	if raw := r.URL.Query().Get("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			http.Error(w, "Invalid from filter", http.StatusBadRequest)
			return
		}
		filter.From = &from
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			http.Error(w, "Invalid to filter", http.StatusBadRequest)
			return
		}
		filter.To = &to
	}
	if raw := r.URL.Query().Get("take"); raw != "" {
		take, err := strconv.Atoi(raw)
		if err != nil || take < 1 {
			http.Error(w, "Invalid take", http.StatusBadRequest)
			return
		}
		filter.Take = take
	}
	if raw := r.URL.Query().Get("cursor"); raw != "" {
		cursor, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "Invalid cursor", http.StatusBadRequest)
			return
		}
		filter.Cursor = &cursor
	}

	events, err := h.gameService.ListEvents(r.Context(), id, filter)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"events": events})
}

type CreateInviteRequest struct {
	Role string `json:"role"`
}

func (h *GameHandler) CreateInvite(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}

	var req CreateInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	invite, err := h.gameService.CreateInvite(r.Context(), id, domain.InviteRole(req.Role))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, invite)
}

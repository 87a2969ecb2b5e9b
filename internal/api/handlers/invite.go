package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shelterplus/shelterplus-api/internal/api/middleware"
	"github.com/shelterplus/shelterplus-api/internal/service"
)

type InviteHandler struct {
	gameService *service.GameService
}

func NewInviteHandler(gameService *service.GameService) *InviteHandler {
	return &InviteHandler{gameService: gameService}
}

// Accept redeems an invite code for the authenticated user.
func (h *InviteHandler) Accept(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	code := chi.URLParam(r, "code")
	if code == "" {
		http.Error(w, "Invite code required", http.StatusBadRequest)
		return
	}

	result, err := h.gameService.AcceptInvite(r.Context(), code, userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/shelterplus/shelterplus-api/internal/service"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("ERROR [handlers.respondJSON] failed to encode response: %v", err)
	}
}

// respondServiceError maps service sentinel errors to HTTP statuses. Anything
// unmapped is a 500 with its detail kept out of the response body.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrLobbyNotFound),
		errors.Is(err, service.ErrGameNotFound),
		errors.Is(err, service.ErrPlayerNotFound),
		errors.Is(err, service.ErrCardNotFound),
		errors.Is(err, service.ErrMinuteNotFound),
		errors.Is(err, service.ErrInviteNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)

	case errors.Is(err, service.ErrGameAlreadyStarted),
		errors.Is(err, service.ErrEndingAlreadySet),
		errors.Is(err, service.ErrRoundRegression),
		errors.Is(err, service.ErrInviteConflict):
		http.Error(w, err.Error(), http.StatusConflict)

	case errors.Is(err, service.ErrInviteExpired):
		http.Error(w, err.Error(), http.StatusGone)

	case errors.Is(err, service.ErrSpectatorsDisabled):
		http.Error(w, err.Error(), http.StatusForbidden)

	case errors.Is(err, service.ErrLobbyEmpty),
		errors.Is(err, service.ErrInvalidRounds),
		errors.Is(err, service.ErrInvalidDuration),
		errors.Is(err, service.ErrInvalidMode),
		errors.Is(err, service.ErrRoundOutOfRange),
		errors.Is(err, service.ErrInvalidTimerAction),
		errors.Is(err, service.ErrUnsupportedInviteRole):
		http.Error(w, err.Error(), http.StatusBadRequest)

	default:
		log.Printf("ERROR [handlers] unexpected service error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

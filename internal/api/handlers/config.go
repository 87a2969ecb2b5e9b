package handlers

import (
	"io"
	"net/http"

	"github.com/shelterplus/shelterplus-api/internal/config"
)

type ConfigHandler struct {
	presets *config.OfficialPresets
}

func NewConfigHandler(presets *config.OfficialPresets) *ConfigHandler {
	return &ConfigHandler{presets: presets}
}

// GetOfficial lists the official scenario/channel presets.
func (h *ConfigHandler) GetOfficial(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{"presets": h.presets.All()})
}

// ReloadOfficial swaps the preset list from the request body without a
// restart. An empty body restores the bundled defaults.
func (h *ConfigHandler) ReloadOfficial(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return
	}

	h.presets.Reload(string(body))
	respondJSON(w, http.StatusOK, map[string]interface{}{"presets": h.presets.All()})
}

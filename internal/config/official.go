package config

import (
	"encoding/json"
	"log"
	"sync"
)

// OfficialPreset is one scenario/channel bundle selectable by official-mode
// lobbies.
type OfficialPreset struct {
	Apocalypse     string `json:"apocalypse"`
	Bunker         string `json:"bunker"`
	VoiceChannelID string `json:"voiceChannelId"`
	TextChannelID  string `json:"textChannelId"`
}

// defaultOfficialJSON is the bundled preset list used when the environment
// provides none.
const defaultOfficialJSON = `[
  {"apocalypse": "Asteroid Impact", "bunker": "Mountain Shelter", "voiceChannelId": "123", "textChannelId": "456"},
  {"apocalypse": "Global Pandemic", "bunker": "Underground Labs", "voiceChannelId": "234", "textChannelId": "567"},
  {"apocalypse": "Solar Flare Catastrophe", "bunker": "Polar Research Vault", "voiceChannelId": "345", "textChannelId": "678"},
  {"apocalypse": "Alien Invasion", "bunker": "Desert Command Center", "voiceChannelId": "456", "textChannelId": "789"},
  {"apocalypse": "Global Flood", "bunker": "Floating Ark", "voiceChannelId": "567", "textChannelId": "890"},
  {"apocalypse": "Nuclear Winter", "bunker": "Subterranean Metro Complex", "voiceChannelId": "678", "textChannelId": "901"}
]`

// OfficialPresets parses and serves the official scenario/channel bundles. It
// is an injected service rather than ambient state so callers can reload it
// without a process restart. A malformed list degrades to empty with a
// warning, never a startup crash.
type OfficialPresets struct {
	mu      sync.RWMutex
	raw     string
	presets []OfficialPreset
}

// NewOfficialPresets parses raw (or the bundled fallback when raw is empty).
func NewOfficialPresets(raw string) *OfficialPresets {
	p := &OfficialPresets{}
	p.Reload(raw)
	return p
}

// Reload re-parses the preset list from raw, falling back to the bundled list
// when raw is empty.
func (p *OfficialPresets) Reload(raw string) {
	if raw == "" {
		raw = defaultOfficialJSON
	}

	var parsed []OfficialPreset
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		log.Printf("WARN [config.OfficialPresets] failed to parse official config JSON: %v", err)
		parsed = nil
	}

	valid := make([]OfficialPreset, 0, len(parsed))
	for _, entry := range parsed {
		if entry.Apocalypse == "" || entry.Bunker == "" || entry.VoiceChannelID == "" || entry.TextChannelID == "" {
			log.Printf("WARN [config.OfficialPresets] dropping incomplete preset %+v", entry)
			continue
		}
		valid = append(valid, entry)
	}

	p.mu.Lock()
	p.raw = raw
	p.presets = valid
	p.mu.Unlock()
}

// All returns the parsed presets.
func (p *OfficialPresets) All() []OfficialPreset {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]OfficialPreset, len(p.presets))
	copy(out, p.presets)
	return out
}

// GetByIndex returns the preset at index, or nil when out of range.
func (p *OfficialPresets) GetByIndex(index int) *OfficialPreset {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if index < 0 || index >= len(p.presets) {
		return nil
	}
	preset := p.presets[index]
	return &preset
}

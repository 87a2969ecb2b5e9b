package config_test

import (
	"testing"

	"github.com/shelterplus/shelterplus-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfficialPresetsBundledFallback(t *testing.T) {
	presets := config.NewOfficialPresets("")

	all := presets.All()
	require.NotEmpty(t, all)
	assert.Equal(t, "Asteroid Impact", all[0].Apocalypse)
	assert.Equal(t, "Mountain Shelter", all[0].Bunker)
}

func TestOfficialPresetsMalformedDegradesToEmpty(t *testing.T) {
	presets := config.NewOfficialPresets(`{not json`)
	assert.Empty(t, presets.All())
	assert.Nil(t, presets.GetByIndex(0))
}

func TestOfficialPresetsDropsIncompleteEntries(t *testing.T) {
	presets := config.NewOfficialPresets(`[
		{"apocalypse": "A", "bunker": "B", "voiceChannelId": "1", "textChannelId": "2"},
		{"apocalypse": "missing channels", "bunker": "B"}
	]`)

	all := presets.All()
	require.Len(t, all, 1)
	assert.Equal(t, "A", all[0].Apocalypse)
}

func TestOfficialPresetsReloadAndIndex(t *testing.T) {
	presets := config.NewOfficialPresets(`[]`)
	assert.Empty(t, presets.All())

	presets.Reload(`[{"apocalypse": "A", "bunker": "B", "voiceChannelId": "1", "textChannelId": "2"}]`)
	require.Len(t, presets.All(), 1)

	got := presets.GetByIndex(0)
	require.NotNil(t, got)
	assert.Equal(t, "1", got.VoiceChannelID)
	assert.Nil(t, presets.GetByIndex(5))
	assert.Nil(t, presets.GetByIndex(-1))
}

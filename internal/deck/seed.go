package deck

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math/rand"
	"strconv"
	"strings"

	"github.com/shelterplus/shelterplus-api/internal/domain"
)

// webGuildPlaceholder stands in for the guild id on lobbies with no Discord
// configuration so web-only lobbies seed identically across recomputations.
const webGuildPlaceholder = "web"

// endingSuffix distinguishes the ending draw from the dealing draw so both are
// independently deterministic for the same lobby.
const endingSuffix = "::ending"

// Seed derives the reproducible entropy source for a lobby. The same lobby
// snapshot (guild, id, creation time, rounds, enabled categories) always
// yields the same seed, which makes every deal replayable.
func Seed(lobby *domain.Lobby) string {
	guild := lobby.Channels().GuildID
	if guild == "" {
		guild = webGuildPlaceholder
	}

	parts := []string{
		guild,
		lobby.ID.String(),
		strconv.FormatInt(lobby.CreatedAt.UnixMilli(), 10),
		strconv.Itoa(lobby.Rounds),
		canonicalCategories(lobby.Categories()),
	}

	sum := sha256.Sum256([]byte(strings.Join(parts, "::")))
	return hex.EncodeToString(sum[:])
}

// EndingSeed is the lobby seed with a distinguishing suffix, used only for the
// ending draw.
func EndingSeed(lobby *domain.Lobby) string {
	return Seed(lobby) + endingSuffix
}

// NewRand returns a PRNG seeded from an arbitrary seed string.
func NewRand(seed string) *rand.Rand {
	sum := sha256.Sum256([]byte(seed))
	return rand.New(rand.NewSource(int64(binary.BigEndian.Uint64(sum[:8]))))
}

// Pick draws one item with the floor(rng*len) mod len rule shared by the
// scenario and ending draws.
func Pick[T any](pool []T, rng *rand.Rand) T {
	idx := int(rng.Float64()*float64(len(pool))) % len(pool)
	return pool[idx]
}

// canonicalCategories encodes the enabled-category map in canonical category
// order. Map iteration order must never leak into the seed.
func canonicalCategories(enabled map[domain.CardCategory]bool) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, c := range domain.CardCategoryOrder {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(string(c))
		b.WriteString(`":`)
		b.WriteString(strconv.FormatBool(enabled[c]))
	}
	b.WriteByte('}')
	return b.String()
}

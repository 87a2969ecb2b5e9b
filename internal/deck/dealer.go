package deck

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/shelterplus/shelterplus-api/internal/domain"
)

// DealtCard is one assigned value in one category.
type DealtCard struct {
	Category domain.CardCategory
	Value    string
}

// DealtPlayer pairs a roster entry with its assigned cards.
type DealtPlayer struct {
	Number    int
	Nickname  string
	DiscordID *string
	Cards     []DealtCard
}

// Deal assigns one card per enabled category to every player. Players are
// processed in ascending seat order and categories in canonical order, so for
// a fixed rng the output is byte-for-byte reproducible. Non-repeatable
// categories draw without replacement across the whole game; when such a pool
// runs dry the dealer emits "<category> - Generated <n>" with a per-category
// counter, so dealing never fails no matter the roster size.
func Deal(players []domain.LobbyPlayer, enabled map[domain.CardCategory]bool, rng *rand.Rand) []DealtPlayer {
	used := make(map[domain.CardCategory]map[string]bool)
	fallback := make(map[domain.CardCategory]int)
	for _, c := range domain.CardCategoryOrder {
		if enabled[c] {
			used[c] = make(map[string]bool)
		}
	}

	draw := func(category domain.CardCategory) DealtCard {
		pool := CategoryPools[category]
		var value string

		if category.IsRepeatable() {
			if len(pool) > 0 {
				idx := int(rng.Float64()*float64(len(pool))) % len(pool)
				value = pool[idx]
			}
		} else {
			available := make([]string, 0, len(pool))
			for _, item := range pool {
				if !used[category][item] {
					available = append(available, item)
				}
			}
			if len(available) > 0 {
				idx := int(rng.Float64()*float64(len(available))) % len(available)
				value = available[idx]
			}
		}

		if value == "" {
			fallback[category]++
			value = fmt.Sprintf("%s - Generated %d", category, fallback[category])
		}

		if !category.IsRepeatable() {
			used[category][value] = true
		}

		return DealtCard{Category: category, Value: value}
	}

	ordered := make([]domain.LobbyPlayer, len(players))
	copy(ordered, players)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Number < ordered[j].Number })

	dealt := make([]DealtPlayer, 0, len(ordered))
	for _, p := range ordered {
		dp := DealtPlayer{
			Number:    p.Number,
			Nickname:  p.Nickname,
			DiscordID: p.DiscordID,
		}
		for _, category := range domain.CardCategoryOrder {
			if !enabled[category] {
				continue
			}
			dp.Cards = append(dp.Cards, draw(category))
		}
		dealt = append(dealt, dp)
	}

	return dealt
}

// Package deck holds the card pools and the deterministic dealing logic used
// once per game at creation time.
package deck

import "github.com/shelterplus/shelterplus-api/internal/domain"

// ScenarioPair is one apocalypse/bunker combination.
type ScenarioPair struct {
	Apocalypse string
	Bunker     string
}

// ScenarioPool is the bundled set of scenario pairs. Official lobbies may
// override the pair via a preset; everyone else draws from here.
var ScenarioPool = []ScenarioPair{
	{Apocalypse: "Asteroid Impact", Bunker: "Mountain Shelter"},
	{Apocalypse: "Global Pandemic", Bunker: "Underground Labs"},
	{Apocalypse: "Solar Flare Catastrophe", Bunker: "Polar Research Vault"},
	{Apocalypse: "Alien Invasion", Bunker: "Desert Command Center"},
	{Apocalypse: "Global Flood", Bunker: "Floating Ark"},
	{Apocalypse: "Nuclear Winter", Bunker: "Subterranean Metro Complex"},
	{Apocalypse: "Supervolcano Eruption", Bunker: "Coastal Cliff Bunker"},
	{Apocalypse: "AI Uprising", Bunker: "Off-Grid Farm Compound"},
}

// ApocalypsePool lists the apocalypse halves of ScenarioPool in order.
var ApocalypsePool = apocalypses()

// BunkerPool lists the bunker halves of ScenarioPool in order.
var BunkerPool = bunkers()

func apocalypses() []string {
	out := make([]string, len(ScenarioPool))
	for i, p := range ScenarioPool {
		out[i] = p.Apocalypse
	}
	return out
}

func bunkers() []string {
	out := make([]string, len(ScenarioPool))
	for i, p := range ScenarioPool {
		out[i] = p.Bunker
	}
	return out
}

// EndingPool holds the endings one of which is drawn when the host triggers
// the finale.
var EndingPool = []string{
	"The bunker doors open to a world reborn; the survivors rebuild together.",
	"Supplies run out early, but a hidden cache saves the group at the last moment.",
	"A rescue convoy arrives years ahead of schedule; not everyone wants to leave.",
	"The shelter's reactor fails; the survivors march out into the ash and endure.",
	"Decades later, the bunker becomes the capital of a new federation.",
	"The group splinters, but both halves survive and meet again at the surface.",
}

// CategoryPools maps each category to its default value pool.
var CategoryPools = map[domain.CardCategory][]string{
	domain.CategoryProfession:    {"Biologist", "Engineer", "Artist"},
	domain.CategoryBio:           {"Age 25", "Age 35", "Age 42"},
	domain.CategoryHealth:        {"Perfect health", "Asthma", "Diabetic"},
	domain.CategoryHobby:         {"Gardening", "Chess", "Rock climbing"},
	domain.CategoryPhobia:        {"Fear of heights", "Claustrophobic", "Fear of spiders"},
	domain.CategoryPersonality:   {"Optimistic", "Pessimistic", "Leader"},
	domain.CategoryExtraInfo:     {"Knows first aid", "Won a lottery", "Is a twin"},
	domain.CategoryKnowledge:     {"Survival skills", "Medical training", "Mechanical skills"},
	domain.CategoryLuggage:       {"Backpack of tools", "Suitcase of clothes", "Box of canned food"},
	domain.CategoryActionCard:    {"Swap a card", "Peek at a card", "Trade information"},
	domain.CategoryConditionCard: {"Lose a turn", "Share a secret", "Reveal a card"},
}

package domain

// CardCategory is one of the eleven fixed card types dealt to every player.
type CardCategory string

const (
	CategoryProfession    CardCategory = "Profession"
	CategoryBio           CardCategory = "Bio"
	CategoryHealth        CardCategory = "Health"
	CategoryHobby         CardCategory = "Hobby"
	CategoryPhobia        CardCategory = "Phobia"
	CategoryPersonality   CardCategory = "Personality"
	CategoryExtraInfo     CardCategory = "ExtraInfo"
	CategoryKnowledge     CardCategory = "Knowledge"
	CategoryLuggage       CardCategory = "Luggage"
	CategoryActionCard    CardCategory = "ActionCard"
	CategoryConditionCard CardCategory = "ConditionCard"
)

// CardCategoryOrder is the canonical dealing and display order. Dealing
// iterates this slice so output is reproducible for a fixed seed.
var CardCategoryOrder = []CardCategory{
	CategoryProfession,
	CategoryBio,
	CategoryHealth,
	CategoryHobby,
	CategoryPhobia,
	CategoryPersonality,
	CategoryExtraInfo,
	CategoryKnowledge,
	CategoryLuggage,
	CategoryActionCard,
	CategoryConditionCard,
}

// IsRepeatable reports whether the category draws with replacement. Action and
// condition cards may repeat across players; every other category deals each
// value at most once per game.
func (c CardCategory) IsRepeatable() bool {
	return c == CategoryActionCard || c == CategoryConditionCard
}

// ValidCategory reports whether s names one of the fixed categories.
func ValidCategory(s string) bool {
	for _, c := range CardCategoryOrder {
		if string(c) == s {
			return true
		}
	}
	return false
}

package catalog

import "strings"

// nonVegKeywords are matched as substrings against the concatenated recipe
// text. Substring matching is a deliberate heuristic: "hamburger" contains
// "ham" and will classify as non-vegetarian. Callers get consistency, not
// correctness.
var nonVegKeywords = []string{
	"chicken", "beef", "pork", "lamb", "fish", "seafood",
	"meat", "bacon", "ham", "turkey", "duck",
}

// IsVegetarian reports whether a recipe looks vegetarian based on its name,
// category, instructions and ingredient list. Pure and deterministic.
func IsVegetarian(r *Recipe) bool {
	text := strings.ToLower(
		r.Name + " " + r.Category + " " + r.Instructions + " " + strings.Join(r.IngredientList(), " "),
	)
	for _, keyword := range nonVegKeywords {
		if strings.Contains(text, keyword) {
			return false
		}
	}
	return true
}

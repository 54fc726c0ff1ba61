// Package catalog contains the domain model for externally sourced recipes.
// Records are read-only projections of the remote recipe catalog; the domain
// logic here is pure and performs no I/O.
package catalog

import "strings"

// MaxIngredientSlots is the number of indexed ingredient fields a catalog
// record carries. Slots are sparse: an empty name means the slot is unused.
const MaxIngredientSlots = 20

// Recipe represents a single catalog record
type Recipe struct {
	ID           string
	Name         string
	Category     string
	Area         string
	Instructions string
	ThumbnailURL string
	SourceURL    string
	VideoURL     string
	Tags         string

	// Sparse indexed ingredient/measure pairs, slot i in Ingredients pairs
	// with slot i in Measures.
	Ingredients [MaxIngredientSlots]string
	Measures    [MaxIngredientSlots]string
}

// IngredientList returns the populated ingredient slots in index order as
// display strings ("2 egg", "salt"). Empty slots are skipped, not treated as
// the end of the list.
func (r *Recipe) IngredientList() []string {
	var list []string
	for i := 0; i < MaxIngredientSlots; i++ {
		name := strings.TrimSpace(r.Ingredients[i])
		if name == "" {
			continue
		}
		measure := strings.TrimSpace(r.Measures[i])
		if measure != "" {
			list = append(list, measure+" "+name)
		} else {
			list = append(list, name)
		}
	}
	return list
}

// InstructionSteps splits the instruction text into trimmed non-empty steps
func (r *Recipe) InstructionSteps() []string {
	var steps []string
	for _, line := range strings.Split(r.Instructions, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			steps = append(steps, line)
		}
	}
	return steps
}

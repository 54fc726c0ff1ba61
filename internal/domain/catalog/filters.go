package catalog

// Filters holds the client-side predicates applied to a result set.
// Vegetarian and NonVegetarian form a tri-state: both set (or both unset)
// means no diet filter at all.
type Filters struct {
	Vegetarian    bool
	NonVegetarian bool
	Category      string
}

// IsZero reports whether no predicate is active
func (f Filters) IsZero() bool {
	return f.Vegetarian == f.NonVegetarian && f.Category == ""
}

// Apply filters recipes in place of the remote query: predicates run locally
// over the fetched set and are never sent to the catalog. The output is a
// subsequence of the input; relative order is preserved, never re-sorted.
func (f Filters) Apply(recipes []Recipe) []Recipe {
	if f.IsZero() {
		return recipes
	}

	out := make([]Recipe, 0, len(recipes))
	for _, r := range recipes {
		if f.Vegetarian != f.NonVegetarian {
			if IsVegetarian(&r) != f.Vegetarian {
				continue
			}
		}
		if f.Category != "" && r.Category != f.Category {
			continue
		}
		out = append(out, r)
	}
	return out
}

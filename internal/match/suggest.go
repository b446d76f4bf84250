package match

import "sort"

// DefaultSuggestionScore is the minimal Similarity for a name to be offered
// as a "did you mean" suggestion.
const DefaultSuggestionScore = 0.7

// Suggest returns up to limit candidates most similar to name, best first.
// Ties are broken alphabetically so the output is deterministic.
func Suggest(name string, candidates []string, limit int) []string {
	type scored struct {
		name  string
		score float64
	}

	var ranked []scored

	for _, c := range candidates {
		if c == name {
			continue
		}

		if s := Similarity(name, c); s >= DefaultSuggestionScore {
			ranked = append(ranked, scored{c, s})
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}

		return ranked[i].name < ranked[j].name
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.name
	}

	return out
}

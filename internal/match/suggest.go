package match

import (
	"sort"
)

// MinSuggestionScore is the similarity below which a key is not worth
// suggesting.
const MinSuggestionScore = 0.5

// Suggestion is a candidate key with its similarity to the keyword.
type Suggestion struct {
	Key   string
	Score float64
}

// Rank scores every candidate against keyword and returns those at or above
// MinSuggestionScore, best first. Ties are broken by key for stable output.
//
// Keywords are prefixes, so a candidate is scored both as a whole and
// truncated to the keyword's length; the better score counts.
func Rank(keyword string, candidates []string) []Suggestion {
	norm := NormalizeKey(keyword)
	seen := make(map[string]bool, len(candidates))

	var out []Suggestion

	for _, c := range candidates {
		if seen[c] {
			continue
		}

		seen[c] = true

		s := score(norm, NormalizeKey(c))
		if s < MinSuggestionScore {
			continue
		}

		out = append(out, Suggestion{Key: c, Score: s})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}

		return out[i].Key < out[j].Key
	})

	return out
}

// Suggest returns up to n keys from candidates that look like keyword.
func Suggest(keyword string, candidates []string, n int) []string {
	ranked := Rank(keyword, candidates)
	if len(ranked) > n {
		ranked = ranked[:n]
	}

	keys := make([]string, 0, len(ranked))
	for _, s := range ranked {
		keys = append(keys, s.Key)
	}

	return keys
}

func score(keyword, candidate string) float64 {
	best := Similarity(keyword, candidate)

	runes := []rune(candidate)
	if n := len([]rune(keyword)); n > 0 && n < len(runes) {
		if s := Similarity(keyword, string(runes[:n])); s > best {
			best = s
		}
	}

	return best
}

package formulakit

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// maxSuggestDistance bounds the edit distance for typo suggestions. The
// distance must also be shorter than the name itself.
const maxSuggestDistance = 2

// suggest returns the candidate closest to name, or "" if none is close.
// Abbreviations ("wt" for "weight") are found by subsequence ranking,
// typos ("wieght") by edit distance.
func suggest(name string, candidates []string) string {
	if name == "" || len(candidates) == 0 {
		return ""
	}
	sorted := append([]string(nil), candidates...)
	sort.Strings(sorted)

	if len(name) >= 2 {
		ranks := fuzzy.RankFindFold(name, sorted)
		if len(ranks) > 0 {
			sort.Stable(ranks)
			return ranks[0].Target
		}
	}

	best, bestDist := "", maxSuggestDistance+1
	lower := strings.ToLower(name)
	for _, c := range sorted {
		d := fuzzy.LevenshteinDistance(lower, strings.ToLower(c))
		if d < bestDist && d < len(name) {
			best, bestDist = c, d
		}
	}
	return best
}

// withFunctions returns keys plus every whitelisted function name.
func withFunctions(keys []string) []string {
	out := make([]string, 0, len(keys)+len(functions))
	out = append(out, keys...)
	for name := range functions {
		out = append(out, name)
	}
	return out
}

func bindingNames(vars map[string]float64) []string {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	return names
}

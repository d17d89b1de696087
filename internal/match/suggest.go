package match

import (
	"sort"
	"strings"
	"unicode"
)

// DefaultMinSimilarity is the normalized similarity a name needs to be suggested.
const DefaultMinSimilarity = 0.5

// Levenshtein computes the edit distance between two strings.
//
// Time complexity: O(len(a) * len(b)), space: O(min(len(a), len(b))).
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}

	if len(a) > len(b) {
		a, b = b, a
	}

	if len(a) == 0 {
		return len(b)
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j

		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}

		prev, curr = curr, prev
	}

	return prev[len(a)]
}

// Similarity maps the edit distance of the normalized names onto 0..1,
// where 1 means equal after normalization.
func Similarity(a, b string) float64 {
	a, b = NormalizeName(a), NormalizeName(b)
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}

	return 1.0 - float64(Levenshtein(a, b))/float64(max(len(a), len(b)))
}

// NormalizeName lowercases a member name and drops '_', '-' and spaces, so
// "get_value", "GetValue" and "getValue" compare equal.
func NormalizeName(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if r == '_' || r == '-' || r == ' ' {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

// Suggest returns up to limit names from known most similar to name, best first.
// Ties keep alphabetical order.
func Suggest(name string, known []string, limit int) []string {
	type scored struct {
		name  string
		score float64
	}

	var candidates []scored
	for _, k := range known {
		if k == name {
			continue
		}

		if s := Similarity(name, k); s >= DefaultMinSimilarity {
			candidates = append(candidates, scored{k, s})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}

		return candidates[i].name < candidates[j].name
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	res := make([]string, len(candidates))
	for i, c := range candidates {
		res[i] = c.name
	}

	return res
}

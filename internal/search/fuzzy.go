package search

import (
	"math"
	"strings"
)

// Score rates how well text matches query, returning a similarity in [0, 1].
//
// Rules apply in priority order and the first hit wins: empty input scores 0,
// case-insensitive equality scores 1, containment scores by relative length
// difference, a prefix scores 0.7, and everything else falls back to
// Levenshtein similarity with a 0.4 floor. Containment subsumes the prefix
// branch for non-empty strings. Callers rank and filter on these exact
// values.
func Score(query, text string) float64 {
	if query == "" || text == "" {
		return 0
	}

	queryLower := strings.ToLower(query)
	textLower := strings.ToLower(text)
	if queryLower == textLower {
		return 1.0
	}

	queryLen := float64(len([]rune(queryLower)))
	textLen := float64(len([]rune(textLower)))

	if strings.Contains(textLower, queryLower) {
		return 0.8 - (math.Abs(textLen-queryLen)/textLen)*0.3
	}

	if strings.HasPrefix(textLower, queryLower) {
		return 0.7
	}

	distance := Levenshtein(queryLower, textLower)
	similarity := 1 - float64(distance)/math.Max(queryLen, textLen)
	if similarity > 0.4 {
		return similarity
	}
	return 0
}

// Levenshtein returns the minimum number of single-character edits
// (insertions, deletions, substitutions at unit cost) transforming a into b.
// Classic two-row dynamic programming; symmetric, zero iff the inputs are
// equal.
func Levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	previous := make([]int, len(rb)+1)
	current := make([]int, len(rb)+1)
	for j := range previous {
		previous[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		current[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			current[j] = min(previous[j]+1, current[j-1]+1, previous[j-1]+cost)
		}
		previous, current = current, previous
	}
	return previous[len(rb)]
}

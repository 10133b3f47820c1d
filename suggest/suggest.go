// Package suggest proposes close matches for mistyped user input, such as
// trigger modes or profile names.
package suggest

import "github.com/agext/levenshtein"

// String returns the candidate closest to the input, or an empty string when
// no candidate is close enough to be a plausible typo.
//
// The distance threshold scales with the input length; short inputs allow a
// single differing character. Callers should not rely on the exact
// heuristic.
func String(input string, candidates []string) string {
	max := len(input) / 5
	if max == 0 {
		max = 1
	}

	best := ""
	bestDist := max + 1
	for _, cand := range candidates {
		if cand == input {
			return input
		}
		if d := levenshtein.Distance(input, cand, nil); d < bestDist {
			best, bestDist = cand, d
		}
	}
	if bestDist > max {
		return ""
	}
	return best
}

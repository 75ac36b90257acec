// Package suggest offers "did you mean" candidates for near-miss names in
// population descriptors, parameter overrides, and scenario files.
package suggest

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Nearest returns the candidate closest to input, or "" when nothing is
// close enough to be a plausible typo. Matching is case-insensitive but the
// returned candidate keeps its canonical spelling.
func Nearest(input string, candidates []string) string {
	in := strings.ToLower(input)
	best := ""
	bestDist := limit(len(input)) + 1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(in, strings.ToLower(c))
		if d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best
}

// limit scales the acceptable edit distance with the input length, so short
// names only tolerate a slip or two.
func limit(n int) int {
	switch {
	case n <= 4:
		return 1
	case n <= 8:
		return 2
	default:
		return 3
	}
}

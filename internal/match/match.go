package match

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Distance computes the Levenshtein distance between two strings: the
// minimum number of single-rune insertions, deletions or substitutions
// turning one into the other.
func Distance(a, b string) int {
	if a == b {
		return 0
	}

	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	if len(ra) == 0 {
		return len(rb)
	}

	// Two rows over the shorter string.
	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)

	for i := range prev {
		prev[i] = i
	}

	for j, cb := range rb {
		curr[0] = j + 1

		for i, ca := range ra {
			cost := 1
			if ca == cb {
				cost = 0
			}

			curr[i+1] = min(prev[i+1]+1, curr[i]+1, prev[i]+cost)
		}

		prev, curr = curr, prev
	}

	return prev[len(ra)]
}

// Closest returns the candidate nearest to name. Only candidates within a
// third of name's length (at least one edit) qualify; ties go to the
// earlier candidate.
func Closest(name string, candidates []string) (string, bool) {
	limit := max(1, utf8.RuneCountInString(name)/3)
	lower := strings.ToLower(name)

	best, bestDist := "", limit+1

	for _, c := range candidates {
		if d := Distance(lower, strings.ToLower(c)); d < bestDist {
			best, bestDist = c, d
		}
	}

	return best, best != ""
}

// Hint returns a " (did you mean ...?)" suffix for an error message, or an
// empty string when no candidate is close to name.
func Hint(name string, candidates []string) string {
	c, ok := Closest(name, candidates)
	if !ok || c == name {
		return ""
	}

	return fmt.Sprintf(" (did you mean %q?)", c)
}

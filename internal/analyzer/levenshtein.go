package analyzer

import (
	"math"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Distance computes the Levenshtein edit distance between two strings,
// counting single code point insertions, deletions and substitutions.
func Distance(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}
	// levenshtein keeps its row in uint16 cells
	if utf8.RuneCountInString(s1) <= math.MaxUint16 && utf8.RuneCountInString(s2) <= math.MaxUint16 {
		return levenshtein.ComputeDistance(s1, s2)
	}
	return DistanceRunes([]rune(s1), []rune(s2))
}

// DistanceRunes is Distance over pre-decoded code points. It has no length
// limit and uses O(min(m,n)) space.
func DistanceRunes(s1, s2 []rune) int {
	// Ensure s1 is the shorter sequence so the rows are as small as possible
	if len(s1) > len(s2) {
		s1, s2 = s2, s1
	}

	m := len(s1)
	n := len(s2)

	// Special cases
	if m == 0 {
		return n
	}

	// Use two rows for space optimization
	prev := make([]int, m+1)
	curr := make([]int, m+1)

	// Initialize first row
	for i := 0; i <= m; i++ {
		prev[i] = i
	}

	// Fill the matrix one column of s2 at a time
	for j := 1; j <= n; j++ {
		curr[0] = j
		for i := 1; i <= m; i++ {
			cost := 0
			if s1[i-1] != s2[j-1] {
				cost = 1
			}

			curr[i] = min3(
				prev[i]+1,      // deletion
				curr[i-1]+1,    // insertion
				prev[i-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[m]
}

// min3 returns the minimum of three integers
func min3(a, b, c int) int {
	if a <= b && a <= c {
		return a
	}
	if b <= c {
		return b
	}
	return c
}

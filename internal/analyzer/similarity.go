package analyzer

import (
	"unicode/utf8"

	"github.com/Mikefromtheback/plagiat-check/domain"
)

// Score converts an edit distance into a similarity:
//
//	1 - distance / ((lenA + lenB) / 2)
//
// The result is not clamped; short, very different strings score below zero.
// Two empty strings are identical and score 1.0.
func Score(distance, lenA, lenB int) float64 {
	if lenA+lenB == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/(float64(lenA+lenB)/2.0)
}

// ScoreStrict is Score without the empty-input substitution; it returns a
// DivisionError when both lengths are zero.
func ScoreStrict(distance, lenA, lenB int) (float64, error) {
	if lenA+lenB == 0 {
		return 0, domain.NewDivisionError("similarity of two empty strings is undefined")
	}
	return Score(distance, lenA, lenB), nil
}

// Similarity holds the measurements behind one score.
type Similarity struct {
	Score    float64
	Distance int
	LengthA  int
	LengthB  int
}

// Compare measures two canonical strings. Lengths are in code points.
func Compare(a, b string) Similarity {
	lenA := utf8.RuneCountInString(a)
	lenB := utf8.RuneCountInString(b)
	d := Distance(a, b)
	return Similarity{
		Score:    Score(d, lenA, lenB),
		Distance: d,
		LengthA:  lenA,
		LengthB:  lenB,
	}
}

package textutil

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// SimilarityRatio computes a 0-100 similarity score between two strings.
// Both inputs are normalized first; the score is the Levenshtein distance
// scaled against the longer normalized form. Returns 0 if either side
// normalizes to the empty string.
func SimilarityRatio(a, b string) int {
	normA := Normalize(a)
	normB := Normalize(b)
	if normA == "" || normB == "" {
		return 0
	}
	if normA == normB {
		return 100
	}

	longest := utf8.RuneCountInString(normA)
	if n := utf8.RuneCountInString(normB); n > longest {
		longest = n
	}

	distance := levenshtein.ComputeDistance(normA, normB)
	ratio := 1 - float64(distance)/float64(longest)
	if ratio < 0 {
		ratio = 0
	}
	return int(ratio * 100)
}

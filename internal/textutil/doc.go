// Package textutil provides the text canonicalization and similarity helpers
// used for artist identity comparison.
//
// Normalize is the single normalization function shared by every component
// that compares names for identity. Two strings refer to the same artist
// exactly when their normalized forms are byte-for-byte equal; normalizing on
// one side of a comparison but not the other silently breaks matching, so
// callers must never reimplement it.
//
// SimilarityRatio computes a 0-100 edit-distance ratio between the normalized
// forms of two strings. It backs the cache curator's re-scoring pass.
package textutil

package identity

import (
	"showtag/internal/textutil"
)

// RemovedEntry records a quarantined cache entry together with the
// recomputed similarity that condemned it, for audit.
type RemovedEntry struct {
	Entry      Entry `json:"original_data"`
	Similarity int   `json:"calculated_similarity"`
}

// CurateResult summarizes a curation pass.
type CurateResult struct {
	Kept    *Cache
	Removed map[string]RemovedEntry
	// Checked is the number of external-source entries that were re-scored.
	Checked int
	// CatalogKept is the number of catalog-source entries passed through.
	CatalogKept int
}

// Curate re-scores every external-source cache entry by textual similarity
// between its key and its canonical name, keeping entries at or above
// minScore (with the score refreshed to the recomputed value, never the
// stale stored one) and quarantining the rest. Catalog-source entries are
// kept unconditionally; entries of unrecognized source pass through
// unchanged. Curation is one-way: removed entries are never re-added
// automatically.
func Curate(cache *Cache, minScore int) CurateResult {
	result := CurateResult{
		Kept:    NewCache(),
		Removed: make(map[string]RemovedEntry),
	}

	for _, key := range cache.Keys() {
		entry, _ := cache.Get(key)
		switch entry.Source {
		case SourceCatalog:
			result.Kept.Put(key, entry)
			result.CatalogKept++
		case SourceExternal:
			result.Checked++
			similarity := textutil.SimilarityRatio(key, entry.CanonicalName)
			if similarity >= minScore {
				entry.Score = similarity
				result.Kept.Put(key, entry)
			} else {
				result.Removed[key] = RemovedEntry{Entry: entry, Similarity: similarity}
			}
		default:
			result.Kept.Put(key, entry)
		}
	}

	return result
}

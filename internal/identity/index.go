package identity

import (
	"showtag/internal/catalog"
	"showtag/internal/textutil"
)

// Index is an in-memory projection of the catalog keyed by artist name. It
// makes "is this name already in my catalog" an O(1) lookup instead of a
// scan per query.
type Index struct {
	entries map[string]Entry
}

// BuildIndex registers every catalog item's artist under both its raw string
// and its normalized form. The first item seen for a key wins; duplicates do
// not overwrite.
func BuildIndex(items []catalog.Item) *Index {
	index := &Index{entries: make(map[string]Entry, len(items)*2)}
	for _, item := range items {
		if item.Artist == "" {
			continue
		}
		entry := Entry{
			MBID:          item.MBArtistID,
			CanonicalName: item.Artist,
			Source:        SourceCatalog,
		}
		index.register(item.Artist, entry)
		if normalized := textutil.Normalize(item.Artist); normalized != "" {
			index.register(normalized, entry)
		}
	}
	return index
}

func (ix *Index) register(key string, entry Entry) {
	if _, exists := ix.entries[key]; exists {
		return
	}
	ix.entries[key] = entry
}

// Lookup returns the entry registered under the exact key, if any.
func (ix *Index) Lookup(key string) (Entry, bool) {
	if ix == nil {
		return Entry{}, false
	}
	entry, ok := ix.entries[key]
	return entry, ok
}

// Len returns the number of keys in the index.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.entries)
}

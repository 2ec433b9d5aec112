package identity

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"showtag/internal/textutil"
)

// Cache is the persistent artist identity store: a flat mapping from artist
// strings (raw or normalized form, both are valid keys) to entries. It grows
// monotonically; entries are only ever removed by the curator.
type Cache struct {
	entries map[string]Entry
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]Entry)}
}

// LoadCache reads a cache document from disk. A missing file yields an empty
// cache; a malformed file is an error, since silently proceeding on corrupt
// identity data risks mistagging.
func LoadCache(path string) (*Cache, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewCache(), nil
		}
		return nil, fmt.Errorf("read cache file: %w", err)
	}
	if len(data) == 0 {
		return NewCache(), nil
	}

	var entries map[string]Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse cache file %q: %w", path, err)
	}
	if entries == nil {
		entries = make(map[string]Entry)
	}
	return &Cache{entries: entries}, nil
}

// Save writes the cache to disk atomically (temp file plus rename) so an
// interrupted write never corrupts the previous document.
func (c *Cache) Save(path string) error {
	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// SaveBackup writes a snapshot of the cache to the given path with the same
// atomic-write discipline as Save. Taken before destructive rewrites so the
// previous state survives a bad curation run.
func (c *Cache) SaveBackup(path string) error {
	if err := c.Save(path); err != nil {
		return fmt.Errorf("save cache backup: %w", err)
	}
	return nil
}

// Get returns the entry stored under the exact key, if any.
func (c *Cache) Get(key string) (Entry, bool) {
	entry, ok := c.entries[key]
	return entry, ok
}

// Put stores an entry under the exact key.
func (c *Cache) Put(key string, entry Entry) {
	c.entries[key] = entry
}

// PutResolved stores a freshly resolved entry under both the raw name and
// its normalized form, so future lookups hit either way without re-querying.
func (c *Cache) PutResolved(raw string, entry Entry) {
	c.entries[raw] = entry
	if normalized := textutil.Normalize(raw); normalized != "" && normalized != raw {
		c.entries[normalized] = entry
	}
}

// Len returns the number of keys in the cache.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Keys returns all cache keys in sorted order.
func (c *Cache) Keys() []string {
	keys := make([]string, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

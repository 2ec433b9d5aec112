// Package catalog reads and tags items in a beets library database.
//
// The store talks to the library's SQLite file directly and touches only the
// columns the matching engine needs: artist, title, album artist, the
// MusicBrainz artist id, and the genre field that tagging mutates. The
// library path is an explicit constructor argument; no ambient beets
// configuration is consulted.
//
// Writes are per-item with no cross-item transaction, so callers must treat
// tagging as re-runnable: a failure on one item does not roll back earlier
// ones.
package catalog

// Package identity resolves freeform artist names to stable identities.
//
// An identity is an Entry: the canonical artist name, an optional MusicBrainz
// artist id, and the source that vouches for the mapping. Entries come from
// three places, in strict precedence order: the local catalog index (trusted
// unconditionally), the persistent artist cache (previously resolved names),
// and MusicBrainz search (trusted only above a confidence threshold).
//
// The Resolver walks those tiers for each raw name and reports which tier
// answered, so runs can summarize where their identities came from. Confident
// external answers are written back to the cache under both the raw and the
// normalized form of the name, making later runs cheap. Names that fail every
// tier are deliberately not cached: MusicBrainz grows, and an unresolvable
// name today may resolve next month.
//
// Curate is the offline maintenance pass that re-scores cached external
// entries against their own keys and quarantines the ones whose canonical
// name has drifted too far from the name that produced them.
package identity

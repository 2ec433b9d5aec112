package identity

// Source identifies who vouches for a cached identity.
type Source string

const (
	// SourceCatalog marks entries derived from the local catalog. They are
	// trusted unconditionally and carry no score.
	SourceCatalog Source = "catalog"
	// SourceExternal marks entries resolved through MusicBrainz search. They
	// carry the search confidence score they were admitted with.
	SourceExternal Source = "musicbrainz"
	// SourceUnknown marks entries of unrecognized provenance. The curator
	// passes them through untouched.
	SourceUnknown Source = "unknown"
)

// Entry is a resolved artist identity.
type Entry struct {
	MBID          string `json:"mbid,omitempty"`
	CanonicalName string `json:"canonical_name,omitempty"`
	SortName      string `json:"sort_name,omitempty"`
	Source        Source `json:"source"`
	// Score is the 0-100 confidence the entry was admitted with. Only
	// meaningful when Source is SourceExternal.
	Score int `json:"score,omitempty"`
}

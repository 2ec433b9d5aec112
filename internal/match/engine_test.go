package match

import (
	"testing"

	"showtag/internal/catalog"
	"showtag/internal/episodes"
	"showtag/internal/identity"
)

func tracklist(pairs ...[2]string) []episodes.Episode {
	tracks := make([]episodes.Track, 0, len(pairs))
	for _, p := range pairs {
		tracks = append(tracks, episodes.Track{Track: p[0], Artist: p[1]})
	}
	return []episodes.Episode{{URL: "https://x/episode-1", Tracklist: tracks}}
}

func TestBuildTargetsSkipsEmptyPairs(t *testing.T) {
	eps := tracklist(
		[2]string{"Space Is The Place", "Sun Ra"},
		[2]string{"", "Sun Ra"},
		[2]string{"(intro)", "Sun Ra"},
		[2]string{"Untitled", "   "},
	)

	targets := BuildTargets(eps, identity.NewCache())
	if len(targets) != 1 {
		t.Fatalf("len(targets) = %d, want 1", len(targets))
	}
	key := TargetKey{Kind: KindName, Identity: "sun ra", Title: "space is the place"}
	if _, ok := targets[key]; !ok {
		t.Errorf("missing target %+v", key)
	}
}

func TestBuildTargetsExpandsCacheEntry(t *testing.T) {
	cache := identity.NewCache()
	cache.Put("daft punk", identity.Entry{
		MBID:          "X1",
		CanonicalName: "Daft Punk",
		Source:        identity.SourceExternal,
		Score:         90,
	})

	targets := BuildTargets(tracklist([2]string{"One More Time", "Daft Punk (Live)"}), cache)

	want := []TargetKey{
		{Kind: KindName, Identity: "daft punk", Title: "one more time"},
		{Kind: KindMBID, Identity: "X1", Title: "one more time"},
	}
	for _, key := range want {
		if _, ok := targets[key]; !ok {
			t.Errorf("missing target %+v", key)
		}
	}
}

func TestFindMatchesNormalizedNameTier(t *testing.T) {
	// Catalog spelling and scraped spelling differ only in punctuation
	// and casing; the normalized-name tier must bridge them.
	items := []catalog.Item{
		{ID: 1, Artist: "Sun Ra & His Arkestra", Title: "Space Is The Place"},
		{ID: 2, Artist: "Sun Ra & His Arkestra", Title: "Nuclear War"},
	}
	targets := BuildTargets(tracklist([2]string{"Space is the Place", "Sun Ra and his Arkestra"}), identity.NewCache())

	result := FindMatches(items, targets, true)
	if result.Total() != 1 || result.Items[0].ID != 1 {
		t.Fatalf("result = %+v, want item 1 only", result)
	}
	if result.ByArtist != 1 {
		t.Errorf("ByArtist = %d, want 1", result.ByArtist)
	}
}

func TestFindMatchesMBIDTierBeatsNameVariation(t *testing.T) {
	cache := identity.NewCache()
	cache.Put("Daft Punk", identity.Entry{MBID: "X1", CanonicalName: "Daft Punk", Source: identity.SourceExternal, Score: 90})
	cache.Put("daft punk", identity.Entry{MBID: "X1", CanonicalName: "Daft Punk", Source: identity.SourceExternal, Score: 90})

	items := []catalog.Item{
		{ID: 7, Artist: "Daft Punk", MBArtistID: "X1", Title: "One More Time"},
	}
	targets := BuildTargets(tracklist([2]string{"One More Time", "Daft Punk (Live)"}), cache)

	result := FindMatches(items, targets, true)
	if result.Total() != 1 || result.Items[0].ID != 7 {
		t.Fatalf("result = %+v, want item 7", result)
	}
	if result.ByMBID != 1 || result.ByArtist != 0 {
		t.Errorf("tier counts = mbid %d artist %d, want 1/0", result.ByMBID, result.ByArtist)
	}
}

func TestFindMatchesAlbumArtistFallback(t *testing.T) {
	items := []catalog.Item{
		{ID: 3, Artist: "Various Artists", AlbumArtist: "Madlib", Title: "Slim's Return"},
	}
	targets := BuildTargets(tracklist([2]string{"Slim's Return", "Madlib"}), identity.NewCache())

	result := FindMatches(items, targets, true)
	if result.Total() != 1 || result.ByAlbumArtist != 1 {
		t.Fatalf("result = %+v, want one album-artist match", result)
	}

	result = FindMatches(items, targets, false)
	if result.Total() != 0 {
		t.Fatalf("fallback disabled: result = %+v, want no match", result)
	}
}

func TestFindMatchesSkipsAlbumArtistIdenticalToArtist(t *testing.T) {
	items := []catalog.Item{
		{ID: 4, Artist: "Madlib", AlbumArtist: "madlib", Title: "Slim's Return", Genre: ""},
	}
	targets := BuildTargets(tracklist([2]string{"Slim's Return", "Madlib"}), identity.NewCache())

	result := FindMatches(items, targets, true)
	if result.Total() != 1 {
		t.Fatalf("result = %+v, want one match", result)
	}
	if result.ByArtist != 1 || result.ByAlbumArtist != 0 {
		t.Errorf("tier counts = artist %d albumartist %d, want 1/0", result.ByArtist, result.ByAlbumArtist)
	}
}

func TestFindMatchesDeduplicatesItems(t *testing.T) {
	items := []catalog.Item{
		{ID: 5, Artist: "Sun Ra", Title: "Lanquidity"},
		{ID: 5, Artist: "Sun Ra", Title: "Lanquidity"},
	}
	eps := tracklist(
		[2]string{"Lanquidity", "Sun Ra"},
		[2]string{"Lanquidity", "SUN RA"},
	)
	targets := BuildTargets(eps, identity.NewCache())

	result := FindMatches(items, targets, true)
	if result.Total() != 1 {
		t.Fatalf("result has %d items, want 1", result.Total())
	}
}

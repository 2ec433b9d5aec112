// Package match builds a target lookup set from scraped tracklists and
// scans the catalog once against it, then applies the genre tag to the
// items that matched.
package match

import (
	"showtag/internal/catalog"
	"showtag/internal/episodes"
	"showtag/internal/identity"
	"showtag/internal/textutil"
)

// Kind distinguishes how a target identifies its artist.
type Kind string

const (
	// KindMBID matches on the catalog item's stored MusicBrainz artist id.
	KindMBID Kind = "mbid"
	// KindName matches on the normalized artist name.
	KindName Kind = "name"
)

// TargetKey is the unit the engine indexes and probes against. Identity is
// either a MusicBrainz artist id or a normalized name depending on Kind;
// Title is always the normalized track title.
type TargetKey struct {
	Kind     Kind
	Identity string
	Title    string
}

// TargetSet supports O(1) membership tests during the catalog scan.
type TargetSet map[TargetKey]struct{}

// BuildTargets expands every scraped (artist, track) pair into target keys.
// Pairs with an empty artist or title after normalization are skipped. When
// the identity cache knows the artist, keys for the MusicBrainz id and the
// canonical name are added as well, so a catalog item tagged under either
// its id or a known alias still matches.
func BuildTargets(eps []episodes.Episode, cache *identity.Cache) TargetSet {
	targets := make(TargetSet)
	for _, ep := range eps {
		for _, track := range ep.Tracklist {
			artist := textutil.Normalize(track.Artist)
			title := textutil.Normalize(track.Track)
			if artist == "" || title == "" {
				continue
			}
			targets[TargetKey{Kind: KindName, Identity: artist, Title: title}] = struct{}{}

			entry, ok := cache.Get(track.Artist)
			if !ok {
				entry, ok = cache.Get(artist)
			}
			if !ok {
				continue
			}
			if entry.MBID != "" {
				targets[TargetKey{Kind: KindMBID, Identity: entry.MBID, Title: title}] = struct{}{}
			}
			if canonical := textutil.Normalize(entry.CanonicalName); canonical != "" {
				targets[TargetKey{Kind: KindName, Identity: canonical, Title: title}] = struct{}{}
			}
		}
	}
	return targets
}

// Result is the outcome of one catalog scan: the matched items in catalog
// order and how many items each tier accounted for.
type Result struct {
	Items         []catalog.Item
	ByMBID        int
	ByArtist      int
	ByAlbumArtist int
}

// Total returns the number of matched items.
func (r Result) Total() int {
	return len(r.Items)
}

// FindMatches runs a single linear scan of the catalog against the target
// set. For each item the tiers are tried in order: MusicBrainz id, artist
// name, album-artist name. The first matching tier wins; an item matched by
// id is not re-counted by name. The album-artist tier is skipped when the
// album artist normalizes identically to the artist, and entirely disabled
// when albumArtistFallback is false. No item id appears twice in the result
// even if it satisfies multiple target keys.
func FindMatches(items []catalog.Item, targets TargetSet, albumArtistFallback bool) Result {
	var result Result
	seen := make(map[int64]struct{}, len(items))
	for _, item := range items {
		if _, dup := seen[item.ID]; dup {
			continue
		}
		title := textutil.Normalize(item.Title)
		if title == "" {
			continue
		}

		if item.MBArtistID != "" {
			key := TargetKey{Kind: KindMBID, Identity: item.MBArtistID, Title: title}
			if _, ok := targets[key]; ok {
				seen[item.ID] = struct{}{}
				result.Items = append(result.Items, item)
				result.ByMBID++
				continue
			}
		}

		artist := textutil.Normalize(item.Artist)
		if artist != "" {
			key := TargetKey{Kind: KindName, Identity: artist, Title: title}
			if _, ok := targets[key]; ok {
				seen[item.ID] = struct{}{}
				result.Items = append(result.Items, item)
				result.ByArtist++
				continue
			}
		}

		if !albumArtistFallback {
			continue
		}
		albumArtist := textutil.Normalize(item.AlbumArtist)
		if albumArtist == "" || albumArtist == artist {
			continue
		}
		key := TargetKey{Kind: KindName, Identity: albumArtist, Title: title}
		if _, ok := targets[key]; ok {
			seen[item.ID] = struct{}{}
			result.Items = append(result.Items, item)
			result.ByAlbumArtist++
		}
	}
	return result
}

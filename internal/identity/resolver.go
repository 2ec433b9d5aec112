package identity

import (
	"context"
	"errors"
	"log/slog"

	"showtag/internal/logging"
	"showtag/internal/textutil"
)

// Tier names one precedence level in the resolution order. Tiers are run
// statistics only; they are never persisted with an entry.
type Tier string

const (
	TierCatalogRaw         Tier = "catalog_raw"
	TierCatalogNormalized  Tier = "catalog_normalized"
	TierCacheRaw           Tier = "cache_raw"
	TierCacheNormalized    Tier = "cache_normalized"
	TierExternalRaw        Tier = "external_raw"
	TierExternalNormalized Tier = "external_normalized"
	TierMiss               Tier = "miss"
)

// Candidate is an external search result considered for resolution.
type Candidate struct {
	MBID     string
	Name     string
	SortName string
	Score    int
}

// Searcher performs a single external search per call. A nil result with a
// nil error means the service answered with no candidates.
type Searcher interface {
	SearchArtist(ctx context.Context, name string) (*Candidate, error)
}

// Resolution is the tagged outcome of resolving one raw name: which tier
// answered, and with what entry. A Tier of TierMiss carries no entry.
type Resolution struct {
	Tier  Tier
	Entry Entry
}

// Found reports whether the resolution produced a usable identity.
func (r Resolution) Found() bool {
	return r.Tier != TierMiss
}

// UncertainMatch is an external candidate that scored below the confidence
// threshold. It is surfaced for manual review, never cached and never
// treated as resolved.
type UncertainMatch struct {
	Raw       string `json:"raw"`
	Suggested string `json:"suggested"`
	MBID      string `json:"mbid,omitempty"`
	Score     int    `json:"score"`
}

// Stats counts resolutions per tier across a run.
type Stats struct {
	CatalogRaw         int
	CatalogNormalized  int
	CacheRaw           int
	CacheNormalized    int
	ExternalRaw        int
	ExternalNormalized int
	Uncertain          int
	Unresolved         int
}

// Resolved returns the total count of successful resolutions.
func (s Stats) Resolved() int {
	return s.CatalogRaw + s.CatalogNormalized + s.CacheRaw + s.CacheNormalized +
		s.ExternalRaw + s.ExternalNormalized
}

// ResolverOptions configures a Resolver.
type ResolverOptions struct {
	// AllowExternal enables the MusicBrainz tiers.
	AllowExternal bool
	// MinConfidence is the 0-100 score an external candidate needs to be
	// trusted and cached.
	MinConfidence int
	// CheckpointEvery saves the cache after this many confident external
	// resolutions, so an interrupted run loses at most one batch. Zero
	// disables checkpointing.
	CheckpointEvery int
	// CheckpointPath is where checkpoints are written.
	CheckpointPath string
}

// Resolver walks the resolution tiers for raw artist names, maintaining the
// cache and collecting run statistics and uncertain candidates as it goes.
type Resolver struct {
	index    *Index
	cache    *Cache
	searcher Searcher
	logger   *slog.Logger
	opts     ResolverOptions

	stats           Stats
	uncertain       []UncertainMatch
	sinceCheckpoint int
}

// NewResolver constructs a resolver over the given catalog index and cache.
// The searcher may be nil when external resolution is disabled.
func NewResolver(index *Index, cache *Cache, searcher Searcher, logger *slog.Logger, opts ResolverOptions) *Resolver {
	return &Resolver{
		index:    index,
		cache:    cache,
		searcher: searcher,
		logger:   logging.NewComponentLogger(logger, "resolver"),
		opts:     opts,
	}
}

// Resolve runs the tier stack for one raw artist name. Precedence: catalog
// raw, catalog normalized, cache raw, cache normalized, then (when external
// resolution is enabled) MusicBrainz on the raw string and finally on the
// normalized string. External failures degrade to a miss; only context
// cancellation aborts.
func (r *Resolver) Resolve(ctx context.Context, raw string) (Resolution, error) {
	normalized := textutil.Normalize(raw)

	if entry, ok := r.index.Lookup(raw); ok {
		r.stats.CatalogRaw++
		return Resolution{Tier: TierCatalogRaw, Entry: entry}, nil
	}
	if normalized != "" {
		if entry, ok := r.index.Lookup(normalized); ok {
			r.stats.CatalogNormalized++
			return Resolution{Tier: TierCatalogNormalized, Entry: entry}, nil
		}
	}
	if entry, ok := r.cache.Get(raw); ok {
		r.stats.CacheRaw++
		return Resolution{Tier: TierCacheRaw, Entry: entry}, nil
	}
	if normalized != "" {
		if entry, ok := r.cache.Get(normalized); ok {
			r.stats.CacheNormalized++
			return Resolution{Tier: TierCacheNormalized, Entry: entry}, nil
		}
	}

	if !r.opts.AllowExternal || r.searcher == nil {
		r.stats.Unresolved++
		return Resolution{Tier: TierMiss}, nil
	}

	var best *UncertainMatch

	resolution, uncertain, err := r.resolveExternal(ctx, raw, raw, TierExternalRaw)
	if err != nil {
		return Resolution{Tier: TierMiss}, err
	}
	if resolution.Found() {
		return resolution, nil
	}
	best = betterUncertain(best, uncertain)

	if normalized != "" && normalized != raw {
		resolution, uncertain, err = r.resolveExternal(ctx, raw, normalized, TierExternalNormalized)
		if err != nil {
			return Resolution{Tier: TierMiss}, err
		}
		if resolution.Found() {
			return resolution, nil
		}
		best = betterUncertain(best, uncertain)
	}

	if best != nil {
		r.uncertain = append(r.uncertain, *best)
		r.stats.Uncertain++
	} else {
		r.stats.Unresolved++
	}
	return Resolution{Tier: TierMiss}, nil
}

// resolveExternal issues one external search with the given query. A
// confident candidate is cached under both forms of the raw name; a
// below-threshold candidate is returned for review collection.
func (r *Resolver) resolveExternal(ctx context.Context, raw, query string, tier Tier) (Resolution, *UncertainMatch, error) {
	candidate, err := r.searcher.SearchArtist(ctx, query)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return Resolution{Tier: TierMiss}, nil, err
		}
		r.logger.Warn("external lookup failed",
			logging.String("artist", query),
			logging.Error(err))
		return Resolution{Tier: TierMiss}, nil, nil
	}
	if candidate == nil {
		return Resolution{Tier: TierMiss}, nil, nil
	}

	if candidate.Score < r.opts.MinConfidence {
		r.logger.Debug("candidate below confidence threshold",
			logging.String("artist", raw),
			logging.String("candidate", candidate.Name),
			logging.Int("score", candidate.Score),
			logging.Int("min_confidence", r.opts.MinConfidence))
		return Resolution{Tier: TierMiss}, &UncertainMatch{
			Raw:       raw,
			Suggested: candidate.Name,
			MBID:      candidate.MBID,
			Score:     candidate.Score,
		}, nil
	}

	entry := Entry{
		MBID:          candidate.MBID,
		CanonicalName: candidate.Name,
		SortName:      candidate.SortName,
		Source:        SourceExternal,
		Score:         candidate.Score,
	}
	r.cache.PutResolved(raw, entry)
	r.maybeCheckpoint()

	if tier == TierExternalRaw {
		r.stats.ExternalRaw++
	} else {
		r.stats.ExternalNormalized++
	}
	r.logger.Debug("resolved externally",
		logging.String("artist", raw),
		logging.String("canonical", entry.CanonicalName),
		logging.Int("score", entry.Score))
	return Resolution{Tier: tier, Entry: entry}, nil, nil
}

func (r *Resolver) maybeCheckpoint() {
	if r.opts.CheckpointEvery <= 0 || r.opts.CheckpointPath == "" {
		return
	}
	r.sinceCheckpoint++
	if r.sinceCheckpoint < r.opts.CheckpointEvery {
		return
	}
	r.sinceCheckpoint = 0
	if err := r.cache.Save(r.opts.CheckpointPath); err != nil {
		r.logger.Warn("cache checkpoint failed", logging.Error(err))
		return
	}
	r.logger.Debug("cache checkpoint written",
		logging.Int("entries", r.cache.Len()),
		logging.String("path", r.opts.CheckpointPath))
}

// Stats returns the per-tier resolution counts accumulated so far.
func (r *Resolver) Stats() Stats {
	return r.stats
}

// Uncertain returns the below-threshold candidates collected for review.
func (r *Resolver) Uncertain() []UncertainMatch {
	return r.uncertain
}

func betterUncertain(current, candidate *UncertainMatch) *UncertainMatch {
	if candidate == nil {
		return current
	}
	if current == nil || candidate.Score > current.Score {
		return candidate
	}
	return current
}

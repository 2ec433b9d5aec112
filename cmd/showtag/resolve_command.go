package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"showtag/internal/catalog"
	"showtag/internal/episodes"
	"showtag/internal/identity"
	"showtag/internal/musicbrainz"
	"showtag/internal/review"
)

// mbSearcher adapts the MusicBrainz client to the resolver's Searcher
// interface.
type mbSearcher struct {
	client *musicbrainz.Client
}

func (s mbSearcher) SearchArtist(ctx context.Context, name string) (*identity.Candidate, error) {
	artist, err := s.client.SearchArtist(ctx, name)
	if err != nil || artist == nil {
		return nil, err
	}
	return &identity.Candidate{
		MBID:     artist.ID,
		Name:     artist.Name,
		SortName: artist.SortName,
		Score:    artist.Score,
	}, nil
}

func newResolveCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var noExternal bool
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve scraped artist names into the identity cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			return ctx.withLock(func() error {
				eps, err := episodes.Load(cfg.EpisodesFile())
				if err != nil {
					return fmt.Errorf("load episodes (run `showtag scrape` first): %w", err)
				}
				artists := episodes.ExtractArtists(eps)
				if limit > 0 && len(artists) > limit {
					artists = artists[:limit]
				}

				store, err := catalog.Open(cfg.Paths.LibraryDB)
				if err != nil {
					return err
				}
				defer store.Close()

				runCtx, cancel := signalContext(cmd.Context())
				defer cancel()

				items, err := store.Items(runCtx)
				if err != nil {
					return err
				}
				index := identity.BuildIndex(items)

				cache, err := identity.LoadCache(cfg.CacheFile())
				if err != nil {
					return err
				}

				var searcher identity.Searcher
				if !noExternal {
					client, err := musicbrainz.New(cfg.MusicBrainz.BaseURL, cfg.MusicBrainz.UserAgent,
						musicbrainz.WithRateLimit(time.Duration(cfg.MusicBrainz.RateLimitMS)*time.Millisecond),
						musicbrainz.WithTimeout(time.Duration(cfg.MusicBrainz.TimeoutSeconds)*time.Second))
					if err != nil {
						return err
					}
					searcher = mbSearcher{client: client}
				}

				opts := identity.ResolverOptions{
					AllowExternal: !noExternal,
					MinConfidence: cfg.MusicBrainz.MinConfidence,
				}
				if !dryRun {
					opts.CheckpointEvery = cfg.MusicBrainz.CheckpointEvery
					opts.CheckpointPath = cfg.CacheFile()
				}
				resolver := identity.NewResolver(index, cache, searcher, logger, opts)

				bar := newProgressBar(len(artists), "Resolving artists")
				for _, artist := range artists {
					if _, err := resolver.Resolve(runCtx, artist.Artist); err != nil {
						finish(bar)
						return err
					}
					advance(bar)
				}
				finish(bar)

				if !dryRun {
					if err := cache.Save(cfg.CacheFile()); err != nil {
						return fmt.Errorf("save cache: %w", err)
					}
				}

				out := cmd.OutOrStdout()
				if reviewPath, err := review.Write(cfg.Paths.ReviewDir, resolver.Uncertain()); err != nil {
					return err
				} else if reviewPath != "" {
					fmt.Fprintf(out, "Uncertain matches written to %s\n", reviewPath)
				}

				stats := resolver.Stats()
				fmt.Fprintln(out, renderCounts("Tier", "Resolved", []countRow{
					{"Catalog (raw)", stats.CatalogRaw},
					{"Catalog (normalized)", stats.CatalogNormalized},
					{"Cache (raw)", stats.CacheRaw},
					{"Cache (normalized)", stats.CacheNormalized},
					{"MusicBrainz (raw)", stats.ExternalRaw},
					{"MusicBrainz (normalized)", stats.ExternalNormalized},
					{"Uncertain", stats.Uncertain},
					{"Unresolved", stats.Unresolved},
				}))
				fmt.Fprintf(out, "Resolved %d of %d artists; cache now holds %d entries.\n",
					stats.Resolved(), len(artists), cache.Len())
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of artists to resolve (0 = no limit)")
	cmd.Flags().BoolVar(&noExternal, "no-external", false, "Skip MusicBrainz lookups; use only the catalog and cache")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would resolve without writing the cache")
	return cmd
}

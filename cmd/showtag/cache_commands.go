package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"showtag/internal/identity"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the artist identity cache",
	}

	cacheCmd.AddCommand(newCacheListCommand(ctx))
	cacheCmd.AddCommand(newCacheStatsCommand(ctx))

	return cacheCmd
}

func newCacheListCommand(ctx *commandContext) *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cached artist identities",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cache, err := identity.LoadCache(cfg.CacheFile())
			if err != nil {
				return err
			}

			var rows [][]string
			for _, key := range cache.Keys() {
				entry, _ := cache.Get(key)
				if source != "" && string(entry.Source) != source {
					continue
				}
				score := ""
				if entry.Source == identity.SourceExternal {
					score = strconv.Itoa(entry.Score)
				}
				rows = append(rows, []string{key, entry.CanonicalName, string(entry.Source), entry.MBID, score})
			}

			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, "Cache is empty.")
				return nil
			}
			fmt.Fprintln(out, renderList(
				[]string{"Key", "Canonical name", "Source", "MBID", "Score"},
				rows,
				4,
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "Only show entries from this source (catalog or musicbrainz)")
	return cmd
}

func newCacheStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize the artist identity cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cache, err := identity.LoadCache(cfg.CacheFile())
			if err != nil {
				return err
			}

			var catalogCount, externalCount, otherCount, withMBID int
			for _, key := range cache.Keys() {
				entry, _ := cache.Get(key)
				switch entry.Source {
				case identity.SourceCatalog:
					catalogCount++
				case identity.SourceExternal:
					externalCount++
				default:
					otherCount++
				}
				if entry.MBID != "" {
					withMBID++
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderCounts("Metric", "Count", []countRow{
				{"Total entries", cache.Len()},
				{"From catalog", catalogCount},
				{"From MusicBrainz", externalCount},
				{"Other", otherCount},
				{"With MBID", withMBID},
			}))
			return nil
		},
	}
}

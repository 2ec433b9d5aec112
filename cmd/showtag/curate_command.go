package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"showtag/internal/identity"
)

func newCurateCommand(ctx *commandContext) *cobra.Command {
	var minSimilarity int

	cmd := &cobra.Command{
		Use:   "curate",
		Short: "Re-score cached MusicBrainz entries and quarantine weak ones",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			threshold := cfg.Curator.MinSimilarity
			if cmd.Flags().Changed("min-similarity") {
				threshold = minSimilarity
			}

			return ctx.withLock(func() error {
				cache, err := identity.LoadCache(cfg.CacheFile())
				if err != nil {
					return err
				}
				if cache.Len() == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Cache is empty; nothing to curate.")
					return nil
				}

				// Snapshot before the destructive rewrite.
				if err := cache.SaveBackup(cfg.CacheBackupFile()); err != nil {
					return err
				}

				result := identity.Curate(cache, threshold)
				if err := result.Kept.Save(cfg.CacheFile()); err != nil {
					return fmt.Errorf("save curated cache: %w", err)
				}
				if len(result.Removed) > 0 {
					if err := writeRemoved(cfg.RemovedEntriesFile(), result.Removed); err != nil {
						return err
					}
				}

				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderCounts("Outcome", "Entries", []countRow{
					{"Catalog entries kept", result.CatalogKept},
					{"MusicBrainz entries checked", result.Checked},
					{"Removed", len(result.Removed)},
					{"Cache size after", result.Kept.Len()},
				}))
				fmt.Fprintf(out, "Backup written to %s\n", cfg.CacheBackupFile())
				if len(result.Removed) > 0 {
					fmt.Fprintf(out, "Removed entries written to %s\n", cfg.RemovedEntriesFile())
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&minSimilarity, "min-similarity", 0, "Similarity threshold override (0-100)")
	return cmd
}

func writeRemoved(path string, removed map[string]identity.RemovedEntry) error {
	data, err := json.MarshalIndent(removed, "", "  ")
	if err != nil {
		return fmt.Errorf("encode removed entries: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write removed entries: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("finalize removed entries: %w", err)
	}
	return nil
}

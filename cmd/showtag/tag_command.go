package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"showtag/internal/catalog"
	"showtag/internal/episodes"
	"showtag/internal/identity"
	"showtag/internal/match"
)

func newTagCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Tag catalog items whose tracks were played on the show",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			eps, err := episodes.Load(cfg.EpisodesFile())
			if err != nil {
				return fmt.Errorf("load episodes (run `showtag scrape` first): %w", err)
			}
			cache, err := identity.LoadCache(cfg.CacheFile())
			if err != nil {
				return err
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

			targets := match.BuildTargets(eps, cache)
			result := match.FindMatches(items, targets, cfg.Tagging.AlbumArtistFallback)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderCounts("Match tier", "Items", []countRow{
				{"MusicBrainz artist id", result.ByMBID},
				{"Artist name", result.ByArtist},
				{"Album artist name", result.ByAlbumArtist},
			}))

			tagger := match.NewTagger(store, cfg.Tagging.GenreTag, dryRun, logger)
			tagResult, err := tagger.Apply(runCtx, result.Items)
			if err != nil {
				return err
			}

			if dryRun {
				if len(tagResult.Preview) > 0 {
					const previewRows = 20
					rows := make([][]string, 0, previewRows)
					for i, item := range tagResult.Preview {
						if i == previewRows {
							rows = append(rows, []string{"...", fmt.Sprintf("(%d more)", len(tagResult.Preview)-previewRows), ""})
							break
						}
						rows = append(rows, []string{item.Artist, item.Title, item.NewGenre})
					}
					fmt.Fprintln(out, renderList(
						[]string{"Artist", "Title", "New genre"},
						rows,
					))
				}
				if err := writeChangeRecord(out, cfg.PreviewFile(), tagResult.Preview); err != nil {
					return err
				}
				fmt.Fprintf(out, "Dry run: %d item(s) would be tagged, %d already tagged.\n",
					tagResult.Tagged, tagResult.Skipped)
				return nil
			}

			// The same record a dry run produces, kept as the audit trail of
			// what this run changed.
			if err := writeChangeRecord(out, cfg.PreviewFile(), tagResult.Preview); err != nil {
				return err
			}
			fmt.Fprintf(out, "Tagged %d item(s) with %q; %d already tagged",
				tagResult.Tagged, cfg.Tagging.GenreTag, tagResult.Skipped)
			if tagResult.Failed > 0 {
				fmt.Fprintf(out, "; %d failed (see log)", tagResult.Failed)
			}
			fmt.Fprintln(out, ".")
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview what would be tagged without writing the library")
	return cmd
}

func writeChangeRecord(out io.Writer, path string, preview []match.PreviewItem) error {
	if len(preview) == 0 {
		return nil
	}
	if err := writePreview(path, preview); err != nil {
		return err
	}
	fmt.Fprintf(out, "Change record written to %s\n", path)
	return nil
}

func writePreview(path string, preview []match.PreviewItem) error {
	data, err := json.MarshalIndent(preview, "", "  ")
	if err != nil {
		return fmt.Errorf("encode preview: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write preview: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("finalize preview: %w", err)
	}
	return nil
}

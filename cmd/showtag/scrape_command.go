package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"showtag/internal/episodes"
	"showtag/internal/scrape"
)

func newScrapeCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var full bool

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape new episodes from the radio-show website",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			scraper, err := scrape.New(scrape.Config{
				BaseURL:      cfg.Scrape.BaseURL,
				UserAgent:    cfg.Scrape.UserAgent,
				RequestDelay: time.Duration(cfg.Scrape.RequestDelayMS) * time.Millisecond,
				Timeout:      time.Duration(cfg.Scrape.TimeoutSeconds) * time.Second,
			}, logger)
			if err != nil {
				return err
			}

			runCtx, cancel := signalContext(cmd.Context())
			defer cancel()

			out := cmd.OutOrStdout()
			result, err := scraper.Run(runCtx, scrape.RunOptions{
				PreviousLatest: episodes.ReadLatest(cfg.LatestEpisodeFile()),
				Full:           full,
				Limit:          limit,
				Progress:       progressFunc("Scraping episodes"),
			})
			if err != nil {
				return err
			}
			if result.UpToDate {
				fmt.Fprintln(out, "No new episodes.")
				return nil
			}

			existing, err := episodes.LoadOrEmpty(cfg.EpisodesFile())
			if err != nil {
				return err
			}
			if err := episodes.Save(cfg.EpisodesFile(), existing, result.Episodes); err != nil {
				return err
			}
			if err := episodes.WriteLatest(cfg.LatestEpisodeFile(), result.LatestURL); err != nil {
				return err
			}

			fmt.Fprintf(out, "Scraped %d episode(s); latest is %s\n", len(result.Episodes), result.LatestURL)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of episode pages to scrape (0 = no limit)")
	cmd.Flags().BoolVar(&full, "full", false, "Ignore the checkpoint and rescrape every episode")
	return cmd
}

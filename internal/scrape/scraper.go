package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"time"

	"golang.org/x/net/html"

	"showtag/internal/episodes"
	"showtag/internal/logging"
)

// Config carries the scraper's tunables.
type Config struct {
	BaseURL      string
	UserAgent    string
	RequestDelay time.Duration
	Timeout      time.Duration
}

// Scraper walks the site and produces episode records.
type Scraper struct {
	base    *url.URL
	fetcher *fetcher
	delay   time.Duration
	logger  *slog.Logger
}

// New returns a Scraper for the configured site.
func New(cfg Config, logger *slog.Logger) (*Scraper, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Scraper{
		base: base,
		fetcher: &fetcher{
			httpClient: &http.Client{Timeout: cfg.Timeout},
			userAgent:  cfg.UserAgent,
			logger:     logger,
		},
		delay:  cfg.RequestDelay,
		logger: logger,
	}, nil
}

// RunOptions controls one scrape pass.
type RunOptions struct {
	// PreviousLatest is the checkpointed URL of the newest episode seen by
	// an earlier run. Empty means scrape everything.
	PreviousLatest string
	// Full ignores the checkpoint and rescrapes every episode.
	Full bool
	// Limit caps the number of episode pages fetched. Zero means no cap.
	Limit int
	// Progress, when set, is called after each scraped episode page.
	Progress func(done, total int)
}

// RunResult reports what one scrape pass did.
type RunResult struct {
	// LatestURL is the newest episode currently on the site.
	LatestURL string
	// Episodes holds the freshly scraped records, newest first.
	Episodes []episodes.Episode
	// UpToDate is true when the checkpoint already points at the site's
	// newest episode and nothing was scraped.
	UpToDate bool
}

// Run fetches the homepage, discovers episode URLs across the archive
// range pages, filters out episodes older than the checkpoint, and scrapes
// the remainder.
func (s *Scraper) Run(ctx context.Context, opts RunOptions) (RunResult, error) {
	var result RunResult

	home, err := s.fetcher.fetch(ctx, s.base.String())
	if err != nil {
		return result, fmt.Errorf("fetch homepage: %w", err)
	}
	homeLinks := episodeLinks(home, s.base)
	if len(homeLinks) == 0 {
		return result, fmt.Errorf("no episode links found on %s", s.base)
	}
	result.LatestURL = homeLinks[0]

	if !opts.Full && opts.PreviousLatest == result.LatestURL {
		s.logger.Info("no new episodes", logging.String("latest", result.LatestURL))
		result.UpToDate = true
		return result, nil
	}

	all, err := s.collectURLs(ctx, home, homeLinks)
	if err != nil {
		return result, err
	}

	previous := opts.PreviousLatest
	if opts.Full {
		previous = ""
	}
	toScrape := filterNew(all, previous)
	if opts.Limit > 0 && len(toScrape) > opts.Limit {
		toScrape = toScrape[:opts.Limit]
	}
	s.logger.Info("scraping episodes",
		logging.Int("discovered", len(all)),
		logging.Int("to_scrape", len(toScrape)))

	for i, epURL := range toScrape {
		if i > 0 {
			if err := sleepWithContext(ctx, s.delay); err != nil {
				return result, err
			}
		}
		doc, err := s.fetcher.fetch(ctx, epURL)
		if err != nil {
			s.logger.Warn("skipping episode page", logging.String("url", epURL), logging.Error(err))
			continue
		}
		ep := parseEpisode(epURL, doc)
		result.Episodes = append(result.Episodes, ep)
		s.logger.Debug("scraped episode",
			logging.String("url", epURL),
			logging.Int("tracks", len(ep.Tracklist)))
		if opts.Progress != nil {
			opts.Progress(i+1, len(toScrape))
		}
	}
	return result, nil
}

// collectURLs merges episode links from the homepage and every archive
// range page into one deduplicated set.
func (s *Scraper) collectURLs(ctx context.Context, home *html.Node, homeLinks []string) ([]string, error) {
	seen := make(map[string]struct{}, len(homeLinks))
	var all []string
	add := func(urls []string) {
		for _, u := range urls {
			if _, dup := seen[u]; dup {
				continue
			}
			seen[u] = struct{}{}
			all = append(all, u)
		}
	}
	add(homeLinks)

	for _, rangeURL := range rangePageURLs(home, s.base) {
		if err := sleepWithContext(ctx, s.delay); err != nil {
			return nil, err
		}
		doc, err := s.fetcher.fetch(ctx, rangeURL)
		if err != nil {
			s.logger.Warn("skipping range page", logging.String("url", rangeURL), logging.Error(err))
			continue
		}
		add(episodeLinks(doc, s.base))
	}
	return all, nil
}

func filterNew(all []string, previousLatest string) []string {
	sorted := append([]string(nil), all...)
	sort.Slice(sorted, func(i, j int) bool {
		ni, _ := episodes.Number(sorted[i])
		nj, _ := episodes.Number(sorted[j])
		if ni != nj {
			return ni > nj
		}
		return sorted[i] < sorted[j]
	})

	if previousLatest == "" {
		return sorted
	}
	previousNum, ok := episodes.Number(previousLatest)
	if !ok {
		return sorted
	}

	var fresh []string
	for _, u := range sorted {
		if num, ok := episodes.Number(u); ok && num > previousNum {
			fresh = append(fresh, u)
		}
	}
	return fresh
}

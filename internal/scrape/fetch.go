// Package scrape collects episode pages from the radio-show website and
// turns them into tracklist records.
package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/net/html"

	"showtag/internal/logging"
)

const (
	fetchAttempts  = 3
	initialBackoff = time.Second
)

// fetcher retrieves pages with retries. The site occasionally serves
// transient errors under load, so every failure short of a context cancel
// is retried with exponential backoff.
type fetcher struct {
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
}

func (f *fetcher) fetch(ctx context.Context, url string) (*html.Node, error) {
	var lastErr error
	for attempt := 0; attempt < fetchAttempts; attempt++ {
		if attempt > 0 {
			backoff := initialBackoff << (attempt - 1)
			f.logger.Debug("retrying fetch",
				logging.String("url", url),
				logging.Int("attempt", attempt+1),
				logging.Duration("backoff", backoff))
			if err := sleepWithContext(ctx, backoff); err != nil {
				return nil, err
			}
		}

		doc, err := f.fetchOnce(ctx, url)
		if err == nil {
			return doc, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		lastErr = err
		f.logger.Warn("fetch attempt failed",
			logging.String("url", url),
			logging.Int("attempt", attempt+1),
			logging.Error(err))
	}
	return nil, fmt.Errorf("fetch %s: %w", url, lastErr)
}

func (f *fetcher) fetchOnce(ctx context.Context, url string) (*html.Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	return doc, nil
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

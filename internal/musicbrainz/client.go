package musicbrainz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	maxAttempts    = 3
	initialBackoff = time.Second
	maxBackoff     = 8 * time.Second
)

// ErrUnavailable indicates the service kept failing after every retry. The
// caller should treat the lookup as "no result" rather than aborting.
var ErrUnavailable = errors.New("musicbrainz unavailable")

// errRetryable classifies failures worth backing off and retrying.
var errRetryable = errors.New("musicbrainz temporary failure")

// Artist is a single search candidate.
type Artist struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	SortName string `json:"sort-name"`
	Score    int    `json:"score"`
}

type searchResponse struct {
	Artists []Artist `json:"artists"`
	Count   int      `json:"count"`
}

// Client provides access to the MusicBrainz artist search API.
type Client struct {
	baseURL     string
	userAgent   string
	httpClient  *http.Client
	minInterval time.Duration
	lastCall    time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithRateLimit sets the minimum interval between consecutive requests.
func WithRateLimit(interval time.Duration) Option {
	return func(c *Client) {
		c.minInterval = interval
	}
}

// WithTimeout sets the per-request HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// New creates a MusicBrainz client. The user agent is required; MusicBrainz
// rejects anonymous clients.
func New(baseURL, userAgent string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("musicbrainz base url required")
	}
	userAgent = strings.TrimSpace(userAgent)
	if userAgent == "" {
		return nil, errors.New("musicbrainz user agent required")
	}
	client := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		userAgent:   userAgent,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		minInterval: time.Second,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// SearchArtist searches for the best artist candidate for the given name.
// Returns nil with a nil error when the service answers with no candidates.
// Rate-limit and temporary failures are retried with exponential backoff;
// exhausting the retries yields ErrUnavailable.
func (c *Client) SearchArtist(ctx context.Context, name string) (*Artist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("artist name must not be empty")
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			backoff := initialBackoff * time.Duration(1<<uint(attempt-1))
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
			if err := sleepWithContext(ctx, backoff); err != nil {
				return nil, err
			}
		}
		if err := c.waitRateWindow(ctx); err != nil {
			return nil, err
		}

		artist, err := c.search(ctx, name)
		c.lastCall = time.Now()
		if err == nil {
			return artist, nil
		}
		if !errors.Is(err, errRetryable) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
}

func (c *Client) search(ctx context.Context, name string) (*Artist, error) {
	endpoint, err := url.Parse(c.baseURL + "/artist")
	if err != nil {
		return nil, fmt.Errorf("parse musicbrainz url: %w", err)
	}
	params := url.Values{}
	params.Set("query", `artist:"`+escapeLucene(name)+`"`)
	params.Set("fmt", "json")
	params.Set("limit", "1")
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", errRetryable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests, http.StatusServiceUnavailable,
		http.StatusBadGateway, http.StatusGatewayTimeout:
		return nil, fmt.Errorf("%w: status %d", errRetryable, resp.StatusCode)
	default:
		return nil, fmt.Errorf("musicbrainz search returned %d", resp.StatusCode)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode musicbrainz response: %w", err)
	}
	if len(payload.Artists) == 0 {
		return nil, nil
	}
	return &payload.Artists[0], nil
}

func (c *Client) waitRateWindow(ctx context.Context) error {
	if c.lastCall.IsZero() || c.minInterval <= 0 {
		return nil
	}
	elapsed := time.Since(c.lastCall)
	if elapsed >= c.minInterval {
		return nil
	}
	return sleepWithContext(ctx, c.minInterval-elapsed)
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

// escapeLucene escapes characters with meaning in Lucene query syntax.
func escapeLucene(s string) string {
	var builder strings.Builder
	builder.Grow(len(s))
	for _, r := range s {
		switch r {
		case '"', '\\':
			builder.WriteRune('\\')
		}
		builder.WriteRune(r)
	}
	return builder.String()
}

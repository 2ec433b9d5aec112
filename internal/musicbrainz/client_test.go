package musicbrainz_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"showtag/internal/musicbrainz"
)

func TestNewRequiresUserAgent(t *testing.T) {
	if _, err := musicbrainz.New("https://example.com", ""); err == nil {
		t.Fatal("expected error when user agent missing")
	}
}

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := musicbrainz.New("", "test/1.0"); err == nil {
		t.Fatal("expected error when base url missing")
	}
}

func TestSearchArtistSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "test/1.0" {
			t.Errorf("User-Agent = %q, want test/1.0", got)
		}
		if got := r.URL.Query().Get("fmt"); got != "json" {
			t.Errorf("fmt = %q, want json", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count":1,"artists":[{"id":"mbid-1","name":"Sun Ra","sort-name":"Sun Ra","score":100}]}`))
	}))
	t.Cleanup(server.Close)

	client, err := musicbrainz.New(server.URL, "test/1.0", musicbrainz.WithRateLimit(0))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	artist, err := client.SearchArtist(context.Background(), "Sun Ra")
	if err != nil {
		t.Fatalf("SearchArtist returned error: %v", err)
	}
	if artist == nil {
		t.Fatal("expected a candidate")
	}
	if artist.ID != "mbid-1" || artist.Name != "Sun Ra" || artist.Score != 100 {
		t.Errorf("unexpected artist: %+v", artist)
	}
}

func TestSearchArtistNoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"count":0,"artists":[]}`))
	}))
	t.Cleanup(server.Close)

	client, err := musicbrainz.New(server.URL, "test/1.0", musicbrainz.WithRateLimit(0))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	artist, err := client.SearchArtist(context.Background(), "nobody at all")
	if err != nil {
		t.Fatalf("SearchArtist returned error: %v", err)
	}
	if artist != nil {
		t.Errorf("expected nil candidate, got %+v", artist)
	}
}

func TestSearchArtistRetriesRateLimit(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"count":1,"artists":[{"id":"mbid-2","name":"Madlib","score":98}]}`))
	}))
	t.Cleanup(server.Close)

	client, err := musicbrainz.New(server.URL, "test/1.0", musicbrainz.WithRateLimit(0))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	artist, err := client.SearchArtist(context.Background(), "Madlib")
	if err != nil {
		t.Fatalf("SearchArtist returned error: %v", err)
	}
	if artist == nil || artist.ID != "mbid-2" {
		t.Fatalf("unexpected artist after retry: %+v", artist)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestSearchArtistGivesUpAfterRetries(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	t.Cleanup(server.Close)

	client, err := musicbrainz.New(server.URL, "test/1.0", musicbrainz.WithRateLimit(0))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	_, err = client.SearchArtist(context.Background(), "anyone")
	if !errors.Is(err, musicbrainz.ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3 attempts", calls)
	}
}

func TestSearchArtistNonRetryableStatus(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
	}))
	t.Cleanup(server.Close)

	client, err := musicbrainz.New(server.URL, "test/1.0", musicbrainz.WithRateLimit(0))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if _, err := client.SearchArtist(context.Background(), "anyone"); err == nil {
		t.Fatal("expected error for 400 response")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want no retry on client error", calls)
	}
}

func TestSearchArtistEmptyName(t *testing.T) {
	client, err := musicbrainz.New("https://example.com", "test/1.0")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.SearchArtist(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty name")
	}
}

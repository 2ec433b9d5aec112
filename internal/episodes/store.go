package episodes

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Track is one tracklist line: a title and the freeform artist credit as
// typed on the episode page.
type Track struct {
	Track  string `json:"track"`
	Artist string `json:"artist"`
}

// Episode is one scraped radio-show episode.
type Episode struct {
	URL       string  `json:"url"`
	Thumbnail string  `json:"thumbnail,omitempty"`
	AudioURL  string  `json:"audio_url,omitempty"`
	AudioType string  `json:"audio_type,omitempty"`
	Tracklist []Track `json:"tracklist"`
}

var episodeNumberPattern = regexp.MustCompile(`episode-(\d+)`)

// Number extracts the episode number from a URL like ".../episode-123".
func Number(url string) (int, bool) {
	match := episodeNumberPattern.FindStringSubmatch(url)
	if match == nil {
		return 0, false
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Load reads the episodes document. A missing file is an error; consumers
// that tolerate a fresh start should use LoadOrEmpty.
func Load(path string) ([]Episode, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read episodes file: %w", err)
	}
	var eps []Episode
	if err := json.Unmarshal(data, &eps); err != nil {
		return nil, fmt.Errorf("parse episodes file %q: %w", path, err)
	}
	return eps, nil
}

// LoadOrEmpty reads the episodes document, treating a missing file as an
// empty list.
func LoadOrEmpty(path string) ([]Episode, error) {
	eps, err := Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return eps, nil
}

// Save merges fresh episodes into existing ones (fresh wins on URL
// collision), orders the result newest-first by episode number, and writes
// the document atomically.
func Save(path string, existing, fresh []Episode) error {
	merged := make(map[string]Episode, len(existing)+len(fresh))
	for _, ep := range existing {
		merged[ep.URL] = ep
	}
	for _, ep := range fresh {
		merged[ep.URL] = ep
	}

	final := make([]Episode, 0, len(merged))
	for _, ep := range merged {
		final = append(final, ep)
	}
	sort.Slice(final, func(i, j int) bool {
		ni, _ := Number(final[i].URL)
		nj, _ := Number(final[j].URL)
		if ni != nj {
			return ni > nj
		}
		return final[i].URL < final[j].URL
	})

	data, err := json.MarshalIndent(final, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal episodes: %w", err)
	}
	return writeAtomic(path, data)
}

// ArtistCount pairs an artist credit with the number of tracks it appears on.
type ArtistCount struct {
	Artist string
	Count  int
}

// ExtractArtists returns the unique artist credits across all tracklists,
// most frequently played first (ties broken alphabetically for determinism).
func ExtractArtists(eps []Episode) []ArtistCount {
	counts := make(map[string]int)
	for _, ep := range eps {
		for _, track := range ep.Tracklist {
			artist := strings.TrimSpace(track.Artist)
			if artist == "" {
				continue
			}
			counts[artist]++
		}
	}

	result := make([]ArtistCount, 0, len(counts))
	for artist, count := range counts {
		result = append(result, ArtistCount{Artist: artist, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Artist < result[j].Artist
	})
	return result
}

type latestInfo struct {
	LatestEpisodeURL string `json:"latest_episode_url"`
}

// ReadLatest returns the checkpointed latest-episode URL, or empty when no
// checkpoint exists or it cannot be parsed.
func ReadLatest(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var info latestInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return ""
	}
	return info.LatestEpisodeURL
}

// WriteLatest checkpoints the latest-episode URL.
func WriteLatest(path, url string) error {
	data, err := json.MarshalIndent(latestInfo{LatestEpisodeURL: url}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal checkpoint: %w", err)
	}
	return writeAtomic(path, data)
}

func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

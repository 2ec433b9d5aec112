package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and database locations.
type Paths struct {
	DataDir   string `toml:"data_dir"`
	LogDir    string `toml:"log_dir"`
	ReviewDir string `toml:"review_dir"`
	LibraryDB string `toml:"library_db"`
}

// Scrape contains configuration for the episode website scraper.
type Scrape struct {
	BaseURL        string `toml:"base_url"`
	UserAgent      string `toml:"user_agent"`
	RequestDelayMS int    `toml:"request_delay_ms"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// MusicBrainz contains configuration for the external identity authority.
type MusicBrainz struct {
	BaseURL         string `toml:"base_url"`
	UserAgent       string `toml:"user_agent"`
	RateLimitMS     int    `toml:"rate_limit_ms"`
	TimeoutSeconds  int    `toml:"timeout_seconds"`
	MinConfidence   int    `toml:"min_confidence"`
	CheckpointEvery int    `toml:"checkpoint_every"`
}

// Tagging contains configuration for the catalog tagging pass.
type Tagging struct {
	GenreTag            string `toml:"genre_tag"`
	AlbumArtistFallback bool   `toml:"album_artist_fallback"`
}

// Curator contains configuration for cache curation.
type Curator struct {
	MinSimilarity int `toml:"min_similarity"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for showtag.
//
// Configuration sections by subsystem:
//   - Paths: data/log/review directories and the library database
//   - Scrape: episode website access
//   - MusicBrainz: external artist authority and confidence threshold
//   - Tagging: genre tag value and album-artist match policy
//   - Curator: cache re-scoring threshold
//   - Logging: log format and level
type Config struct {
	Paths       Paths       `toml:"paths"`
	Scrape      Scrape      `toml:"scrape"`
	MusicBrainz MusicBrainz `toml:"musicbrainz"`
	Tagging     Tagging     `toml:"tagging"`
	Curator     Curator     `toml:"curator"`
	Logging     Logging     `toml:"logging"`
}

// envOverrides holds values that may be supplied through the environment
// instead of the config file.
type envOverrides struct {
	MusicBrainzUserAgent string `envconfig:"MUSICBRAINZ_USER_AGENT"`
	LibraryDB            string `envconfig:"LIBRARY_DB"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/showtag/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. A missing file is not
// an error; defaults apply.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	var env envOverrides
	if err := envconfig.Process("showtag", &env); err != nil {
		return nil, "", false, fmt.Errorf("read environment overrides: %w", err)
	}
	if env.MusicBrainzUserAgent != "" {
		cfg.MusicBrainz.UserAgent = env.MusicBrainzUserAgent
	}
	if env.LibraryDB != "" {
		cfg.Paths.LibraryDB = env.LibraryDB
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	return defaultPath, false, nil
}

// SampleConfig returns the embedded sample configuration document.
func SampleConfig() string {
	return sampleConfig
}

// CreateSample writes the sample configuration document to path.
func CreateSample(path string) error {
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// ExpandPath expands a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

// EnsureDirectories creates the data, log, and review directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir, c.Paths.ReviewDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// EpisodesFile returns the path of the scraped episodes document.
func (c *Config) EpisodesFile() string {
	return filepath.Join(c.Paths.DataDir, "episodes.json")
}

// LatestEpisodeFile returns the path of the scrape checkpoint document.
func (c *Config) LatestEpisodeFile() string {
	return filepath.Join(c.Paths.DataDir, "latest_episode.json")
}

// CacheFile returns the path of the artist identity cache.
func (c *Config) CacheFile() string {
	return filepath.Join(c.Paths.DataDir, "artist_cache.json")
}

// CacheBackupFile returns the path of the pre-curation cache snapshot.
func (c *Config) CacheBackupFile() string {
	return filepath.Join(c.Paths.DataDir, "artist_cache.backup.json")
}

// RemovedEntriesFile returns the path of the curator's quarantine document.
func (c *Config) RemovedEntriesFile() string {
	return filepath.Join(c.Paths.DataDir, "removed_entries.json")
}

// PreviewFile returns the path of the tagging preview document.
func (c *Config) PreviewFile() string {
	return filepath.Join(c.Paths.DataDir, "tag_preview.json")
}

// LockFile returns the path of the lock guarding cache-mutating runs.
func (c *Config) LockFile() string {
	return filepath.Join(c.Paths.DataDir, "showtag.lock")
}

package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateScrape(); err != nil {
		return err
	}
	if err := c.validateMusicBrainz(); err != nil {
		return err
	}
	if err := c.validateTagging(); err != nil {
		return err
	}
	if err := c.validateCurator(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set")
	}
	if c.Paths.LibraryDB == "" {
		return errors.New("paths.library_db must be set")
	}
	return nil
}

func (c *Config) validateScrape() error {
	if c.Scrape.BaseURL == "" {
		return errors.New("scrape.base_url must be set")
	}
	if c.Scrape.RequestDelayMS < 0 {
		return errors.New("scrape.request_delay_ms must not be negative")
	}
	if c.Scrape.TimeoutSeconds <= 0 {
		return errors.New("scrape.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateMusicBrainz() error {
	if c.MusicBrainz.BaseURL == "" {
		return errors.New("musicbrainz.base_url must be set")
	}
	if c.MusicBrainz.UserAgent == "" {
		return errors.New("musicbrainz.user_agent must be set (MusicBrainz requires client identification)")
	}
	if c.MusicBrainz.MinConfidence < 0 || c.MusicBrainz.MinConfidence > 100 {
		return fmt.Errorf("musicbrainz.min_confidence must be between 0 and 100, got %d", c.MusicBrainz.MinConfidence)
	}
	if c.MusicBrainz.RateLimitMS < 0 {
		return errors.New("musicbrainz.rate_limit_ms must not be negative")
	}
	if c.MusicBrainz.TimeoutSeconds <= 0 {
		return errors.New("musicbrainz.timeout_seconds must be positive")
	}
	if c.MusicBrainz.CheckpointEvery <= 0 {
		return errors.New("musicbrainz.checkpoint_every must be positive")
	}
	return nil
}

func (c *Config) validateTagging() error {
	if c.Tagging.GenreTag == "" {
		return errors.New("tagging.genre_tag must be set")
	}
	return nil
}

func (c *Config) validateCurator() error {
	if c.Curator.MinSimilarity < 0 || c.Curator.MinSimilarity > 100 {
		return fmt.Errorf("curator.min_similarity must be between 0 and 100, got %d", c.Curator.MinSimilarity)
	}
	return nil
}

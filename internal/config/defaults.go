package config

const (
	defaultDataDir         = "~/.local/share/showtag"
	defaultLogDir          = "~/.local/share/showtag/logs"
	defaultReviewDir       = "~/.local/share/showtag/review"
	defaultLibraryDB       = "~/.config/beets/library.db"
	defaultScrapeBaseURL   = "https://www.chanceswithwolves.com"
	defaultScrapeUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
	defaultScrapeDelayMS   = 500
	defaultScrapeTimeout   = 30
	defaultMBBaseURL       = "https://musicbrainz.org/ws/2"
	defaultMBUserAgent     = "showtag/1.0 (https://github.com/showtag/showtag)"
	defaultMBRateLimitMS   = 1000
	defaultMBTimeout       = 15
	defaultMinConfidence   = 85
	defaultCheckpointEvery = 25
	defaultGenreTag        = "CWW"
	defaultMinSimilarity   = 80
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			LogDir:    defaultLogDir,
			ReviewDir: defaultReviewDir,
			LibraryDB: defaultLibraryDB,
		},
		Scrape: Scrape{
			BaseURL:        defaultScrapeBaseURL,
			UserAgent:      defaultScrapeUserAgent,
			RequestDelayMS: defaultScrapeDelayMS,
			TimeoutSeconds: defaultScrapeTimeout,
		},
		MusicBrainz: MusicBrainz{
			BaseURL:         defaultMBBaseURL,
			UserAgent:       defaultMBUserAgent,
			RateLimitMS:     defaultMBRateLimitMS,
			TimeoutSeconds:  defaultMBTimeout,
			MinConfidence:   defaultMinConfidence,
			CheckpointEvery: defaultCheckpointEvery,
		},
		Tagging: Tagging{
			GenreTag:            defaultGenreTag,
			AlbumArtistFallback: true,
		},
		Curator: Curator{
			MinSimilarity: defaultMinSimilarity,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

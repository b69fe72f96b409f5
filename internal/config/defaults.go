package config

import "time"

const (
	defaultConfigPath            = "~/.config/moviestats/config.toml"
	defaultTMDBBaseURL           = "https://api.themoviedb.org/3"
	defaultTMDBLanguage          = "en-US"
	defaultTMDBPosterSize        = "w92"
	defaultTMDBRequestsPerSecond = 4
	defaultTMDBTimeoutSeconds    = 10
	defaultRequestDelayMS        = 1000
	defaultStatsPath             = "movies.json"
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
	defaultLogMaxSizeMB          = 10
	defaultLogMaxBackups         = 3
	defaultLogMaxAgeDays         = 28

	// placeholderAPIKey is the value shipped in the sample config.
	placeholderAPIKey = "your_tmdb_api_key_here"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		TMDB: TMDB{
			BaseURL:           defaultTMDBBaseURL,
			Language:          defaultTMDBLanguage,
			PosterSize:        defaultTMDBPosterSize,
			RequestsPerSecond: defaultTMDBRequestsPerSecond,
			TimeoutSeconds:    defaultTMDBTimeoutSeconds,
		},
		Collect: Collect{
			RequestDelayMS: defaultRequestDelayMS,
		},
		Stats: Stats{
			Path: defaultStatsPath,
		},
		Logging: Logging{
			Format:     defaultLogFormat,
			Level:      defaultLogLevel,
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
			MaxAgeDays: defaultLogMaxAgeDays,
		},
	}
}

// RequestDelay returns the pause between title lookups.
func (c *Config) RequestDelay() time.Duration {
	return time.Duration(c.Collect.RequestDelayMS) * time.Millisecond
}

// TMDBTimeout returns the per-request HTTP timeout for TMDB calls.
func (c *Config) TMDBTimeout() time.Duration {
	return time.Duration(c.TMDB.TimeoutSeconds) * time.Second
}

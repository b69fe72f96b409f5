package tmdb

import (
	"errors"

	"moviestats/internal/config"
)

// NewFromConfig builds a client from the [tmdb] configuration section.
func NewFromConfig(cfg *config.Config) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	return New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language,
		WithTimeout(cfg.TMDBTimeout()),
		WithRequestsPerSecond(cfg.TMDB.RequestsPerSecond),
		WithImageBaseURL(cfg.TMDB.ImageBaseURL),
	)
}

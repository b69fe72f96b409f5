package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeTMDB()
	if err := c.normalizeStats(); err != nil {
		return err
	}
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) normalizeTMDB() {
	if value, ok := os.LookupEnv("TMDB_API_KEY"); ok && strings.TrimSpace(value) != "" {
		c.TMDB.APIKey = value
	}
	c.TMDB.APIKey = strings.TrimSpace(c.TMDB.APIKey)
	c.TMDB.BaseURL = strings.TrimRight(strings.TrimSpace(c.TMDB.BaseURL), "/")
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = defaultTMDBBaseURL
	}
	c.TMDB.ImageBaseURL = strings.TrimSpace(c.TMDB.ImageBaseURL)
	c.TMDB.Language = strings.TrimSpace(c.TMDB.Language)
	c.TMDB.PosterSize = strings.TrimSpace(c.TMDB.PosterSize)
	if c.TMDB.PosterSize == "" {
		c.TMDB.PosterSize = defaultTMDBPosterSize
	}
}

func (c *Config) normalizeStats() error {
	if strings.TrimSpace(c.Stats.Path) == "" {
		c.Stats.Path = defaultStatsPath
	}
	var err error
	if c.Stats.Path, err = expandPath(strings.TrimSpace(c.Stats.Path)); err != nil {
		return fmt.Errorf("stats.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.File) != "" {
		var err error
		if c.Logging.File, err = expandPath(strings.TrimSpace(c.Logging.File)); err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
	}
	return nil
}

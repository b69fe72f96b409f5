package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable. The TMDB credential is checked
// separately by ValidateTMDB because only commands that reach the provider need it.
func (c *Config) Validate() error {
	if err := c.validateTMDBSettings(); err != nil {
		return err
	}
	if err := c.validateCollect(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

// ValidateTMDB reports a missing or placeholder API key.
func (c *Config) ValidateTMDB() error {
	key := strings.TrimSpace(c.TMDB.APIKey)
	if key == "" || key == placeholderAPIKey {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = defaultConfigPath
		}
		return fmt.Errorf("tmdb.api_key is required. Set TMDB_API_KEY env var or edit %s (create with 'moviestats config init')", defaultPath)
	}
	return nil
}

func (c *Config) validateTMDBSettings() error {
	if c.TMDB.RequestsPerSecond < 0 {
		return errors.New("tmdb.requests_per_second must be zero (unlimited) or positive")
	}
	if c.TMDB.TimeoutSeconds <= 0 {
		return errors.New("tmdb.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateCollect() error {
	if c.Collect.RequestDelayMS < 0 {
		return errors.New("collect.request_delay_ms must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	if c.Logging.MaxSizeMB < 0 || c.Logging.MaxBackups < 0 || c.Logging.MaxAgeDays < 0 {
		return errors.New("logging rotation settings must not be negative")
	}
	return nil
}

// Package config loads, normalizes, and validates moviestats configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the TMDB_API_KEY environment
// fallback. The Config type centralizes every knob the collect and report
// commands need so the aggregate path and provider credentials are discovered
// in one pass.
package config

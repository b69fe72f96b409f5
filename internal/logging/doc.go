// Package logging assembles structured slog loggers and attribute helpers used
// across moviestats.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing (including an optional rotating log file), and exposes a no-op
// logger for tests and wiring code that cannot fail.
package logging

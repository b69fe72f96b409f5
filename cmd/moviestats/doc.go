// Package main hosts the moviestats CLI entrypoint and command graph.
//
// "collect" reads titles, looks them up on TMDB and writes the aggregate
// statistics file; "report" reads that file back and prints rankings and
// extremes. "check" and "config" cover preflight checks and configuration
// scaffolding. Configuration and logger setup live in commandContext so each
// subcommand only wires the internal packages it needs.
package main

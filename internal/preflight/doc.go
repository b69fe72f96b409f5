// Package preflight provides readiness checks for the TMDB credential and
// the aggregate file destination.
//
// These checks run in two contexts:
//   - The collect command calls CheckStatsFile before the first lookup so an
//     unwritable destination fails before any provider call is made.
//   - The "moviestats check" command runs RunAll and prints every result.
package preflight

// Package collector runs the collect pass: for each input title it searches
// TMDB, fetches details and credits for the top match, and folds the movie
// into a stats.Aggregate.
//
// Lookups are strictly sequential with a pacing.Pacer pause between titles.
// Poster paths of the four extreme films are turned into display URLs only
// after the loop, then the aggregate is handed to a Saver. Titles with no
// search results are collected and returned rather than treated as errors.
package collector

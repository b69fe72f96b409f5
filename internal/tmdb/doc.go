// Package tmdb provides the minimal TMDB API client used by the collect command.
//
// It authenticates requests and exposes movie search, movie details, movie
// credits, and poster URL resolution backed by the /configuration endpoint.
// Responses are strongly typed and validated at the boundary. A token-bucket
// limiter keeps request rates polite; options allow tests to supply custom
// HTTP clients or a fixed image host.
package tmdb

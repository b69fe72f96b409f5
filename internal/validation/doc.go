// Package validation wraps go-playground/validator with a shared instance and
// error values that name fields by their JSON keys. It guards the boundaries
// where data enters the program: TMDB responses and the aggregate file.
package validation

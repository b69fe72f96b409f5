// Package store persists the aggregate statistics record as indented JSON.
//
// Writes go to a temp file in the destination directory followed by a rename,
// so readers never observe a half-written file. A gofrs/flock lock on
// "<path>.lock" serialises writers (exclusive) against readers (shared); a
// second writer fails fast with ErrLocked rather than waiting.
package store

// Package stats holds the aggregate statistics record and the accumulation
// and ranking rules applied to it.
//
// Aggregate.Add folds one resolved movie in; Counter keeps per-name counts in
// first-seen order so rankings are deterministic; AverageRating and
// RunningDays produce the rounded figures shown by the report.
package stats

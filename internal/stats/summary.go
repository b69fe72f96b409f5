package stats

import (
	"errors"
	"fmt"
	"math"

	"moviestats/internal/validation"
)

// AverageRating returns the mean rating rounded to two decimals. ok is false
// for an empty aggregate.
func AverageRating(a *Aggregate) (avg float64, ok bool) {
	if a == nil || a.TotalMovies == 0 {
		return 0, false
	}
	var sum float64
	for _, r := range a.Ratings {
		sum += r
	}
	return roundTo(sum/float64(a.TotalMovies), 2), true
}

// RunningDays converts minutes to days rounded to one decimal.
func RunningDays(minutes int) float64 {
	return roundTo(float64(minutes)/60/24, 1)
}

func roundTo(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}

// Validate checks the structural invariants of a loaded aggregate.
func (a *Aggregate) Validate() error {
	if a == nil {
		return errors.New("aggregate is empty")
	}
	if err := validation.Struct(a); err != nil {
		return err
	}
	if len(a.ReleaseDates) != a.TotalMovies {
		return fmt.Errorf("releaseDates has %d entries, want totalMovies=%d", len(a.ReleaseDates), a.TotalMovies)
	}
	if len(a.Ratings) != a.TotalMovies {
		return fmt.Errorf("ratings has %d entries, want totalMovies=%d", len(a.Ratings), a.TotalMovies)
	}
	if a.TotalMovies == 0 {
		if len(a.Films()) != 0 {
			return errors.New("extreme films recorded without any movies")
		}
		return nil
	}
	if a.OldestFilm == nil || a.NewestFilm == nil {
		return errors.New("oldestFilm and newestFilm are required when movies were collated")
	}
	if (a.BestFilm == nil) != (a.WorstFilm == nil) {
		return errors.New("bestFilm and worstFilm must both be set or both be null")
	}
	return nil
}

package report

import (
	"errors"
	"time"

	"moviestats/internal/stats"
)

// RankLimit is how many entries each ranking shows.
const RankLimit = 10

// FilmSummary is an extreme film as shown in the report.
type FilmSummary struct {
	Title  string  `json:"title"`
	Year   *int    `json:"year"`
	Rating float64 `json:"rating"`
	Poster string  `json:"poster,omitempty"`
}

// Summary holds every figure the report prints.
type Summary struct {
	TotalMovies          int           `json:"totalMovies"`
	TotalRunningTime     int           `json:"totalRunningTime"`
	RunningDays          float64       `json:"runningDays"`
	Oldest               *FilmSummary  `json:"oldestFilm"`
	Newest               *FilmSummary  `json:"newestFilm"`
	Best                 *FilmSummary  `json:"bestFilm"`
	Worst                *FilmSummary  `json:"worstFilm"`
	FavouriteGenres      []stats.Entry `json:"favouriteGenres"`
	LeastFavouriteGenres []stats.Entry `json:"leastFavouriteGenres"`
	AverageRating        *float64      `json:"averageRating"`
	FavouriteDirectors   []stats.Entry `json:"favouriteDirectors"`
	FavouriteCast        []stats.Entry `json:"favouriteCast"`
}

// Empty reports whether no movies were collated.
func (s *Summary) Empty() bool {
	return s.TotalMovies == 0
}

// Build computes the report figures from a loaded aggregate.
func Build(agg *stats.Aggregate) (*Summary, error) {
	if agg == nil {
		return nil, errors.New("no statistics to report")
	}
	s := &Summary{
		TotalMovies:          agg.TotalMovies,
		TotalRunningTime:     agg.TotalRunningTime,
		RunningDays:          stats.RunningDays(agg.TotalRunningTime),
		Oldest:               summarizeFilm(agg.OldestFilm),
		Newest:               summarizeFilm(agg.NewestFilm),
		Best:                 summarizeFilm(agg.BestFilm),
		Worst:                summarizeFilm(agg.WorstFilm),
		FavouriteGenres:      agg.Genres.Top(RankLimit),
		LeastFavouriteGenres: agg.Genres.Bottom(RankLimit),
		FavouriteDirectors:   agg.Directors.Top(RankLimit),
		FavouriteCast:        agg.Cast.Top(RankLimit),
	}
	if avg, ok := stats.AverageRating(agg); ok {
		s.AverageRating = &avg
	}
	return s, nil
}

func summarizeFilm(f *stats.Film) *FilmSummary {
	if f == nil {
		return nil
	}
	out := &FilmSummary{Title: f.Title, Rating: f.Rating, Poster: f.Poster}
	if f.Date != nil {
		year := time.Unix(*f.Date, 0).UTC().Year()
		out.Year = &year
	}
	return out
}

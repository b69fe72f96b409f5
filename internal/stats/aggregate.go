package stats

import (
	"strings"
	"time"
)

// MovieRecord is the per-lookup view of a resolved movie.
type MovieRecord struct {
	Title string
	// ReleaseDate is nil when the provider supplied no parseable date.
	ReleaseDate *time.Time
	Runtime     int
	Rating      float64
	VoteCount   int64
	Poster      string
	Genres      []string
	Directors   []string
	Cast        []string
}

// Film is the snapshot kept for a movie holding a superlative.
type Film struct {
	// Date is a Unix timestamp in seconds, nil when unknown.
	Date   *int64  `json:"date"`
	Rating float64 `json:"rating" validate:"gte=0,lte=10"`
	Title  string  `json:"title"`
	Poster string  `json:"poster"`
}

// Aggregate is the statistics record persisted by collect and read by report.
type Aggregate struct {
	TotalMovies      int       `json:"totalMovies" validate:"gte=0"`
	TotalRunningTime int       `json:"totalRunningTime" validate:"gte=0"`
	OldestFilm       *Film     `json:"oldestFilm"`
	NewestFilm       *Film     `json:"newestFilm"`
	BestFilm         *Film     `json:"bestFilm"`
	WorstFilm        *Film     `json:"worstFilm"`
	Genres           Counter   `json:"genres" validate:"-"`
	ReleaseDates     []*int64  `json:"releaseDates"`
	Ratings          []float64 `json:"ratings" validate:"dive,gte=0,lte=10"`
	Directors        Counter   `json:"directors" validate:"-"`
	Cast             Counter   `json:"cast" validate:"-"`
}

// New returns an empty aggregate ready for accumulation.
func New() *Aggregate {
	return &Aggregate{
		ReleaseDates: []*int64{},
		Ratings:      []float64{},
	}
}

// Add folds one resolved movie into the aggregate. Extremes are replaced only
// on strict inequality so the first movie seen wins ties. Movies without votes
// never take part in best/worst selection.
//
// Genre, director and cast counts are per movie, not per credit: a name
// credited several times on one movie (a director also listed as co-director,
// an actor playing two roles) adds one to its count.
func (a *Aggregate) Add(m MovieRecord) {
	date := unixDate(m.ReleaseDate)

	a.TotalMovies++
	a.TotalRunningTime += m.Runtime

	if a.OldestFilm == nil || earlier(date, a.OldestFilm.Date) {
		a.OldestFilm = snapshot(m, date)
	}
	if a.NewestFilm == nil || later(date, a.NewestFilm.Date) {
		a.NewestFilm = snapshot(m, date)
	}

	if m.VoteCount != 0 {
		if a.BestFilm == nil || m.Rating > a.BestFilm.Rating {
			a.BestFilm = snapshot(m, date)
		}
		if a.WorstFilm == nil || m.Rating < a.WorstFilm.Rating {
			a.WorstFilm = snapshot(m, date)
		}
	}

	for _, name := range distinct(m.Genres) {
		a.Genres.Inc(name)
	}

	a.ReleaseDates = append(a.ReleaseDates, date)
	a.Ratings = append(a.Ratings, m.Rating)

	for _, name := range distinct(m.Directors) {
		a.Directors.Inc(name)
	}
	for _, name := range distinct(m.Cast) {
		a.Cast.Inc(name)
	}
}

// Films returns the four extreme snapshots in a fixed order, skipping nil ones.
func (a *Aggregate) Films() []*Film {
	films := make([]*Film, 0, 4)
	for _, f := range []*Film{a.OldestFilm, a.NewestFilm, a.BestFilm, a.WorstFilm} {
		if f != nil {
			films = append(films, f)
		}
	}
	return films
}

func snapshot(m MovieRecord, date *int64) *Film {
	return &Film{Date: date, Rating: m.Rating, Title: m.Title, Poster: m.Poster}
}

func unixDate(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	v := t.Unix()
	return &v
}

// earlier reports whether candidate is strictly before current. A known date
// always beats an unknown one; an unknown date never replaces anything.
func earlier(candidate, current *int64) bool {
	if candidate == nil {
		return false
	}
	return current == nil || *candidate < *current
}

func later(candidate, current *int64) bool {
	if candidate == nil {
		return false
	}
	return current == nil || *candidate > *current
}

// distinct trims names, drops blanks and keeps the first occurrence of each.
func distinct(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

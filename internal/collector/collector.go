package collector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"moviestats/internal/logging"
	"moviestats/internal/pacing"
	"moviestats/internal/stats"
	"moviestats/internal/titles"
	"moviestats/internal/tmdb"
)

// releaseDateLayout is the calendar date format TMDB uses for release_date.
const releaseDateLayout = "2006-01-02"

// directorJob is the crew job that marks a director credit.
const directorJob = "Director"

// Provider is the subset of the TMDB client the collector depends on.
type Provider interface {
	SearchMovie(ctx context.Context, query string) (*tmdb.Response, error)
	MovieDetails(ctx context.Context, movieID int64) (*tmdb.MovieDetails, error)
	MovieCredits(ctx context.Context, movieID int64) (*tmdb.Credits, error)
	PosterURL(ctx context.Context, posterPath, size string) (string, error)
}

// Saver persists the finished aggregate.
type Saver interface {
	Save(agg *stats.Aggregate) error
}

// Options tunes a Collector. Zero values fall back to silent, unpaced runs.
type Options struct {
	PosterSize     string
	PersistPartial bool
	Progress       io.Writer
	Pacer          pacing.Pacer
	Logger         *slog.Logger
}

// Collector looks titles up one at a time and folds them into an aggregate.
type Collector struct {
	provider       Provider
	saver          Saver
	posterSize     string
	persistPartial bool
	progress       io.Writer
	pacer          pacing.Pacer
	logger         *slog.Logger
}

// Result is the outcome of a completed run.
type Result struct {
	RunID        string
	Stats        *stats.Aggregate
	Unrecognised []string
	Duration     time.Duration
}

// New wires a collector.
func New(provider Provider, saver Saver, opts Options) (*Collector, error) {
	if provider == nil {
		return nil, errors.New("collector requires a provider")
	}
	if saver == nil {
		return nil, errors.New("collector requires a saver")
	}
	c := &Collector{
		provider:       provider,
		saver:          saver,
		posterSize:     strings.TrimSpace(opts.PosterSize),
		persistPartial: opts.PersistPartial,
		progress:       opts.Progress,
		pacer:          opts.Pacer,
		logger:         opts.Logger,
	}
	if c.progress == nil {
		c.progress = io.Discard
	}
	if c.pacer == nil {
		c.pacer = pacing.None
	}
	if c.logger == nil {
		c.logger = logging.NewNop()
	}
	c.logger = logging.NewComponentLogger(c.logger, "collector")
	return c, nil
}

// Run processes list in order, resolves extreme-film posters, and saves the
// aggregate. Titles with no search results are returned in Unrecognised. Any
// provider or save error aborts the run.
func (c *Collector) Run(ctx context.Context, list []string) (*Result, error) {
	if err := titles.Require(list); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger := c.logger.With(logging.String(logging.FieldRunID, runID))
	start := time.Now()
	logger.Info("collect run started", logging.Int("title_count", len(list)))

	agg := stats.New()
	var unrecognised []string

	for i, title := range list {
		record, found, err := c.lookup(ctx, logger, title)
		if err != nil {
			return nil, c.abort(logger, agg, fmt.Errorf("lookup %q: %w", title, err))
		}
		if found {
			agg.Add(record)
		} else {
			unrecognised = append(unrecognised, title)
			logger.Info("title not recognised", logging.String(logging.FieldTitle, title))
		}
		if _, err := io.WriteString(c.progress, "."); err != nil {
			return nil, fmt.Errorf("write progress: %w", err)
		}
		if i < len(list)-1 {
			if err := c.pacer.Pause(ctx); err != nil {
				return nil, c.abort(logger, agg, fmt.Errorf("pause between lookups: %w", err))
			}
		}
	}

	if err := c.resolvePosters(ctx, agg); err != nil {
		return nil, c.abort(logger, agg, err)
	}

	if err := c.saver.Save(agg); err != nil {
		return nil, fmt.Errorf("save statistics: %w", err)
	}

	duration := time.Since(start)
	logger.Info("collect run finished",
		logging.Int("total_movies", agg.TotalMovies),
		logging.Int("unrecognised", len(unrecognised)),
		logging.Duration("duration", duration))

	return &Result{
		RunID:        runID,
		Stats:        agg,
		Unrecognised: unrecognised,
		Duration:     duration,
	}, nil
}

// lookup resolves one title. found is false when the search has no results.
func (c *Collector) lookup(ctx context.Context, logger *slog.Logger, title string) (stats.MovieRecord, bool, error) {
	search, err := c.provider.SearchMovie(ctx, title)
	if err != nil {
		return stats.MovieRecord{}, false, err
	}
	if search == nil || len(search.Results) == 0 {
		return stats.MovieRecord{}, false, nil
	}
	movieID := search.Results[0].ID

	details, err := c.provider.MovieDetails(ctx, movieID)
	if err != nil {
		return stats.MovieRecord{}, false, err
	}
	credits, err := c.provider.MovieCredits(ctx, movieID)
	if err != nil {
		return stats.MovieRecord{}, false, err
	}

	record := buildRecord(title, details, credits)
	logger.Debug("title resolved",
		logging.String(logging.FieldTitle, title),
		logging.Int64(logging.FieldTMDBID, movieID),
		logging.String("matched_title", record.Title),
		logging.Float64("rating", record.Rating),
		logging.Bool("dated", record.ReleaseDate != nil))
	return record, true, nil
}

func buildRecord(query string, details *tmdb.MovieDetails, credits *tmdb.Credits) stats.MovieRecord {
	record := stats.MovieRecord{
		Title:       strings.TrimSpace(details.Title),
		ReleaseDate: parseReleaseDate(details.ReleaseDate),
		Runtime:     details.Runtime,
		Rating:      details.VoteAverage,
		VoteCount:   details.VoteCount,
		Poster:      strings.TrimSpace(details.PosterPath),
	}
	if record.Title == "" {
		record.Title = query
	}
	for _, g := range details.Genres {
		record.Genres = append(record.Genres, g.Name)
	}
	if credits != nil {
		for _, member := range credits.Crew {
			if member.Job == directorJob {
				record.Directors = append(record.Directors, member.Name)
			}
		}
		for _, member := range credits.Cast {
			record.Cast = append(record.Cast, member.Name)
		}
	}
	return record
}

// parseReleaseDate returns nil for empty or unparseable dates.
func parseReleaseDate(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	t, err := time.Parse(releaseDateLayout, value)
	if err != nil {
		return nil
	}
	return &t
}

// resolvePosters swaps the raw poster paths of the extreme films for display
// URLs. Each distinct path is resolved once.
func (c *Collector) resolvePosters(ctx context.Context, agg *stats.Aggregate) error {
	resolved := make(map[string]string)
	for _, film := range agg.Films() {
		if film.Poster == "" {
			continue
		}
		url, ok := resolved[film.Poster]
		if !ok {
			var err error
			url, err = c.provider.PosterURL(ctx, film.Poster, c.posterSize)
			if err != nil {
				return fmt.Errorf("resolve poster for %q: %w", film.Title, err)
			}
			resolved[film.Poster] = url
		}
		film.Poster = url
	}
	return nil
}

// abort optionally persists the partial aggregate before returning cause.
func (c *Collector) abort(logger *slog.Logger, agg *stats.Aggregate, cause error) error {
	if !c.persistPartial || agg.TotalMovies == 0 {
		logging.ErrorWithContext(logger, "collect run aborted", "collect_aborted",
			logging.Error(cause),
			logging.String(logging.FieldErrorHint, "check the TMDB API key and network, then rerun"),
			logging.Int("movies_lost", agg.TotalMovies))
		return cause
	}
	if err := c.saver.Save(agg); err != nil {
		return errors.Join(cause, fmt.Errorf("save partial statistics: %w", err))
	}
	logging.WarnWithContext(logger, "collect run aborted; partial statistics saved", "collect_partial_saved",
		logging.Error(cause),
		logging.Int("total_movies", agg.TotalMovies),
		logging.String(logging.FieldImpact, "statistics cover only titles processed before the failure"))
	return &PartialError{Saved: agg.TotalMovies, Err: cause}
}

// PartialError reports a failed run whose partial aggregate was persisted.
type PartialError struct {
	Saved int
	Err   error
}

func (e *PartialError) Error() string {
	return fmt.Sprintf("%v (partial statistics for %d movie(s) saved)", e.Err, e.Saved)
}

func (e *PartialError) Unwrap() error { return e.Err }

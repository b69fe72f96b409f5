package report_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"moviestats/internal/report"
	"moviestats/internal/stats"
)

func day(year int) *time.Time {
	t := time.Date(year, time.July, 1, 0, 0, 0, 0, time.UTC)
	return &t
}

func sampleAggregate() *stats.Aggregate {
	agg := stats.New()
	agg.Add(stats.MovieRecord{
		Title: "Jaws", ReleaseDate: day(1975), Runtime: 124, Rating: 7, VoteCount: 10,
		Genres: []string{"Horror", "Thriller"}, Directors: []string{"Steven Spielberg"},
		Cast: []string{"Roy Scheider"},
	})
	agg.Add(stats.MovieRecord{
		Title: "E.T.", ReleaseDate: day(1982), Runtime: 115, Rating: 8, VoteCount: 10,
		Genres: []string{"Family", "Science Fiction"}, Directors: []string{"Steven Spielberg"},
		Cast: []string{"Henry Thomas"},
	})
	agg.Add(stats.MovieRecord{
		Title: "Alien", ReleaseDate: day(1979), Runtime: 117, Rating: 9, VoteCount: 10,
		Genres: []string{"Horror", "Science Fiction"}, Directors: []string{"Ridley Scott"},
		Cast: []string{"Sigourney Weaver"},
	})
	return agg
}

func TestBuild(t *testing.T) {
	s, err := report.Build(sampleAggregate())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if s.TotalMovies != 3 || s.TotalRunningTime != 356 {
		t.Fatalf("unexpected totals %d/%d", s.TotalMovies, s.TotalRunningTime)
	}
	if s.RunningDays != 0.2 {
		t.Fatalf("expected 0.2 days, got %v", s.RunningDays)
	}
	if s.AverageRating == nil || *s.AverageRating != 8.00 {
		t.Fatalf("expected average 8.00, got %v", s.AverageRating)
	}
	if s.Oldest.Title != "Jaws" || *s.Oldest.Year != 1975 {
		t.Fatalf("unexpected oldest %+v", s.Oldest)
	}
	if s.Newest.Title != "E.T." || *s.Newest.Year != 1982 {
		t.Fatalf("unexpected newest %+v", s.Newest)
	}
	if s.Best.Title != "Alien" || s.Worst.Title != "Jaws" {
		t.Fatalf("unexpected best/worst %q/%q", s.Best.Title, s.Worst.Title)
	}
	if len(s.FavouriteGenres) != 4 {
		t.Fatalf("expected ranking to stop at 4 genres, got %d", len(s.FavouriteGenres))
	}
	if s.FavouriteGenres[0].Name != "Horror" || s.FavouriteGenres[1].Name != "Science Fiction" {
		t.Fatalf("unexpected genre order %v", s.FavouriteGenres)
	}
	if s.LeastFavouriteGenres[0].Name != "Thriller" || s.LeastFavouriteGenres[1].Name != "Family" {
		t.Fatalf("unexpected least-favourite order %v", s.LeastFavouriteGenres)
	}
	if s.FavouriteDirectors[0].Name != "Steven Spielberg" || s.FavouriteDirectors[0].Count != 2 {
		t.Fatalf("unexpected directors %v", s.FavouriteDirectors)
	}
}

func TestBuildCapsRankingsAtTen(t *testing.T) {
	agg := stats.New()
	for i := 0; i < 15; i++ {
		agg.Add(stats.MovieRecord{
			Title: fmt.Sprintf("M%d", i), ReleaseDate: day(1990 + i), Rating: 5, VoteCount: 1,
			Genres: []string{fmt.Sprintf("G%d", i)},
		})
	}
	s, err := report.Build(agg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(s.FavouriteGenres) != report.RankLimit || len(s.LeastFavouriteGenres) != report.RankLimit {
		t.Fatalf("expected %d entries, got %d/%d", report.RankLimit, len(s.FavouriteGenres), len(s.LeastFavouriteGenres))
	}
	if s.FavouriteGenres[0].Name != "G0" || s.FavouriteGenres[9].Name != "G9" {
		t.Fatalf("ties must keep insertion order, got %v", s.FavouriteGenres)
	}
}

func TestBuildRejectsNil(t *testing.T) {
	if _, err := report.Build(nil); err == nil {
		t.Fatal("expected error for nil aggregate")
	}
}

func TestWriteText(t *testing.T) {
	s, err := report.Build(sampleAggregate())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	var buf bytes.Buffer
	if err := report.WriteText(&buf, s, report.Options{}); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"3 in your collection, with a total running time of 356 minutes, that's 0.2 days!",
		"Oldest film: Jaws (1975)",
		"Newest film: E.T. (1982)",
		"Best film: Alien (9/10)",
		"Worst film: Jaws (7/10)",
		"Favourite genres:\nHorror (2)\nScience Fiction (2)\nThriller (1)\nFamily (1)\n",
		"Least-favourite genres:\nThriller (1)\nFamily (1)\nHorror (2)\nScience Fiction (2)\n",
		"Average rating: 8.00",
		"Favourite directors:\nSteven Spielberg (2)\nRidley Scott (1)\n",
		"Favourite actors/actresses:\nRoy Scheider (1)\nHenry Thomas (1)\nSigourney Weaver (1)\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatal("plain output must not contain ANSI escapes")
	}
}

func TestWriteTextColorizesHeadings(t *testing.T) {
	s, err := report.Build(sampleAggregate())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	var buf bytes.Buffer
	if err := report.WriteText(&buf, s, report.Options{Colorize: true}); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	if !strings.Contains(buf.String(), "\x1b[1m\x1b[34mFavourite genres:\x1b[0m") {
		t.Fatalf("expected colorized heading, got:\n%s", buf.String())
	}
}

func TestWriteTextEmptyCollection(t *testing.T) {
	s, err := report.Build(stats.New())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if s.AverageRating != nil {
		t.Fatal("average must be undefined for an empty collection")
	}
	var buf bytes.Buffer
	if err := report.WriteText(&buf, s, report.Options{}); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "0 in your collection") || !strings.Contains(out, "collection is empty") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if strings.Contains(out, "Average rating") || strings.Contains(out, "Oldest film") {
		t.Fatalf("empty collection must not print statistics:\n%s", out)
	}
}

func TestWriteTextHandlesUnknownYearAndNoRatings(t *testing.T) {
	agg := stats.New()
	agg.Add(stats.MovieRecord{Title: "Mystery", Runtime: 90})
	s, err := report.Build(agg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	var buf bytes.Buffer
	if err := report.WriteText(&buf, s, report.Options{}); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Oldest film: Mystery (unknown year)", "Best film: n/a (no rated films)", "Favourite genres:\n\nLeast-favourite genres:\n\n"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "(none)") {
		t.Fatalf("empty rankings must print no entry lines:\n%s", out)
	}
}

func TestWriteTextGroupsLargeNumbers(t *testing.T) {
	s := &report.Summary{TotalMovies: 1200, TotalRunningTime: 144000, RunningDays: 100}
	var buf bytes.Buffer
	if err := report.WriteText(&buf, s, report.Options{}); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	if !strings.Contains(buf.String(), "1,200 in your collection, with a total running time of 144,000 minutes") {
		t.Fatalf("expected grouped numbers, got %q", buf.String())
	}
}

func TestWriteTable(t *testing.T) {
	s, err := report.Build(sampleAggregate())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	var buf bytes.Buffer
	if err := report.WriteTable(&buf, s, report.Options{}); err != nil {
		t.Fatalf("WriteTable: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"== Overview ==", "== Films ==", "== Favourite genres ==", "Steven Spielberg", "Alien", "1975", "8.00"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in table output:\n%s", want, out)
		}
	}
}

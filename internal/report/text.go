package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"moviestats/internal/stats"
)

const (
	ansiReset = "\x1b[0m"
	ansiBold  = "\x1b[1m"
	ansiBlue  = "\x1b[34m"
)

// Options controls report rendering.
type Options struct {
	// Colorize wraps headings in ANSI escapes. Callers enable it for terminals.
	Colorize bool
	// Language selects number formatting; the zero value means English.
	Language language.Tag
}

func (o Options) printer() *message.Printer {
	tag := o.Language
	if tag == language.Und {
		tag = language.English
	}
	return message.NewPrinter(tag)
}

func (o Options) heading(title string) string {
	if o.Colorize {
		return ansiBold + ansiBlue + title + ansiReset
	}
	return title
}

// WriteText prints the summary in the plain narrative layout.
func WriteText(w io.Writer, s *Summary, opts Options) error {
	p := opts.printer()
	var b strings.Builder

	p.Fprintf(&b, "\n%d in your collection, with a total running time of %d minutes, that's %.1f days!\n",
		s.TotalMovies, s.TotalRunningTime, s.RunningDays)

	if s.Empty() {
		b.WriteString("\nYour collection is empty, so there is nothing more to report.\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "\n%s %s", opts.heading("Oldest film:"), filmWithYear(s.Oldest))
	fmt.Fprintf(&b, "\n%s %s\n", opts.heading("Newest film:"), filmWithYear(s.Newest))

	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s", opts.heading("Best film:"), filmWithRating(s.Best))
	fmt.Fprintf(&b, "\n%s %s\n", opts.heading("Worst film:"), filmWithRating(s.Worst))

	writeRanking(&b, p, opts.heading("Favourite genres:"), s.FavouriteGenres)
	writeRanking(&b, p, opts.heading("Least-favourite genres:"), s.LeastFavouriteGenres)

	if s.AverageRating != nil {
		fmt.Fprintf(&b, "\n%s %.2f\n", opts.heading("Average rating:"), *s.AverageRating)
	}

	writeRanking(&b, p, opts.heading("Favourite directors:"), s.FavouriteDirectors)
	writeRanking(&b, p, opts.heading("Favourite actors/actresses:"), s.FavouriteCast)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeRanking(b *strings.Builder, p *message.Printer, heading string, entries []stats.Entry) {
	fmt.Fprintf(b, "\n%s\n", heading)
	for _, e := range entries {
		p.Fprintf(b, "%s (%d)\n", e.Name, e.Count)
	}
}

func filmWithYear(f *FilmSummary) string {
	if f == nil {
		return "n/a"
	}
	if f.Year == nil {
		return f.Title + " (unknown year)"
	}
	return fmt.Sprintf("%s (%d)", f.Title, *f.Year)
}

func filmWithRating(f *FilmSummary) string {
	if f == nil {
		return "n/a (no rated films)"
	}
	return fmt.Sprintf("%s (%s/10)", f.Title, formatRating(f.Rating))
}

// formatRating prints a rating with as few decimals as needed (7.7, 8).
func formatRating(r float64) string {
	return strconv.FormatFloat(r, 'f', -1, 64)
}

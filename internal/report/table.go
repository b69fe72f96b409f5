package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"moviestats/internal/stats"
)

// WriteTable prints the summary as a series of rounded tables.
func WriteTable(w io.Writer, s *Summary, opts Options) error {
	p := opts.printer()
	var sections []string

	overview := [][]string{
		{"Movies", p.Sprintf("%d", s.TotalMovies)},
		{"Running time (minutes)", p.Sprintf("%d", s.TotalRunningTime)},
		{"Running time (days)", p.Sprintf("%.1f", s.RunningDays)},
	}
	if s.AverageRating != nil {
		overview = append(overview, []string{"Average rating", fmt.Sprintf("%.2f", *s.AverageRating)})
	}
	sections = append(sections, section(opts, "Overview",
		renderTable([]string{"Metric", "Value"}, overview, []text.Align{text.AlignLeft, text.AlignRight})))

	if s.Empty() {
		sections = append(sections, "Your collection is empty, so there is nothing more to report.")
		return writeSections(w, sections)
	}

	films := [][]string{
		filmRow("Oldest", s.Oldest),
		filmRow("Newest", s.Newest),
		filmRow("Best", s.Best),
		filmRow("Worst", s.Worst),
	}
	sections = append(sections, section(opts, "Films",
		renderTable([]string{"", "Title", "Year", "Rating"}, films,
			[]text.Align{text.AlignLeft, text.AlignLeft, text.AlignRight, text.AlignRight})))

	rankings := []struct {
		title   string
		entries []stats.Entry
	}{
		{"Favourite genres", s.FavouriteGenres},
		{"Least-favourite genres", s.LeastFavouriteGenres},
		{"Favourite directors", s.FavouriteDirectors},
		{"Favourite actors/actresses", s.FavouriteCast},
	}
	for _, r := range rankings {
		rows := make([][]string, 0, len(r.entries))
		for i, e := range r.entries {
			rows = append(rows, []string{strconv.Itoa(i + 1), e.Name, p.Sprintf("%d", e.Count)})
		}
		sections = append(sections, section(opts, r.title,
			renderTable([]string{"#", "Name", "Movies"}, rows,
				[]text.Align{text.AlignRight, text.AlignLeft, text.AlignRight})))
	}
	return writeSections(w, sections)
}

func filmRow(label string, f *FilmSummary) []string {
	if f == nil {
		return []string{label, "n/a", "", ""}
	}
	year := "unknown"
	if f.Year != nil {
		year = strconv.Itoa(*f.Year)
	}
	return []string{label, f.Title, year, formatRating(f.Rating)}
}

func section(opts Options, title, body string) string {
	return opts.heading("== "+title+" ==") + "\n" + body
}

func writeSections(w io.Writer, sections []string) error {
	_, err := io.WriteString(w, strings.Join(sections, "\n\n")+"\n")
	return err
}

func renderTable(headers []string, rows [][]string, aligns []text.Align) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) {
			align = aligns[i]
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

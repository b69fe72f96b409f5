package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"moviestats/internal/report"
	"moviestats/internal/store"
)

func newReportCommand(ctx *commandContext) *cobra.Command {
	var format string
	var inputPath string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarise the collected statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := applyOutputPath(cfg, inputPath); err != nil {
				return err
			}
			format = strings.ToLower(strings.TrimSpace(format))
			switch format {
			case "text", "table", "json":
			default:
				return fmt.Errorf("unsupported format %q (want text, table or json)", format)
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			statsStore, err := store.New(cfg.Stats.Path, logger)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			agg, err := statsStore.Load()
			if errors.Is(err, store.ErrNotFound) {
				fmt.Fprintf(out, "%s not found! Please run 'moviestats collect' first.\n", cfg.Stats.Path)
				return nil
			}
			if err != nil {
				return err
			}

			summary, err := report.Build(agg)
			if err != nil {
				return err
			}
			opts := report.Options{
				Colorize: shouldColorize(out),
				Language: reportLanguage(cfg.TMDB.Language),
			}
			switch format {
			case "json":
				return writeJSON(cmd, summary)
			case "table":
				return report.WriteTable(out, summary, opts)
			default:
				return report.WriteText(out, summary, opts)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, table or json")
	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Statistics file to read (overrides stats.path)")
	return cmd
}

// reportLanguage maps the TMDB language (en-US) to a number formatting locale.
func reportLanguage(value string) language.Tag {
	tag, err := language.Parse(strings.TrimSpace(value))
	if err != nil {
		return language.English
	}
	return tag
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"moviestats/internal/collector"
	"moviestats/internal/config"
	"moviestats/internal/pacing"
	"moviestats/internal/preflight"
	"moviestats/internal/store"
	"moviestats/internal/titles"
	"moviestats/internal/tmdb"
)

func newCollectCommand(ctx *commandContext) *cobra.Command {
	var inputPath string
	var outputPath string

	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Look up titles on TMDB and write aggregate statistics",
		Long: `Reads one movie title per line from stdin (or --input), looks each one up
on TMDB, and writes the aggregate statistics to the configured stats file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := applyOutputPath(cfg, outputPath); err != nil {
				return err
			}
			if err := cfg.ValidateTMDB(); err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			list, err := readTitles(cmd, inputPath)
			if err != nil {
				return err
			}
			if err := titles.Require(list); err != nil {
				return fmt.Errorf("%w: you must provide at least one movie to look up", err)
			}

			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}
			if check := preflight.CheckStatsFile(cfg.Stats.Path); !check.Passed {
				return fmt.Errorf("%s: %s", check.Name, check.Detail)
			}

			client, err := tmdb.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("create tmdb client: %w", err)
			}
			statsStore, err := store.New(cfg.Stats.Path, logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			runner, err := collector.New(client, statsStore, collector.Options{
				PosterSize:     cfg.TMDB.PosterSize,
				PersistPartial: cfg.Collect.PersistPartial,
				Progress:       out,
				Pacer:          pacing.Delay(cfg.RequestDelay()),
				Logger:         logger,
			})
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			result, err := runner.Run(runCtx, list)
			if err != nil {
				fmt.Fprintln(out)
				if errors.Is(err, context.Canceled) {
					return fmt.Errorf("collect interrupted: %w", err)
				}
				return err
			}

			fmt.Fprintf(out, "\nFinished! Collated stats on %d movie(s). Output in '%s'.\n", result.Stats.TotalMovies, cfg.Stats.Path)
			if len(result.Unrecognised) > 0 {
				fmt.Fprintf(out, "\nThe following movies were not found:\n%s\n", strings.Join(result.Unrecognised, "\n"))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Read titles from a file instead of stdin")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Statistics file to write (overrides stats.path)")
	return cmd
}

func readTitles(cmd *cobra.Command, inputPath string) ([]string, error) {
	var in io.Reader = cmd.InOrStdin()
	if path := strings.TrimSpace(inputPath); path != "" && path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open titles: %w", err)
		}
		defer file.Close()
		in = file
	}
	return titles.Read(in)
}

func applyOutputPath(cfg *config.Config, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return fmt.Errorf("resolve stats path: %w", err)
	}
	cfg.Stats.Path = expanded
	return nil
}

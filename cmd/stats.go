package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/airwave/internal/formatter"
	"github.com/desertthunder/airwave/internal/ratings"
	"github.com/desertthunder/airwave/internal/shared"
)

func statsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "stats",
		Usage:     "Print rating aggregates, for one song or all rated songs",
		ArgsUsage: "[songId]",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "songId"},
		},
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, markdown, or csv",
				Value:   "text",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Write output to a file instead of stdout",
			},
		},
		Action: r.Stats,
	}
}

// Stats aggregates ratings and renders them in the requested format.
func (r *Runner) Stats(ctx context.Context, cmd *cli.Command) error {
	if err := r.loadConfig(cmd); err != nil {
		return err
	}

	driver, err := r.openDriver()
	if err != nil {
		return err
	}
	defer driver.Close()

	if err := driver.RunMigrations(ctx); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}

	repo := ratings.NewRepository(driver)

	var summaries []ratings.SongSummary
	if songID := cmd.StringArg("songId"); songID != "" {
		summary, err := repo.Summary(ctx, songID)
		if err != nil {
			return err
		}
		summaries = []ratings.SongSummary{summary}
	} else {
		summaries, err = repo.AllSummaries(ctx)
		if err != nil {
			return err
		}
	}

	data, err := formatter.Export(cmd.String("format"), summaries)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
	}

	if out := cmd.String("out"); out != "" {
		if err := os.WriteFile(out, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}
		r.logger.Info("wrote stats", "path", out, "songs", len(summaries))
		return nil
	}

	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}

package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/airwave/internal/ratings"
	"github.com/desertthunder/airwave/internal/ui"
)

func dashboardCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "dashboard",
		Usage:  "Watch live rating aggregates in the terminal",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Dashboard,
	}
}

// Dashboard launches the TUI over the configured storage engine.
func (r *Runner) Dashboard(ctx context.Context, cmd *cli.Command) error {
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

	program := tea.NewProgram(ui.NewModel(ctx, repo), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("dashboard error: %w", err)
	}

	return nil
}

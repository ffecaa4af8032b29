package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/airwave/internal/shared"
)

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and run database migrations",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "init",
				Usage: "Write a starter config.toml before migrating",
			},
			&cli.BoolFlag{
				Name:  "rollback",
				Usage: "Roll back the most recent migration instead of applying",
			},
		},
		Action: r.Setup,
	}
}

// Setup prepares the configured storage engine: applies pending migrations,
// or rolls back the latest one with --rollback.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("init") {
		if err := shared.CreateConfigFile("config.toml"); err != nil {
			return err
		}
		r.logger.Info("wrote config.toml")
	}

	if err := r.loadConfig(cmd); err != nil {
		return err
	}

	driver, err := r.openDriver()
	if err != nil {
		return err
	}
	defer driver.Close()

	if cmd.Bool("rollback") {
		if err := driver.RollbackMigration(ctx); err != nil {
			return fmt.Errorf("rollback failed: %w", err)
		}
		r.logger.Info("rolled back latest migration", "engine", driver.Engine())
		return nil
	}

	if err := driver.RunMigrations(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	r.logger.Info("migrations applied", "engine", driver.Engine())
	return nil
}

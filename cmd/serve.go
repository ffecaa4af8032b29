package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/desertthunder/airwave/internal/ratings"
	"github.com/desertthunder/airwave/internal/server"
	"github.com/desertthunder/airwave/internal/shared"
	"github.com/urfave/cli/v3"
)

func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Run the rating web service",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Serve,
	}
}

// Serve runs migrations and starts the HTTP server, shutting down gracefully
// on SIGINT/SIGTERM. Schema initialization failure is fatal; the server never
// begins accepting requests on a half-created schema.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
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

	logger := shared.WithLogger(r.logger, "component", "server")
	repo := ratings.NewRepository(driver)

	router := server.NewBasicRouter()
	router.Use(
		server.RequestID(),
		server.Logging(logger),
		server.SecureHeaders(),
		server.RateLimit(r.config.Server.RateLimit, r.config.Server.Burst),
		server.Timeout(10*time.Second),
	)
	router.Handler(server.NewRatingsHandler(repo, logger))
	router.Handler(server.NewHealthHandler(driver))
	router.Handler(&server.IndexHandler{})

	addr := fmt.Sprintf("%s:%d", r.config.Server.Host, r.config.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	logger.Info("server started", "address", addr, "engine", driver.Engine())

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-sigCtx.Done():
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
	}

	return nil
}

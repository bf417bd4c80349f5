package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/devtrack/backend/api"
	"github.com/devtrack/backend/config"
	"github.com/devtrack/backend/database"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), config.New())
		},
	}
}

func runServe(ctx context.Context, c map[string]string) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	currentDB := database.New(db)

	if err := currentDB.Ping(ctx); err != nil {
		return fmt.Errorf("testing database connection: %w", err)
	}

	if config.GetBool(c, "MIGRATE_ON_START", false) {
		migrator, err := database.NewMigrator(db, config.GetString(c, "DB_LOG_LEVEL", "warn"))
		if err != nil {
			return err
		}
		if err := migrator.Up(ctx); err != nil {
			return err
		}
	}

	server, err := api.NewServer(api.RepositoriesFrom(currentDB), c)
	if err != nil {
		return fmt.Errorf("initializing server: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(server.Start)
	g.Go(func() error {
		<-gCtx.Done()
		log.Info().Msg("Closing server")
		return server.ShutdownGracefully(shutdownTimeout)
	})

	return g.Wait()
}

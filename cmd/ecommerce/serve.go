package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/JoshuaHenriques/store-management-rest-api/internal/config"
	"github.com/JoshuaHenriques/store-management-rest-api/internal/database"
	"github.com/JoshuaHenriques/store-management-rest-api/internal/handler"
	"github.com/JoshuaHenriques/store-management-rest-api/internal/logger"
	"github.com/JoshuaHenriques/store-management-rest-api/internal/repository"
	"github.com/JoshuaHenriques/store-management-rest-api/internal/router"
	"github.com/JoshuaHenriques/store-management-rest-api/internal/server"
	"github.com/JoshuaHenriques/store-management-rest-api/internal/service"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

func newServeCommand() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the background job worker",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), migrate)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "Apply database migrations before serving")
	return cmd
}

func runServe(ctx context.Context, migrate bool) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	defer loggerService.Shutdown()

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if migrate || cfg.Primary.Env == "local" {
		if err := database.Migrate(ctx, &log, cfg); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
	}

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		return fmt.Errorf("initialize server: %w", err)
	}

	repos := repository.NewRepositories(srv)
	services, err := service.NewService(srv, repos)
	if err != nil {
		return fmt.Errorf("initialize services: %w", err)
	}

	handlers := handler.NewHandlers(srv, services)
	srv.SetupHTTPServer(router.NewRouter(srv, handlers))

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start()
	}()

	return awaitShutdown(ctx, &log, srv, serveErr)
}

type shutdowner interface {
	Shutdown(ctx context.Context) error
}

// awaitShutdown blocks until the HTTP server stops on its own or ctx is
// cancelled, then shuts srv down. A server failure other than
// http.ErrServerClosed is returned so the process exits non-zero.
func awaitShutdown(ctx context.Context, log *zerolog.Logger, srv shutdowner, serveErr <-chan error) error {
	var runErr error
	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped unexpectedly")
			runErr = fmt.Errorf("serve: %w", err)
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Join(runErr, fmt.Errorf("shutdown: %w", err))
	}
	if runErr != nil {
		return runErr
	}

	log.Info().Msg("server exited properly")
	return nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/studykit/studykit/internal/config"
	"github.com/studykit/studykit/internal/database"
	"github.com/studykit/studykit/internal/handler"
	"github.com/studykit/studykit/internal/logger"
	"github.com/studykit/studykit/internal/middleware"
	"github.com/studykit/studykit/internal/repository"
	"github.com/studykit/studykit/internal/router"
	"github.com/studykit/studykit/internal/server"
	"github.com/studykit/studykit/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	rootCmd := &cobra.Command{
		Use:   "studykit",
		Short: "API server that turns study documents into practice questions",
	}

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP server and background workers",
			RunE: func(cmd *cobra.Command, args []string) error {
				return serve()
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply pending database migrations and exit",
			RunE: func(cmd *cobra.Command, args []string) error {
				return migrate(cmd.Context())
			},
		},
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serve() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, loggerService, err := logger.New(cfg)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer loggerService.Shutdown()

	srv, err := server.New(cfg, log, loggerService)
	if err != nil {
		return fmt.Errorf("initializing server: %w", err)
	}

	repos := repository.NewRepositories(srv.DB.Pool)

	services, err := service.NewServices(srv, repos)
	if err != nil {
		return fmt.Errorf("initializing services: %w", err)
	}

	handlers := handler.NewHandlers(srv, services)
	middlewares := middleware.NewMiddlewares(srv)

	e := router.Setup(srv, middlewares, handlers)
	srv.SetupHTTPServer(e)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info().Msg("shutdown complete")
	return nil
}

func migrate(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, loggerService, err := logger.New(cfg)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer loggerService.Shutdown()

	return database.Migrate(ctx, log, cfg)
}

package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"wishlist/internal/app"
	"wishlist/internal/config"
	"wishlist/internal/database"
	"wishlist/internal/logging"
	"wishlist/internal/services"
	"wishlist/pkg/errutil"
	"wishlist/pkg/rabbitmq"
)

const shutdownTimeout = 10 * time.Second

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Connect to the database, apply migrations and serve the API until
SIGINT or SIGTERM is received.`,
		RunE: runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return oops.Code("CONFIG_INVALID").Wrap(err)
	}
	logger := logging.SetDefault("wishlist-api", cfg.LogFormat, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(contextOrBackground(cmd.Context()), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg)
	if err != nil {
		errutil.LogError(logger, "database unavailable", err)
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			errutil.LogError(logger, "closing database", err)
		}
	}()

	if err := database.Migrate(db); err != nil {
		errutil.LogError(logger, "migration failed", err)
		return err
	}

	// Leave the interface nil when RabbitMQ is not configured.
	var publisher services.PriceEventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			errutil.LogError(logger, "rabbitmq unavailable, price events disabled", err)
		} else {
			defer mqClient.Close()
			publisher = mqClient
			logger.Info("publishing price events", "queue", rabbitmq.DefaultQueue)
		}
	}

	fiberApp, err := app.NewApp(app.Options{
		Config:    cfg,
		DB:        db,
		Publisher: publisher,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	listenErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", cfg.AppPort, "driver", cfg.DatabaseDriver)
		listenErr <- fiberApp.Listen(cfg.AppPort)
	}()

	select {
	case err := <-listenErr:
		if err != nil {
			return oops.Code("SERVER_FAILED").With("addr", cfg.AppPort).Wrap(err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	if err := fiberApp.ShutdownWithTimeout(shutdownTimeout); err != nil {
		errutil.LogError(logger, "error during shutdown", err)
	}
	logger.Info("server gracefully stopped")
	return nil
}

// contextOrBackground keeps commands usable when executed without
// ExecuteContext.
func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

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

	"fulfillment/cmd"
	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/kafka"
	"fulfillment/internal/adapters/out/postgres/migrations"
	"fulfillment/internal/core/ports"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	app := &cli.App{
		Name:  "fulfillment",
		Usage: "order fulfillment ledger",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "env-file",
				Usage: "dotenv files loaded before the process environment",
				Value: cli.NewStringSlice(".env"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API and the scheduled jobs",
				Action: serve,
			},
			{
				Name:  "migrate",
				Usage: "apply or roll back database migrations",
				Subcommands: []*cli.Command{
					{Name: "up", Usage: "apply pending migrations", Action: migrateUp},
					{Name: "down", Usage: "roll back every migration", Action: migrateDown},
				},
			},
		},
		DefaultCommand: "serve",
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.RunContext(ctx, os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup(c *cli.Context) (cmd.Config, *zap.Logger, error) {
	cfg, err := cmd.LoadConfig(c.StringSlice("env-file")...)
	if err != nil {
		return cmd.Config{}, nil, err
	}
	logger, err := newLogger(cfg.LogDevelopment)
	if err != nil {
		return cmd.Config{}, nil, fmt.Errorf("build logger: %w", err)
	}
	return cfg, logger, nil
}

func newLogger(development bool) (*zap.Logger, error) {
	if development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func migrateUp(c *cli.Context) error {
	cfg, logger, err := setup(c)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	version, err := migrations.Up(cfg.DSN())
	if err != nil {
		logger.Error("migration failed", zap.Error(err))
		return err
	}
	logger.Info("database migrated", zap.Uint("version", version))
	return nil
}

func migrateDown(c *cli.Context) error {
	cfg, logger, err := setup(c)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if err = migrations.Down(cfg.DSN()); err != nil {
		logger.Error("migration rollback failed", zap.Error(err))
		return err
	}
	logger.Info("database migrations rolled back")
	return nil
}

func serve(c *cli.Context) error {
	cfg, logger, err := setup(c)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	ctx := c.Context

	version, err := migrations.Up(cfg.DSN())
	if err != nil {
		return err
	}
	logger.Info("database schema ready", zap.Uint("version", version))

	gormDB, err := gorm.Open(gormpostgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		return fmt.Errorf("open gorm: %w", err)
	}

	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		return fmt.Errorf("open pgx pool: %w", err)
	}
	defer pool.Close()
	if err = pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	var publisher ports.OrderEventPublisher = kafka.NoopPublisher{}
	if cfg.KafkaEnabled() {
		producer := kafka.NewProducer(cfg.KafkaHost, cfg.KafkaOrderChangedTopic)
		defer func() {
			if closeErr := producer.Close(); closeErr != nil {
				logger.Warn("failed to close kafka producer", zap.Error(closeErr))
			}
		}()
		publisher = producer
		logger.Info("publishing order changes", zap.String("topic", cfg.KafkaOrderChangedTopic))
	}

	root := cmd.NewCompositionRoot(cfg, gormDB, pool, publisher, logger)

	jobManager := root.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e, err := httpin.NewRouter(root.CreateHTTPServer(), logger)
	if err != nil {
		return err
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting http server", zap.String("port", cfg.HTTPPort))
		serverErr <- e.Start(fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort))
	}()

	select {
	case err = <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"task-manager/internal/api"
	"task-manager/internal/config"
	"task-manager/internal/log"
	"task-manager/internal/repository"
	"task-manager/internal/service"
)

var rootCmd = &cobra.Command{
	Use:          "taskd",
	Short:        "Task management REST API",
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (default)",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE:  runMigrate,
}

func main() {
	rootCmd.PersistentFlags().String("db", "", "database DSN, overrides DATABASE_URL")
	rootCmd.PersistentFlags().String("addr", "", "listen address, overrides HTTP_ADDR")
	rootCmd.AddCommand(serveCmd, migrateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads configuration, applies flag overrides and opens the database.
func setup(cmd *cobra.Command) (config.Config, *logrus.Logger, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, nil, nil, fmt.Errorf("config: %w", err)
	}
	if dsn, _ := cmd.Flags().GetString("db"); dsn != "" {
		cfg.DatabaseURL = dsn
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.HTTPAddr = addr
	}

	logger, err := log.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return cfg, nil, nil, fmt.Errorf("logger: %w", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL, logger)
	if err != nil {
		return cfg, logger, nil, fmt.Errorf("db: %w", err)
	}
	return cfg, logger, db, nil
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	_, logger, db, err := setup(cmd)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	logger.Info("Schema is up to date")
	return nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, db, err := setup(cmd)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}

	taskRepo := repository.NewTaskRepository(db)
	taskSvc := service.NewTaskService(taskRepo, logger)

	health := service.NewHealthMonitor(taskRepo, logger)
	health.Probe(cmd.Context())

	scheduler := service.NewSchedulerService(time.UTC, logger)
	if cfg.HealthProbeInterval > 0 {
		if err := health.Schedule(scheduler, cfg.HealthProbeInterval); err != nil {
			return fmt.Errorf("schedule health probe: %w", err)
		}
	}
	scheduler.Start()

	server := api.NewServer(cfg.HTTPAddr, taskSvc, health, api.Options{
		BasePath:       cfg.BasePath,
		AllowedOrigins: cfg.AllowedOrigins,
	}, logger)

	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("HTTP server stopped")
		}
	}()

	logger.WithFields(logrus.Fields{
		"addr":      cfg.HTTPAddr,
		"base_path": cfg.BasePath,
	}).Info("Task service started")

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"http-server": func(ctx context.Context) error {
				return server.Shutdown(ctx)
			},
			"scheduler": func(ctx context.Context) error {
				scheduler.Stop()
				return nil
			},
			"database": func(ctx context.Context) error {
				return sqlDB.Close()
			},
		},
	)

	exitCode := <-wait
	logger.WithField("code", exitCode).Info("Shutdown complete")
	os.Exit(exitCode)
	return nil
}

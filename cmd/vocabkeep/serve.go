package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go_vocab_sets/internal/config"
	"go_vocab_sets/internal/export"
	"go_vocab_sets/internal/handlers"
	"go_vocab_sets/internal/repository"
	"go_vocab_sets/internal/service"
	"go_vocab_sets/internal/translation"
	"go_vocab_sets/internal/view"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := loadConfig()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), logger, config.Cfg)
		},
	}
}

func serve(ctx context.Context, logger *slog.Logger, cfg config.Config) error {
	logger.Info("Application starting...", slog.String("version", config.AppVersion))

	db, err := repository.NewDB(cfg.Database, logger)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			logger.Error("Error closing database connection", slog.Any("error", err))
		} else {
			logger.Info("Database connection closed.")
		}
	}()
	if cfg.Database.Driver == repository.DriverSQLite {
		if err := repository.AutoMigrate(db); err != nil {
			return err
		}
	}

	translator, err := translation.New(cfg.Translation, logger)
	if err != nil {
		return err
	}
	renderer, err := export.NewRenderer(cfg.Export)
	if err != nil {
		return err
	}
	views, err := view.New()
	if err != nil {
		return err
	}

	// Dependency Injection
	setRepo := repository.NewGormSetRepository()
	entryRepo := repository.NewGormEntryRepository()
	setService := service.NewSetService(db, setRepo, entryRepo, renderer)
	entryService := service.NewEntryService(db, setRepo, entryRepo, translator, cfg.Translation.Timeout)

	if !cfg.Auth.Enabled {
		logger.Warn("Authentication is disabled; all requests act as the development user")
	}

	router := handlers.NewRouter(handlers.RouterDeps{
		Logger:  logger,
		DB:      db,
		Sets:    setService,
		Entries: entryService,
		Views:   views,
		Auth:    cfg.Auth,
		CORS:    cfg.CORS,
	})

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	listenErr := make(chan error, 1)
	go func() {
		logger.Info("Server listening", slog.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
		close(listenErr)
	}()

	// Graceful Shutdown
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-listenErr:
		if err != nil {
			return fmt.Errorf("listen on %s: %w", cfg.Server.Port, err)
		}
		return nil
	case <-sigCtx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", slog.Any("error", err))
		return err
	}
	logger.Info("Server exiting")
	return nil
}

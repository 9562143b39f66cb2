// cmd/vocabkeep/main.go
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"go_vocab_sets/internal/config"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

var configDir string

func main() {
	rootCommand := &cobra.Command{
		Use:           config.AppName,
		Short:         "Personal vocabulary sets with translation and PDF export",
		Version:       config.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCommand.PersistentFlags().StringVar(&configDir, "config", "configs", "directory containing config.yaml")

	rootCommand.AddCommand(
		newServeCommand(),
		newMigrateCommand(),
		newTokenCommand(),
	)
	if err := rootCommand.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "vocabkeep: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig は設定を読み込み、設定に従ったロガーをデフォルトに設定します。
func loadConfig() (*slog.Logger, error) {
	if err := config.LoadConfig(configDir); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger := newLogger(config.Cfg.Log.Level, os.Getenv("APP_ENV"))
	slog.SetDefault(logger)
	return logger, nil
}

func newLogger(level, appEnv string) *slog.Logger {
	logLevel := new(slog.LevelVar)
	switch strings.ToLower(level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo) // 不明な場合はInfo
	}

	var handler slog.Handler
	if strings.ToLower(appEnv) == "dev" {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})
	}
	return slog.New(handler)
}

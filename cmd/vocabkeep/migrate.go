package main

import (
	"go_vocab_sets/internal/config"
	"go_vocab_sets/internal/repository"

	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := loadConfig()
			if err != nil {
				return err
			}
			dbCfg := config.Cfg.Database

			// sqlite には golang-migrate のドライバを組み込んでいないので GORM で作る
			if dbCfg.Driver == repository.DriverSQLite {
				db, err := repository.NewDB(dbCfg, logger)
				if err != nil {
					return err
				}
				if sqlDB, err := db.DB(); err == nil {
					defer sqlDB.Close()
				}
				if err := repository.AutoMigrate(db); err != nil {
					return err
				}
				logger.Info("SQLite schema migrated")
				return nil
			}
			return repository.RunMigrations(dbCfg.URL, logger)
		},
	}
}

package main

import (
	"fmt"

	"physio-service/pkg/config"
	"physio-service/pkg/database"
	"physio-service/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const serviceName = "physio-service"

var (
	cfg *config.Config
	db  *gorm.DB
)

var rootCmd = &cobra.Command{
	Use:   "physio",
	Short: "Physiotherapy exercise tracking service",
	Long: `Physio serves the exercise tracking API: patients and practitioners,
the exercise catalogue, health conditions and the exercises prescribed to each
patient day by day.

Configuration comes from the environment, optionally loaded from a .env file.

  $ physio serve            # migrate the schema, then serve HTTP
  $ physio serve --skip-migrate
  $ physio migrate          # only create or update the schema`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load(serviceName)
		if err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}

		if err := logger.InitLogger(&logger.LogConfig{
			Level:       cfg.Log.Level,
			Environment: cfg.Server.Env,
			ServiceName: cfg.ServiceName,
		}); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		logger.GetLogger().Info("Configuration loaded", cfg.LogConfig()...)

		db, err = database.InitDB(&cfg.DB, logger.GetLogger())
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// closeResources releases what PersistentPreRunE opened. main calls it after
// Execute, also when the command failed.
func closeResources() {
	defer logger.Sync()
	if db == nil {
		return
	}
	if err := database.Close(db); err != nil {
		logger.GetLogger().Warn("Failed to close database", zap.Error(err))
	}
	db = nil
}

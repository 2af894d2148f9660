package main

import (
	"fmt"

	"physio-service/pkg/database"
	"physio-service/pkg/logger"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long: `Create the users, exercices, health conditions and assignments tables
and their indexes. Running it again on an up to date schema changes nothing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		logger.GetLogger().Info("Schema is up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

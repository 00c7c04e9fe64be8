package main

import (
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"wishlist/internal/config"
	"wishlist/internal/database"
)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long:  `Create or update the users, collections, items and price_history tables.`,
		RunE:  runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return oops.Code("CONFIG_INVALID").Wrap(err)
	}

	cmd.Println("Connecting to database...")
	db, err := database.Open(contextOrBackground(cmd.Context()), cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	cmd.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		return err
	}

	cmd.Println("Migrations completed successfully")
	return nil
}

package cli

import (
	"fmt"
	"strconv"

	"github.com/community-news-api/internal/database"
	"github.com/spf13/cobra"
)

func (a *app) migrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the articles schema",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(db *database.DB) error {
				return db.RunMigrations(a.migrationsPath)
			})
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(db *database.DB) error {
				return db.MigrateDown(a.migrationsPath)
			})
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "goto <version>",
		Short: "Migrate up or down to a specific version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid version %q: must be a non-negative integer", args[0])
			}
			return a.withStore(cmd, func(db *database.DB) error {
				return db.MigrateToVersion(a.migrationsPath, uint(version))
			})
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(db *database.DB) error {
				version, dirty, err := db.MigrationVersion(a.migrationsPath)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", version, dirty)
				return nil
			})
		},
	})

	return migrateCmd
}

func (a *app) withStore(cmd *cobra.Command, fn func(db *database.DB) error) error {
	db, err := a.open(cmd.Context(), a.log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	return fn(db)
}

// Package cli contains the newsctl maintenance commands
package cli

import (
	"context"
	"os"

	"github.com/community-news-api/internal/config"
	"github.com/community-news-api/internal/database"
	"github.com/community-news-api/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// StoreOpener connects to the article store
type StoreOpener func(ctx context.Context, log zerolog.Logger) (*database.DB, error)

type app struct {
	migrationsPath string
	verbose        bool
	log            zerolog.Logger
	open           StoreOpener
}

// NewRootCommand builds the newsctl command tree. A nil opener connects
// using the DATABASE_URL or DB_* environment.
func NewRootCommand(open StoreOpener) *cobra.Command {
	if open == nil {
		open = openFromEnv
	}
	a := &app{open: open, log: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "newsctl",
		Short: "Community news portal maintenance CLI",
		Long: `newsctl manages the article store behind the community news API.

Example usage:
  newsctl migrate up           # Apply pending migrations
  newsctl migrate down         # Roll back the last migration
  newsctl migrate goto 1       # Move to a specific version
  newsctl migrate version      # Show the applied version
  newsctl seed                 # Insert the sample articles into an empty store`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := os.Getenv("LOG_LEVEL")
			if a.verbose {
				level = "debug"
			}
			a.log = logger.New(level, os.Getenv("LOG_FORMAT"))
		},
	}

	root.PersistentFlags().StringVar(&a.migrationsPath, "migrations", "./migrations", "directory containing migration files")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(a.migrateCommand())
	root.AddCommand(a.seedCommand())
	return root
}

func openFromEnv(ctx context.Context, log zerolog.Logger) (*database.DB, error) {
	cfg, err := config.LoadDatabase()
	if err != nil {
		return nil, err
	}
	return database.New(cfg, log)
}

package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/community-news-api/internal/database"
	"github.com/community-news-api/internal/models"
	"github.com/community-news-api/internal/repository"
	"github.com/spf13/cobra"
)

func (a *app) seedCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the sample articles",
		Long: `Insert the sample articles shown in demo mode as real rows.

The store is left untouched when it already holds articles unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(db *database.DB) error {
				repos := repository.New(db)
				n, err := SeedArticles(cmd.Context(), repos.Article, time.Now(), force)
				if err != nil {
					return err
				}
				reportSeed(cmd.OutOrStdout(), n)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "seed even when articles already exist")
	return cmd
}

// SeedArticles inserts the fallback set and returns how many rows were written.
// A non-empty store is skipped unless force is set.
func SeedArticles(ctx context.Context, articles repository.ArticleRepository, now time.Time, force bool) (int, error) {
	if !force {
		count, err := articles.Count(ctx)
		if err != nil {
			return 0, err
		}
		if count > 0 {
			return 0, nil
		}
	}

	inserted := 0
	for _, a := range models.FallbackArticles(now) {
		if err := articles.Create(ctx, a); err != nil {
			return inserted, fmt.Errorf("seeding %q: %w", a.Title, err)
		}
		inserted++
	}
	return inserted, nil
}

func reportSeed(w io.Writer, n int) {
	if n == 0 {
		fmt.Fprintln(w, "Store already has articles, nothing seeded (use --force to seed anyway)")
		return
	}
	fmt.Fprintf(w, "Seeded %d articles\n", n)
}

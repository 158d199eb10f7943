package repository

import (
	"context"

	"github.com/community-news-api/internal/database"
	"github.com/community-news-api/internal/models"
)

// ArticleRepository defines the interface for article data operations.
// Every failure other than ErrNotFound is returned as a *models.StoreError.
type ArticleRepository interface {
	List(ctx context.Context, q models.ArticleQuery) ([]*models.Article, error)
	GetByID(ctx context.Context, id int64) (*models.Article, error)
	Create(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
	StreamAll(ctx context.Context, callback func(*models.Article) error) error
}

// Repositories holds all repository interfaces
type Repositories struct {
	Article ArticleRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Article: NewArticleRepo(db),
	}
}

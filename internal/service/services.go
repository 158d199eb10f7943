package service

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/community-news-api/internal/models"
	"github.com/community-news-api/internal/repository"
	"github.com/community-news-api/internal/search"
	"github.com/community-news-api/internal/storage"
	"github.com/community-news-api/internal/validation"
	"github.com/rs/zerolog"
)

// ArticleService serves the public read paths. List reads never fail:
// an empty or unreachable store yields the fallback set instead.
type ArticleService interface {
	ListPublished(ctx context.Context, limit int) *models.ArticleFeed
	Featured(ctx context.Context) *models.ArticleFeed
	GetArticle(ctx context.Context, id int64) (*models.ArticleDetail, error)
}

// DashboardService loads the admin dashboard
type DashboardService interface {
	Load(ctx context.Context, filter models.DashboardFilter) (*models.Dashboard, error)
}

// AdminService defines the admin write path
type AdminService interface {
	NewSubmission() *ArticleSubmission
	Delete(ctx context.Context, id int64, confirmed bool) error
}

// SearchService defines the federated search and the provider proxy
type SearchService interface {
	NewSession(lang string) *SearchSession
	Search(ctx context.Context, query, lang string) *models.SearchSnapshot
	Proxy(ctx context.Context, query string) (json.RawMessage, error)
}

// ExportService defines the interface for export operations
type ExportService interface {
	StreamArticles(ctx context.Context, w http.ResponseWriter, format string) error
	GetCount(ctx context.Context) (int, error)
}

// Services holds all service interfaces
type Services struct {
	Article   ArticleService
	Dashboard DashboardService
	Admin     AdminService
	Search    SearchService
	Export    ExportService
}

// Deps are the collaborators shared by the services
type Deps struct {
	Repos  *repository.Repositories
	Images storage.ImageStore
	Web    search.WebSearcher
	Now    func() time.Time
}

// NewServices creates all services
func NewServices(deps Deps, log zerolog.Logger) *Services {
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	return &Services{
		Article:   newArticleService(deps.Repos.Article, now, log),
		Dashboard: newDashboardService(deps.Repos.Article, log),
		Admin:     newAdminService(deps.Repos.Article, deps.Images, validation.NewValidator(), now, log),
		Search:    newSearchService(deps.Repos.Article, deps.Web, log),
		Export:    newExportService(deps.Repos, log),
	}
}

package service

import (
	"context"
	"math"
	"strings"

	"github.com/community-news-api/internal/models"
	"github.com/community-news-api/internal/repository"
	"github.com/rs/zerolog"
)

// FilterArticles applies the dashboard filters to an already loaded list.
// Empty or "All" leaves a dimension unconstrained. The input is not modified.
func FilterArticles(articles []*models.Article, filter models.DashboardFilter) []*models.Article {
	term := strings.ToLower(strings.TrimSpace(filter.Search))
	visible := make([]*models.Article, 0, len(articles))

	for _, a := range articles {
		if term != "" && !strings.Contains(strings.ToLower(a.Title), term) {
			continue
		}
		if !matchesFilter(filter.Category, a.Category) {
			continue
		}
		if !matchesFilter(filter.Status, string(a.Status)) {
			continue
		}
		visible = append(visible, a)
	}
	return visible
}

func matchesFilter(filter, value string) bool {
	return filter == "" || filter == models.FilterAll || filter == value
}

// ComputeStats aggregates the dashboard header. An empty list averages 0.
func ComputeStats(articles []*models.Article) models.DashboardStats {
	stats := models.DashboardStats{Total: len(articles)}
	if len(articles) == 0 {
		return stats
	}

	categories := make(map[string]struct{})
	var views int64
	for _, a := range articles {
		if a.Status == models.StatusPublished {
			stats.Published++
		}
		categories[a.Category] = struct{}{}
		views += a.Views
	}

	stats.Categories = len(categories)
	stats.AverageViews = int64(math.Round(float64(views) / float64(len(articles))))
	return stats
}

// RemoveArticle drops a deleted article from a loaded dashboard and
// recomputes what depends on it. It reports whether the id was present.
func RemoveArticle(d *models.Dashboard, id int64) bool {
	kept := make([]*models.Article, 0, len(d.Articles))
	for _, a := range d.Articles {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	if len(kept) == len(d.Articles) {
		return false
	}

	d.Articles = kept
	d.Visible = FilterArticles(kept, d.Filter)
	d.Stats = ComputeStats(kept)
	return true
}

// dashboardService is the concrete implementation of DashboardService
type dashboardService struct {
	articles repository.ArticleRepository
	log      zerolog.Logger
}

func newDashboardService(articles repository.ArticleRepository, log zerolog.Logger) *dashboardService {
	return &dashboardService{
		articles: articles,
		log:      log.With().Str("service", "dashboard").Logger(),
	}
}

// Load fetches every article once, newest first, then filters locally.
// Store failures are surfaced; the dashboard never shows fallback data.
func (s *dashboardService) Load(ctx context.Context, filter models.DashboardFilter) (*models.Dashboard, error) {
	articles, err := s.articles.List(ctx, models.ArticleQuery{OrderBy: models.OrderByCreatedAt})
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to load dashboard articles")
		return nil, err
	}

	return &models.Dashboard{
		Articles: articles,
		Visible:  FilterArticles(articles, filter),
		Stats:    ComputeStats(articles),
		Filter:   filter,
	}, nil
}

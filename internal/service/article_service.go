package service

import (
	"context"
	"errors"
	"time"

	"github.com/community-news-api/internal/metrics"
	"github.com/community-news-api/internal/models"
	"github.com/community-news-api/internal/repository"
	"github.com/rs/zerolog"
)

const (
	viewNews     = "news"
	viewFeatured = "featured"
)

// articleService is the concrete implementation of ArticleService
type articleService struct {
	articles repository.ArticleRepository
	now      func() time.Time
	log      zerolog.Logger
}

func newArticleService(articles repository.ArticleRepository, now func() time.Time, log zerolog.Logger) *articleService {
	return &articleService{
		articles: articles,
		now:      now,
		log:      log.With().Str("service", "article").Logger(),
	}
}

// ListPublished returns published articles, newest first
func (s *articleService) ListPublished(ctx context.Context, limit int) *models.ArticleFeed {
	return s.published(ctx, viewNews, limit, models.FallbackArticles)
}

// Featured returns the lead story and the two side stories
func (s *articleService) Featured(ctx context.Context) *models.ArticleFeed {
	return s.published(ctx, viewFeatured, models.FeaturedFallbackCount, models.FeaturedFallback)
}

// published decides the source once: live rows, or the whole fallback set
func (s *articleService) published(ctx context.Context, view string, limit int, fallback func(time.Time) []*models.Article) *models.ArticleFeed {
	status := models.StatusPublished
	articles, err := s.articles.List(ctx, models.ArticleQuery{
		Status:  &status,
		OrderBy: models.OrderByPublishedAt,
		Limit:   limit,
	})

	switch {
	case err != nil:
		s.log.Warn().Err(err).Str("view", view).Msg("Article store unavailable, serving fallback articles")
	case len(articles) == 0:
		s.log.Info().Str("view", view).Msg("No published articles, serving fallback articles")
	default:
		return &models.ArticleFeed{Articles: articles, Source: models.SourceLive}
	}

	metrics.RecordFallback(view)
	return &models.ArticleFeed{
		Articles: fallback(s.now()),
		Source:   models.SourceFallback,
		DemoMode: true,
	}
}

// GetArticle returns one article with its derived fields
func (s *articleService) GetArticle(ctx context.Context, id int64) (*models.ArticleDetail, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			s.log.Error().Err(err).Int64("article_id", id).Msg("Failed to load article")
		}
		return nil, err
	}

	return &models.ArticleDetail{
		Article:     article,
		ReadMinutes: ReadMinutes(article.Content),
		DisplayDate: article.DisplayDate(),
	}, nil
}

package service_test

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/community-news-api/internal/mocks"
	"github.com/community-news-api/internal/models"
	"github.com/community-news-api/internal/repository"
	"github.com/community-news-api/internal/service"
)

func benchArticles(n int) []*models.Article {
	categories := models.Categories
	articles := make([]*models.Article, n)
	for i := 0; i < n; i++ {
		status := models.StatusPublished
		if i%3 == 0 {
			status = models.StatusDraft
		}
		articles[i] = &models.Article{
			ID:        int64(i + 1),
			Title:     fmt.Sprintf("Neighbourhood story %04d", i),
			Content:   strings.Repeat("<p>Residents gathered at the park.</p>", 20),
			Category:  categories[i%len(categories)],
			Author:    "Bench",
			Status:    status,
			Views:     int64(i * 7),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
	}
	return articles
}

// BenchmarkStreamArticles benchmarks the ndjson export
func BenchmarkStreamArticles(b *testing.B) {
	repo := mocks.NewMockArticleRepository()
	repo.Seed(benchArticles(1000)...)
	svcs := service.NewServices(service.Deps{
		Repos:  &repository.Repositories{Article: repo},
		Images: mocks.NewMockImageStore(),
		Web:    mocks.NewMockWebSearcher(`{}`),
	}, zerolog.Nop())

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		w := httptest.NewRecorder()
		if err := svcs.Export.StreamArticles(context.Background(), w, "ndjson"); err != nil {
			b.Fatal(err)
		}
	}

	b.ReportMetric(float64(1000*b.N)/b.Elapsed().Seconds(), "rows/sec")
}

// BenchmarkFilterArticles benchmarks the dashboard filters over a full fetch
func BenchmarkFilterArticles(b *testing.B) {
	articles := benchArticles(1000)
	filter := models.DashboardFilter{Search: "story 01", Category: models.FilterAll, Status: "published"}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		service.FilterArticles(articles, filter)
		service.ComputeStats(articles)
	}
}

// BenchmarkDeriveExcerpt benchmarks HTML stripping for excerpts
func BenchmarkDeriveExcerpt(b *testing.B) {
	content := strings.Repeat("<p>Local <b>market</b> reopens with <a href=\"#\">new stalls</a>.</p>", 50)

	b.ReportAllocs()
	b.SetBytes(int64(len(content)))

	for i := 0; i < b.N; i++ {
		service.DeriveExcerpt(content)
	}
}

package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/community-news-api/internal/database"
	"github.com/community-news-api/internal/models"
)

var columnNames = []string{
	"id", "title", "content", "excerpt", "category", "tags", "author", "status", "featured",
	"image_url", "seo_title", "seo_description", "views", "created_at", "updated_at", "published_at",
}

func newMockRepo(t *testing.T) (ArticleRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewArticleRepo(database.Wrap(db, zerolog.Nop())), mock
}

func articleRow(id int64, title string, status models.ArticleStatus, publishedAt interface{}) []driver.Value {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return []driver.Value{
		id, title, "<p>body</p>", "short", "Community", "{local,news}", "Kim", string(status), false,
		nil, nil, nil, int64(42), now, now, publishedAt,
	}
}

func TestBuildListQuery_PublishedOrdering(t *testing.T) {
	status := models.StatusPublished
	query, args := buildListQuery(models.ArticleQuery{
		Status:  &status,
		OrderBy: models.OrderByPublishedAt,
		Limit:   3,
	})

	assert.Contains(t, query, "WHERE status = $1")
	assert.Contains(t, query, "ORDER BY published_at DESC NULLS LAST, id DESC")
	assert.Contains(t, query, "LIMIT $2")
	assert.Equal(t, []interface{}{"published", 3}, args)
}

func TestBuildListQuery_MatchAndDefaultOrder(t *testing.T) {
	query, args := buildListQuery(models.ArticleQuery{Match: "50%_off"})

	assert.Contains(t, query, "(title ILIKE $1 OR content ILIKE $1)")
	assert.Contains(t, query, "ORDER BY created_at DESC, id DESC")
	assert.NotContains(t, query, "LIMIT")
	assert.Equal(t, []interface{}{`%50\%\_off%`}, args)
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"100%", `100\%`},
		{"a_b", `a\_b`},
		{`back\slash`, `back\\slash`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeLike(tt.in))
		})
	}
}

func TestArticleRepo_List(t *testing.T) {
	repo, mock := newMockRepo(t)
	published := time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(columnNames).
		AddRow(articleRow(2, "Night market opens", models.StatusPublished, published)...).
		AddRow(articleRow(1, "Library hours", models.StatusPublished, published.Add(-time.Hour))...)

	mock.ExpectQuery(regexp.QuoteMeta("FROM articles WHERE status = $1 ORDER BY published_at DESC")).
		WithArgs("published").
		WillReturnRows(rows)

	status := models.StatusPublished
	articles, err := repo.List(context.Background(), models.ArticleQuery{Status: &status, OrderBy: models.OrderByPublishedAt})
	require.NoError(t, err)
	require.Len(t, articles, 2)

	first := articles[0]
	assert.Equal(t, int64(2), first.ID)
	assert.Equal(t, "Night market opens", first.Title)
	assert.Equal(t, []string{"local", "news"}, first.Tags)
	require.NotNil(t, first.Excerpt)
	assert.Equal(t, "short", *first.Excerpt)
	assert.Nil(t, first.ImageURL)
	require.NotNil(t, first.PublishedAt)
	assert.True(t, first.PublishedAt.Equal(published))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepo_List_EmptyIsNotNil(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows(columnNames))

	articles, err := repo.List(context.Background(), models.ArticleQuery{})
	require.NoError(t, err)
	assert.NotNil(t, articles)
	assert.Empty(t, articles)
}

func TestArticleRepo_List_StoreError(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT").WillReturnError(errors.New("connection refused"))

	_, err := repo.List(context.Background(), models.ArticleQuery{})
	require.Error(t, err)

	var storeErr *models.StoreError
	require.True(t, errors.As(err, &storeErr))
	assert.Equal(t, "list", storeErr.Op)
}

func TestArticleRepo_GetByID(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM articles WHERE id = $1")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(columnNames).AddRow(articleRow(7, "Draft piece", models.StatusDraft, nil)...))

	article, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDraft, article.Status)
	assert.Nil(t, article.PublishedAt)
}

func TestArticleRepo_GetByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT").WithArgs(int64(99)).WillReturnRows(sqlmock.NewRows(columnNames))

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestArticleRepo_Create(t *testing.T) {
	repo, mock := newMockRepo(t)
	created := time.Date(2024, 3, 3, 8, 0, 0, 0, time.UTC)
	published := created

	article := &models.Article{
		Title:       "Festival recap",
		Content:     "<p>It was great</p>",
		Category:    "Arts",
		Tags:        []string{"festival", "music"},
		Author:      "Lee",
		Status:      models.StatusPublished,
		PublishedAt: &published,
	}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO articles")).
		WithArgs(
			"Festival recap", "<p>It was great</p>", sqlmock.AnyArg(), "Arts", sqlmock.AnyArg(),
			"Lee", "published", false, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
		).
		WillReturnRows(sqlmock.NewRows([]string{"id", "views", "created_at", "updated_at"}).
			AddRow(int64(11), int64(0), created, created))

	require.NoError(t, repo.Create(context.Background(), article))
	assert.Equal(t, int64(11), article.ID)
	assert.Equal(t, int64(0), article.Views)
	assert.True(t, article.CreatedAt.Equal(created))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepo_Create_ConstraintViolation(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("INSERT INTO articles").
		WillReturnError(&pq.Error{Code: "23514", Constraint: "articles_status_check"})

	err := repo.Create(context.Background(), &models.Article{Title: "x", Status: "bogus"})
	require.Error(t, err)

	var storeErr *models.StoreError
	require.True(t, errors.As(err, &storeErr))
	assert.Equal(t, "insert", storeErr.Op)
	assert.Contains(t, err.Error(), "articles_status_check")
}

func TestArticleRepo_Delete(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM articles WHERE id = $1")).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(context.Background(), 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepo_Delete_Missing(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec("DELETE FROM articles").
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 404), models.ErrNotFound)
}

func TestArticleRepo_Count(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM articles")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestArticleRepo_StreamAll_StopsOnCallbackError(t *testing.T) {
	repo, mock := newMockRepo(t)
	rows := sqlmock.NewRows(columnNames).
		AddRow(articleRow(1, "one", models.StatusPublished, nil)...).
		AddRow(articleRow(2, "two", models.StatusPublished, nil)...)
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at, id")).WillReturnRows(rows)

	stop := errors.New("stop")
	seen := 0
	err := repo.StreamAll(context.Background(), func(a *models.Article) error {
		seen++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, seen)
}

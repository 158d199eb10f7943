package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/community-news-api/internal/database"
	"github.com/community-news-api/internal/models"
	"github.com/lib/pq"
)

const articleColumns = `id, title, content, excerpt, category, tags, author, status, featured,
		image_url, seo_title, seo_description, views, created_at, updated_at, published_at`

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanArticle(row rowScanner) (*models.Article, error) {
	var (
		article                              models.Article
		excerpt, imageURL, seoTitle, seoDesc sql.NullString
		tags                                 pq.StringArray
		publishedAt                          sql.NullTime
	)

	err := row.Scan(
		&article.ID, &article.Title, &article.Content, &excerpt, &article.Category, &tags,
		&article.Author, &article.Status, &article.Featured, &imageURL, &seoTitle, &seoDesc,
		&article.Views, &article.CreatedAt, &article.UpdatedAt, &publishedAt,
	)
	if err != nil {
		return nil, err
	}

	article.Excerpt = nullString(excerpt)
	article.ImageURL = nullString(imageURL)
	article.SEOTitle = nullString(seoTitle)
	article.SEODescription = nullString(seoDesc)
	if tags != nil {
		article.Tags = []string(tags)
	}
	if publishedAt.Valid {
		t := publishedAt.Time
		article.PublishedAt = &t
	}

	return &article, nil
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// escapeLike makes user input literal inside an ILIKE pattern
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// buildListQuery renders the SELECT for an ArticleQuery
func buildListQuery(q models.ArticleQuery) (string, []interface{}) {
	var (
		where []string
		args  []interface{}
	)

	if q.Status != nil {
		args = append(args, string(*q.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if q.Match != "" {
		args = append(args, "%"+escapeLike(q.Match)+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR content ILIKE $%d)", n, n))
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(articleColumns)
	sb.WriteString(" FROM articles")
	if len(where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(where, " AND "))
	}

	switch q.OrderBy {
	case models.OrderByPublishedAt:
		sb.WriteString(" ORDER BY published_at DESC NULLS LAST, id DESC")
	default:
		sb.WriteString(" ORDER BY created_at DESC, id DESC")
	}

	if q.Limit > 0 {
		args = append(args, q.Limit)
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	}

	return sb.String(), args
}

// List returns the articles matching q
func (r *articleRepo) List(ctx context.Context, q models.ArticleQuery) ([]*models.Article, error) {
	query, args := buildListQuery(q)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &models.StoreError{Op: "list", Err: err}
	}
	defer rows.Close()

	articles := make([]*models.Article, 0)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, &models.StoreError{Op: "list", Err: err}
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, &models.StoreError{Op: "list", Err: err}
	}

	return articles, nil
}

// GetByID retrieves an article by ID
func (r *articleRepo) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	query := "SELECT " + articleColumns + " FROM articles WHERE id = $1"

	article, err := scanArticle(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, &models.StoreError{Op: "get", Err: err}
	}
	return article, nil
}

// Create inserts a new article and fills in the store-assigned fields
func (r *articleRepo) Create(ctx context.Context, article *models.Article) error {
	query := `
		INSERT INTO articles (title, content, excerpt, category, tags, author, status, featured,
			image_url, seo_title, seo_description, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, views, created_at, updated_at
	`
	var tags interface{}
	if article.Tags != nil {
		tags = pq.Array(article.Tags)
	}

	err := r.db.QueryRowContext(ctx, query,
		article.Title, article.Content, article.Excerpt, article.Category, tags,
		article.Author, string(article.Status), article.Featured,
		article.ImageURL, article.SEOTitle, article.SEODescription, article.PublishedAt,
	).Scan(&article.ID, &article.Views, &article.CreatedAt, &article.UpdatedAt)
	if err != nil {
		return &models.StoreError{Op: "insert", Err: describePQError(err)}
	}
	return nil
}

// Delete removes the row unconditionally
func (r *articleRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM articles WHERE id = $1", id)
	if err != nil {
		return &models.StoreError{Op: "delete", Err: err}
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return &models.StoreError{Op: "delete", Err: err}
	}
	if affected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Count returns the total number of articles
func (r *articleRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles").Scan(&count); err != nil {
		return 0, &models.StoreError{Op: "count", Err: err}
	}
	return count, nil
}

// StreamAll streams all articles for export, oldest first
func (r *articleRepo) StreamAll(ctx context.Context, callback func(*models.Article) error) error {
	query := "SELECT " + articleColumns + " FROM articles ORDER BY created_at, id"
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return &models.StoreError{Op: "stream", Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return &models.StoreError{Op: "stream", Err: err}
		}
		if err := callback(article); err != nil {
			return err
		}
	}

	if err := rows.Err(); err != nil {
		return &models.StoreError{Op: "stream", Err: err}
	}
	return nil
}

// describePQError keeps the constraint name of integrity violations in the cause
func describePQError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	if pqErr.Code.Class() == "23" {
		return fmt.Errorf("%s (constraint %s): %w", pqErr.Code.Name(), pqErr.Constraint, err)
	}
	return err
}

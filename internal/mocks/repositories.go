package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/community-news-api/internal/models"
	"github.com/community-news-api/internal/repository"
)

// MockArticleRepository is an in-memory ArticleRepository
type MockArticleRepository struct {
	mu       sync.Mutex
	Articles map[int64]*models.Article
	nextID   int64

	ListErr   error
	GetErr    error
	CreateErr error
	DeleteErr error

	// ListFunc overrides List when set
	ListFunc    func(ctx context.Context, q models.ArticleQuery) ([]*models.Article, error)
	ListCalls   int
	CreateCalls int
	DeleteCalls int
}

// Verify interface compliance
var _ repository.ArticleRepository = (*MockArticleRepository)(nil)

func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{
		Articles: make(map[int64]*models.Article),
		nextID:   1,
	}
}

// Seed stores articles as given, keeping their IDs
func (m *MockArticleRepository) Seed(articles ...*models.Article) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range articles {
		if a.ID == 0 {
			a.ID = m.nextID
		}
		if a.ID >= m.nextID {
			m.nextID = a.ID + 1
		}
		m.Articles[a.ID] = a
	}
}

func (m *MockArticleRepository) List(ctx context.Context, q models.ArticleQuery) ([]*models.Article, error) {
	m.mu.Lock()
	m.ListCalls++
	listFunc := m.ListFunc
	m.mu.Unlock()

	if listFunc != nil {
		return listFunc(ctx, q)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}

	match := strings.ToLower(q.Match)
	result := make([]*models.Article, 0, len(m.Articles))
	for _, a := range m.Articles {
		if q.Status != nil && a.Status != *q.Status {
			continue
		}
		if match != "" &&
			!strings.Contains(strings.ToLower(a.Title), match) &&
			!strings.Contains(strings.ToLower(a.Content), match) {
			continue
		}
		result = append(result, a)
	}

	sort.Slice(result, func(i, j int) bool {
		if q.OrderBy == models.OrderByPublishedAt {
			pi, pj := result[i].PublishedAt, result[j].PublishedAt
			switch {
			case pi == nil && pj != nil:
				return false
			case pi != nil && pj == nil:
				return true
			case pi != nil && pj != nil && !pi.Equal(*pj):
				return pi.After(*pj)
			}
			return result[i].ID > result[j].ID
		}
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})

	if q.Limit > 0 && len(result) > q.Limit {
		result = result[:q.Limit]
	}
	return result, nil
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	a, ok := m.Articles[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return a, nil
}

func (m *MockArticleRepository) Create(ctx context.Context, article *models.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls++
	if m.CreateErr != nil {
		return m.CreateErr
	}
	now := time.Now()
	article.ID = m.nextID
	m.nextID++
	article.Views = 0
	article.CreatedAt = now
	article.UpdatedAt = now
	m.Articles[article.ID] = article
	return nil
}

func (m *MockArticleRepository) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls++
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	if _, ok := m.Articles[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.Articles, id)
	return nil
}

func (m *MockArticleRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Articles), nil
}

func (m *MockArticleRepository) StreamAll(ctx context.Context, callback func(*models.Article) error) error {
	m.mu.Lock()
	all := make([]*models.Article, 0, len(m.Articles))
	for _, a := range m.Articles {
		all = append(all, a)
	}
	m.mu.Unlock()

	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	for _, a := range all {
		if err := callback(a); err != nil {
			return err
		}
	}
	return nil
}

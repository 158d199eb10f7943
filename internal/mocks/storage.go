package mocks

import (
	"context"
	"sync"

	"github.com/community-news-api/internal/models"
	"github.com/community-news-api/internal/storage"
)

// MockImageStore keeps uploaded images in memory
type MockImageStore struct {
	mu        sync.Mutex
	Objects   map[string][]byte
	Deleted   []string
	UploadErr error
	DeleteErr error
	BaseURL   string
}

// Verify interface compliance
var _ storage.ImageStore = (*MockImageStore)(nil)

func NewMockImageStore() *MockImageStore {
	return &MockImageStore{
		Objects: make(map[string][]byte),
		BaseURL: "https://storage.test",
	}
}

func (m *MockImageStore) Upload(ctx context.Context, key, contentType string, body []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UploadErr != nil {
		return "", &models.UploadError{Key: key, Err: m.UploadErr}
	}
	m.Objects[key] = body
	return storage.PublicURL(m.BaseURL, "article-images", key), nil
}

func (m *MockImageStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.Objects, key)
	m.Deleted = append(m.Deleted, key)
	return nil
}

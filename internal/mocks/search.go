package mocks

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/community-news-api/internal/search"
)

// MockWebSearcher returns a canned provider body
type MockWebSearcher struct {
	mu      sync.Mutex
	Body    json.RawMessage
	Err     error
	Queries []string

	// SearchFunc overrides Search when set
	SearchFunc func(ctx context.Context, query string) (json.RawMessage, error)
}

// Verify interface compliance
var _ search.WebSearcher = (*MockWebSearcher)(nil)

func NewMockWebSearcher(body string) *MockWebSearcher {
	return &MockWebSearcher{Body: json.RawMessage(body)}
}

func (m *MockWebSearcher) Search(ctx context.Context, query string) (json.RawMessage, error) {
	m.mu.Lock()
	m.Queries = append(m.Queries, query)
	fn := m.SearchFunc
	body, err := m.Body, m.Err
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, query)
	}
	if err != nil {
		return nil, err
	}
	return body, nil
}

// QueryCount returns how many searches were issued
func (m *MockWebSearcher) QueryCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Queries)
}

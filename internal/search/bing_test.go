package search

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/community-news-api/internal/config"
	"github.com/community-news-api/internal/models"
)

const sampleBody = `{"_type":"SearchResponse","webPages":{"value":[
	{"name":"Bay Area Korean Festival","url":"https://example.com/a","displayUrl":"example.com/a","snippet":"Annual festival"},
	{"name":"Oakland Koreatown","url":"https://example.com/b","displayUrl":"example.com/b","snippet":"Neighborhood guide"}
]}}`

func newTestClient(endpoint string, attempts int) *BingClient {
	c := NewBingClient(&config.SearchConfig{
		APIKey:      "test-key",
		Endpoint:    endpoint,
		Timeout:     2 * time.Second,
		MaxAttempts: attempts,
	}, zerolog.Nop())
	c.retryInterval = time.Millisecond
	return c
}

func TestBingClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("Ocp-Apim-Subscription-Key"))
		assert.Equal(t, "korean festival & food", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleBody))
	}))
	defer server.Close()

	body, err := newTestClient(server.URL, 1).Search(context.Background(), "korean festival & food")
	require.NoError(t, err)
	assert.JSONEq(t, sampleBody, string(body))
}

func TestBingClient_Search_RetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(sampleBody))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, 2).Search(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestBingClient_Search_ClientErrorNotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, 3).Search(context.Background(), "q")
	require.Error(t, err)

	var upstream *models.UpstreamSearchError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusUnauthorized, upstream.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestBingClient_Search_NonJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>maintenance</html>"))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, 1).Search(context.Background(), "q")
	var upstream *models.UpstreamSearchError
	assert.True(t, errors.As(err, &upstream))
}

func TestDecodeWebResults(t *testing.T) {
	results, err := DecodeWebResults(json.RawMessage(sampleBody))
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Bay Area Korean Festival", results[0].Name)
	assert.Equal(t, "example.com/b", results[1].DisplayURL)
}

func TestDecodeWebResults_NoWebPages(t *testing.T) {
	results, err := DecodeWebResults(json.RawMessage(`{"_type":"SearchResponse"}`))
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)

	_, err = DecodeWebResults(json.RawMessage(`not json`))
	assert.Error(t, err)
}

package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog"

	"github.com/community-news-api/internal/config"
	"github.com/community-news-api/internal/models"
)

const (
	subscriptionKeyHeader = "Ocp-Apim-Subscription-Key"
	maxResponseBytes      = 4 << 20
)

// WebSearcher queries an external web search provider and returns its
// response body untouched
type WebSearcher interface {
	Search(ctx context.Context, query string) (json.RawMessage, error)
}

// BingClient calls the Bing Web Search v7 API
type BingClient struct {
	endpoint      string
	apiKey        string
	client        *http.Client
	maxAttempts   int
	retryInterval time.Duration
	log           zerolog.Logger
}

// NewBingClient creates a client with the configured timeout
func NewBingClient(cfg *config.SearchConfig, log zerolog.Logger) *BingClient {
	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	return &BingClient{
		endpoint:      cfg.Endpoint,
		apiKey:        cfg.APIKey,
		client:        &http.Client{Timeout: cfg.Timeout},
		maxAttempts:   attempts,
		retryInterval: 250 * time.Millisecond,
		log:           log.With().Str("component", "bing").Logger(),
	}
}

func (c *BingClient) newBackOff() *backoff.ExponentialBackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.retryInterval
	bo.MaxInterval = 2 * time.Second
	bo.Multiplier = 2
	return bo
}

// Search forwards the query. Transport failures, 429 and 5xx are retried;
// anything else that is not 2xx fails immediately.
func (c *BingClient) Search(ctx context.Context, query string) (json.RawMessage, error) {
	bo := c.newBackOff()

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		body, retry, err := c.fetch(ctx, query)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retry || attempt == c.maxAttempts {
			break
		}

		delay := bo.NextBackOff()
		c.log.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", delay).Msg("Web search failed, retrying")
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, &models.UpstreamSearchError{Err: ctx.Err()}
		}
	}

	c.log.Error().Err(lastErr).Str("query", query).Msg("Web search failed")
	return nil, lastErr
}

func (c *BingClient) fetch(ctx context.Context, query string) (json.RawMessage, bool, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, false, &models.UpstreamSearchError{Err: fmt.Errorf("invalid endpoint: %w", err)}
	}
	params := u.Query()
	params.Set("q", query)
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, false, &models.UpstreamSearchError{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set(subscriptionKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		retry := !errors.Is(err, context.Canceled)
		return nil, retry, &models.UpstreamSearchError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		retry := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return nil, retry, &models.UpstreamSearchError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, true, &models.UpstreamSearchError{StatusCode: resp.StatusCode, Err: err}
	}
	if !json.Valid(body) {
		return nil, false, &models.UpstreamSearchError{StatusCode: resp.StatusCode, Err: errors.New("response is not JSON")}
	}
	return json.RawMessage(body), false, nil
}

package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/community-news-api/internal/locale"
	"github.com/community-news-api/internal/metrics"
	"github.com/community-news-api/internal/models"
	"github.com/community-news-api/internal/repository"
	"github.com/community-news-api/internal/search"
	"github.com/rs/zerolog"
)

const (
	sourceInternal = "internal"
	sourceWeb      = "web"
	sourceProxy    = "proxy"
)

// searchService is the concrete implementation of SearchService
type searchService struct {
	articles repository.ArticleRepository
	web      search.WebSearcher
	log      zerolog.Logger
}

func newSearchService(articles repository.ArticleRepository, web search.WebSearcher, log zerolog.Logger) *searchService {
	return &searchService{
		articles: articles,
		web:      web,
		log:      log.With().Str("service", "search").Logger(),
	}
}

// NewSession creates an idle search session whose error messages use lang
func (s *searchService) NewSession(lang string) *SearchSession {
	return &SearchSession{
		articles: s.articles,
		web:      s.web,
		lang:     lang,
		log:      s.log,
		internal: models.SectionState[*models.Article]{Items: []*models.Article{}},
		external: models.SectionState[models.WebResult]{Items: []models.WebResult{}},
	}
}

// Search runs one query through a fresh session and waits for both sections
func (s *searchService) Search(ctx context.Context, query, lang string) *models.SearchSnapshot {
	session := s.NewSession(lang)
	session.Submit(ctx, query)
	session.Wait()
	return session.Snapshot()
}

// Proxy forwards the query to the web search provider
func (s *searchService) Proxy(ctx context.Context, query string) (json.RawMessage, error) {
	body, err := s.web.Search(ctx, query)
	metrics.RecordSearchLookup(sourceProxy, err)
	return body, err
}

// SearchSession holds the two independent result sections of a federated
// search. Lookups are never cancelled by a newer Submit; whichever lookup
// finishes last writes its section.
type SearchSession struct {
	articles repository.ArticleRepository
	web      search.WebSearcher
	lang     string
	log      zerolog.Logger

	mu       sync.Mutex
	query    string
	internal models.SectionState[*models.Article]
	external models.SectionState[models.WebResult]
	pending  []*errgroup.Group
}

// Submit starts both lookups for query. A blank query issues nothing.
func (s *SearchSession) Submit(ctx context.Context, query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}

	s.mu.Lock()
	s.query = query
	s.internal.Loading, s.internal.Error = true, ""
	s.external.Loading, s.external.Error = true, ""
	// no WithContext: a failing lookup must not cancel the other
	g := new(errgroup.Group)
	s.pending = append(s.pending, g)
	s.mu.Unlock()

	g.Go(func() error {
		s.lookupInternal(ctx, query)
		return nil
	})
	g.Go(func() error {
		s.lookupWeb(ctx, query)
		return nil
	})
}

// Wait blocks until every lookup started so far has settled
func (s *SearchSession) Wait() {
	for {
		s.mu.Lock()
		pending := s.pending
		s.pending = nil
		s.mu.Unlock()

		if len(pending) == 0 {
			return
		}
		for _, g := range pending {
			_ = g.Wait()
		}
	}
}

// Snapshot copies the current state. Internal results come first. Total is
// set only when both sections settled without error.
func (s *SearchSession) Snapshot() *models.SearchSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := &models.SearchSnapshot{
		Query:    s.query,
		Internal: s.internal,
		External: s.external,
	}
	snap.Internal.Items = append([]*models.Article{}, s.internal.Items...)
	snap.External.Items = append([]models.WebResult{}, s.external.Items...)

	if s.query != "" && s.internal.Settled() && s.external.Settled() {
		total := len(snap.Internal.Items) + len(snap.External.Items)
		snap.Total = &total
	}
	return snap
}

func (s *SearchSession) lookupInternal(ctx context.Context, query string) {
	articles, err := s.articles.List(ctx, models.ArticleQuery{
		Match:   query,
		OrderBy: models.OrderByPublishedAt,
	})
	metrics.RecordSearchLookup(sourceInternal, err)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.internal.Loading = false
	if err != nil {
		s.log.Error().Err(err).Str("query", query).Msg("Internal search failed")
		s.internal.Error = locale.T(s.lang, locale.InternalSearchFailed)
		s.internal.Items = []*models.Article{}
		return
	}
	s.internal.Error = ""
	s.internal.Items = articles
}

func (s *SearchSession) lookupWeb(ctx context.Context, query string) {
	var results []models.WebResult
	raw, err := s.web.Search(ctx, query)
	if err == nil {
		results, err = search.DecodeWebResults(raw)
	}
	metrics.RecordSearchLookup(sourceWeb, err)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.external.Loading = false
	if err != nil {
		s.log.Error().Err(err).Str("query", query).Msg("Web search failed")
		s.external.Error = locale.T(s.lang, locale.WebSearchFailed)
		s.external.Items = []models.WebResult{}
		return
	}
	s.external.Error = ""
	s.external.Items = results
}

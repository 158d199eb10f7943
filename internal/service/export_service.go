package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/community-news-api/internal/models"
	"github.com/community-news-api/internal/repository"
	"github.com/rs/zerolog"
)

// ErrUnsupportedFormat is returned for export formats other than ndjson and json
var ErrUnsupportedFormat = errors.New("unsupported export format")

const flushEvery = 100

// exportService is the concrete implementation of ExportService
type exportService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

// newExportService creates a new ExportService
func newExportService(repos *repository.Repositories, log zerolog.Logger) *exportService {
	return &exportService{
		repos: repos,
		log:   log.With().Str("service", "export").Logger(),
	}
}

// StreamArticles writes every article, oldest first, as ndjson or a json array
func (s *exportService) StreamArticles(ctx context.Context, w http.ResponseWriter, format string) error {
	s.log.Info().Str("format", format).Msg("Starting articles export")

	var count int
	var err error
	switch format {
	case "ndjson", "":
		count, err = s.streamNDJSON(ctx, w)
	case "json":
		count, err = s.streamJSON(ctx, w)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	if err != nil {
		s.log.Error().Err(err).Int("count", count).Msg("Articles export aborted")
		return err
	}
	s.log.Info().Int("count", count).Msg("Articles export completed")
	return nil
}

func (s *exportService) streamNDJSON(ctx context.Context, w http.ResponseWriter) (int, error) {
	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Content-Disposition", "attachment; filename=articles.ndjson")

	flusher, _ := w.(http.Flusher)
	enc := json.NewEncoder(w)
	count := 0

	err := s.repos.Article.StreamAll(ctx, func(article *models.Article) error {
		if err := enc.Encode(article); err != nil {
			return err
		}
		count++

		// Flush periodically for streaming
		if count%flushEvery == 0 && flusher != nil {
			flusher.Flush()
		}
		return nil
	})
	return count, err
}

func (s *exportService) streamJSON(ctx context.Context, w http.ResponseWriter) (int, error) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=articles.json")

	if _, err := w.Write([]byte("[")); err != nil {
		return 0, err
	}
	count := 0

	err := s.repos.Article.StreamAll(ctx, func(article *models.Article) error {
		data, err := json.Marshal(article)
		if err != nil {
			return err
		}
		if count > 0 {
			if _, err := w.Write([]byte(",")); err != nil {
				return err
			}
		}
		count++
		_, err = w.Write(data)
		return err
	})
	if err != nil {
		return count, err
	}

	_, err = w.Write([]byte("]"))
	return count, err
}

// GetCount returns the number of stored articles
func (s *exportService) GetCount(ctx context.Context) (int, error) {
	return s.repos.Article.Count(ctx)
}

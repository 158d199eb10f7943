package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/community-news-api/internal/metrics"
	"github.com/community-news-api/internal/models"
	"github.com/community-news-api/internal/repository"
	"github.com/community-news-api/internal/storage"
	"github.com/community-news-api/internal/validation"
	"github.com/rs/zerolog"
)

const cleanupTimeout = 10 * time.Second

// adminService is the concrete implementation of AdminService
type adminService struct {
	articles  repository.ArticleRepository
	images    storage.ImageStore
	validator *validation.Validator
	now       func() time.Time
	log       zerolog.Logger
}

func newAdminService(articles repository.ArticleRepository, images storage.ImageStore, validator *validation.Validator, now func() time.Time, log zerolog.Logger) *adminService {
	return &adminService{
		articles:  articles,
		images:    images,
		validator: validator,
		now:       now,
		log:       log.With().Str("service", "admin").Logger(),
	}
}

// NewSubmission starts a form in the editing state
func (s *adminService) NewSubmission() *ArticleSubmission {
	return &ArticleSubmission{svc: s, state: models.FormStateEditing}
}

// Delete removes an article once the caller has confirmed
func (s *adminService) Delete(ctx context.Context, id int64, confirmed bool) error {
	if !confirmed {
		return models.ErrConfirmationRequired
	}

	if err := s.articles.Delete(ctx, id); err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			s.log.Error().Err(err).Int64("article_id", id).Msg("Failed to delete article")
		}
		return err
	}

	s.log.Info().Int64("article_id", id).Msg("Article deleted")
	return nil
}

// ArticleSubmission is one admin article form:
// editing -> submitting -> success, or back to editing on failure.
type ArticleSubmission struct {
	svc *adminService

	mu      sync.Mutex
	state   models.FormState
	lastErr error
}

// State returns the current form state
func (f *ArticleSubmission) State() models.FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// LastError returns the error of the last failed submit, if any
func (f *ArticleSubmission) LastError() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// Submit validates, uploads the optional image and inserts the article.
// It is rejected with ErrNotEditing unless the form is editing.
func (f *ArticleSubmission) Submit(ctx context.Context, draft *models.ArticleDraft, image *models.ImageUpload) (*models.Article, error) {
	f.mu.Lock()
	if f.state != models.FormStateEditing {
		f.mu.Unlock()
		return nil, models.ErrNotEditing
	}
	f.state = models.FormStateSubmitting
	f.lastErr = nil
	f.mu.Unlock()

	article, err := f.svc.create(ctx, draft, image)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.state = models.FormStateEditing
		f.lastErr = err
		return nil, err
	}
	f.state = models.FormStateSuccess
	return article, nil
}

func (s *adminService) create(ctx context.Context, draft *models.ArticleDraft, image *models.ImageUpload) (*models.Article, error) {
	if errs := s.preflight(draft, image); len(errs) > 0 {
		s.log.Info().Strs("fields", errs.Fields()).Msg("Article submission rejected")
		return nil, errs
	}

	status := models.StatusDraft
	if draft.Status != "" {
		status, _ = models.ParseStatus(draft.Status)
	}
	now := s.now()

	var imageKey string
	var imageURL *string
	if image != nil {
		imageKey = storage.ObjectKey(now, image.Filename)
		url, err := s.images.Upload(ctx, imageKey, image.ContentType, image.Body)
		metrics.RecordUpload(err)
		if err != nil {
			s.log.Error().Err(err).Str("key", imageKey).Msg("Image upload failed, article not created")
			return nil, err
		}
		imageURL = &url
	}

	excerpt := models.StringPtr(draft.Excerpt)
	if excerpt == nil {
		excerpt = models.StringPtr(DeriveExcerpt(draft.Content))
	}

	article := &models.Article{
		Title:          strings.TrimSpace(draft.Title),
		Content:        draft.Content,
		Excerpt:        excerpt,
		Category:       draft.Category,
		Tags:           models.SplitTags(draft.Tags),
		Author:         strings.TrimSpace(draft.Author),
		Status:         status,
		Featured:       bool(draft.Featured),
		ImageURL:       imageURL,
		SEOTitle:       models.StringPtr(draft.SEOTitle),
		SEODescription: models.StringPtr(draft.SEODescription),
	}
	if status == models.StatusPublished {
		publishedAt := now
		article.PublishedAt = &publishedAt
	}

	if err := s.articles.Create(ctx, article); err != nil {
		s.log.Error().Err(err).Str("title", article.Title).Msg("Failed to insert article")
		if imageKey != "" {
			s.removeOrphan(ctx, imageKey)
		}
		return nil, err
	}

	s.log.Info().
		Int64("article_id", article.ID).
		Str("status", string(article.Status)).
		Bool("image", imageURL != nil).
		Msg("Article created")
	return article, nil
}

func (s *adminService) preflight(draft *models.ArticleDraft, image *models.ImageUpload) models.ValidationErrors {
	errs := s.validator.ValidateDraft(draft)
	if image != nil && !strings.HasPrefix(image.ContentType, "image/") {
		errs = append(errs, models.ValidationError{
			Field:   "image",
			Message: "image must be an image file",
			Value:   image.ContentType,
		})
	}
	return errs
}

// removeOrphan deletes an uploaded image whose article was never inserted.
// Failure is only logged; the insert error is what the caller sees.
func (s *adminService) removeOrphan(ctx context.Context, key string) {
	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()

	if err := s.images.Delete(cleanupCtx, key); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("Failed to remove orphaned image")
		return
	}
	s.log.Warn().Str("key", key).Msg("Removed orphaned image after failed insert")
}

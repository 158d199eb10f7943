package api

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/community-news-api/internal/config"
	"github.com/community-news-api/internal/gate"
	"github.com/community-news-api/internal/locale"
	"github.com/community-news-api/internal/models"
	"github.com/community-news-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	imageField    = "image"
	dashboardPath = "/admin/dashboard"
	formOverhead  = 1 << 20
)

// AdminHandler handles the demo-gated admin endpoints
type AdminHandler struct {
	services *service.Services
	gate     *gate.DemoGate
	cfg      *config.Config
	log      zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(services *service.Services, g *gate.DemoGate, cfg *config.Config, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		services: services,
		gate:     g,
		cfg:      cfg,
		log:      log.With().Str("handler", "admin").Logger(),
	}
}

// Login handles POST /v1/admin/login
func (h *AdminHandler) Login(c *gin.Context) {
	var req struct {
		Passcode string `json:"passcode" form:"passcode"`
	}
	if err := c.ShouldBind(&req); err != nil || !h.gate.Check(req.Passcode) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": locale.T(language(c), locale.InvalidPasscode)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "next": dashboardPath})
}

// Dashboard handles GET /v1/admin/articles?search=&category=&status=
func (h *AdminHandler) Dashboard(c *gin.Context) {
	var filter models.DashboardFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dashboard, err := h.services.Dashboard.Load(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": locale.T(language(c), locale.LoadFailed)})
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// CreateArticle handles POST /v1/admin/articles
// Accepts multipart form data with an optional image file, or JSON.
func (h *AdminHandler) CreateArticle(c *gin.Context) {
	lang := language(c)
	maxUpload := h.cfg.Storage.MaxUploadSize
	maxBody := maxUpload + formOverhead
	if c.Request.ContentLength > maxBody {
		h.respondTooLarge(c, maxUpload)
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBody)

	var draft models.ArticleDraft
	if err := c.ShouldBind(&draft); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.respondTooLarge(c, maxUpload)
			return
		}
		h.log.Warn().Err(err).Msg("Malformed article submission")
		c.JSON(http.StatusBadRequest, models.SubmissionResponse{
			State:   models.FormStateFailure,
			Message: locale.T(lang, locale.MalformedForm),
		})
		return
	}

	image, status, err := h.readImage(c, maxUpload)
	if err != nil {
		c.JSON(status, models.SubmissionResponse{
			State:   models.FormStateFailure,
			Message: locale.T(lang, locale.UploadFailed),
			Errors:  []models.ValidationError{{Field: imageField, Message: err.Error()}},
		})
		return
	}

	form := h.services.Admin.NewSubmission()
	article, err := form.Submit(c.Request.Context(), &draft, image)
	if err != nil {
		h.respondSubmitError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.SubmissionResponse{
		State:   models.FormStateSuccess,
		Article: article,
		Message: locale.T(lang, locale.ArticleCreated),
		Next:    dashboardPath,
	})
}

// respondTooLarge answers a body over the upload limit as an image failure
func (h *AdminHandler) respondTooLarge(c *gin.Context, maxUpload int64) {
	h.log.Warn().Int64("content_length", c.Request.ContentLength).Msg("Article submission over upload limit")
	c.JSON(http.StatusRequestEntityTooLarge, models.SubmissionResponse{
		State:   models.FormStateFailure,
		Message: locale.T(language(c), locale.UploadFailed),
		Errors:  []models.ValidationError{{Field: imageField, Message: imageTooLarge(maxUpload).Error()}},
	})
}

func imageTooLarge(maxUpload int64) error {
	return fmt.Errorf("image too large, max size is %d MB", maxUpload/(1024*1024))
}

func (h *AdminHandler) respondSubmitError(c *gin.Context, err error) {
	lang := language(c)
	resp := models.SubmissionResponse{State: models.FormStateFailure}

	var validationErrs models.ValidationErrors
	var uploadErr *models.UploadError
	status := http.StatusInternalServerError

	switch {
	case errors.As(err, &validationErrs):
		status = http.StatusBadRequest
		resp.Message = locale.T(lang, locale.ValidationFailed)
		resp.Errors = validationErrs
	case errors.As(err, &uploadErr):
		status = http.StatusBadGateway
		resp.Message = locale.T(lang, locale.UploadFailed)
	case errors.Is(err, models.ErrNotEditing):
		status = http.StatusConflict
		resp.Message = locale.T(lang, locale.GenericFailure)
	default:
		resp.Message = locale.T(lang, locale.CreateFailed)
	}

	c.JSON(status, resp)
}

// readImage returns the optional image part. A missing part is not an error.
func (h *AdminHandler) readImage(c *gin.Context, maxUpload int64) (*models.ImageUpload, int, error) {
	header, err := c.FormFile(imageField)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("unreadable image: %w", err)
	}
	if header.Size > maxUpload {
		return nil, http.StatusRequestEntityTooLarge, imageTooLarge(maxUpload)
	}

	body, err := readPart(header)
	if err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("unreadable image: %w", err)
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(body)
	}

	return &models.ImageUpload{
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Body:        body,
	}, 0, nil
}

func readPart(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

// DeleteArticle handles DELETE /v1/admin/articles/:id?confirm=true
func (h *AdminHandler) DeleteArticle(c *gin.Context) {
	lang := language(c)
	id, ok := articleID(c)
	if !ok {
		return
	}
	confirmed, _ := strconv.ParseBool(c.Query("confirm"))

	err := h.services.Admin.Delete(c.Request.Context(), id, confirmed)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"id": id, "message": locale.T(lang, locale.ArticleDeleted)})
	case errors.Is(err, models.ErrConfirmationRequired):
		c.JSON(http.StatusPreconditionRequired, gin.H{
			"error":   locale.T(lang, locale.ConfirmDelete),
			"confirm": "add confirm=true to delete",
		})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": locale.T(lang, locale.NotFound)})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": locale.T(lang, locale.DeleteFailed)})
	}
}

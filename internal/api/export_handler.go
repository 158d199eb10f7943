package api

import (
	"errors"
	"net/http"

	"github.com/community-news-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ExportHandler handles the article backup endpoint
type ExportHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(services *service.Services, log zerolog.Logger) *ExportHandler {
	return &ExportHandler{
		services: services,
		log:      log.With().Str("handler", "export").Logger(),
	}
}

// StreamExport handles GET /v1/admin/articles/export?format=ndjson|json
// Streams every article directly to the response
func (h *ExportHandler) StreamExport(c *gin.Context) {
	format := c.DefaultQuery("format", "ndjson")
	if format != "ndjson" && format != "json" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be one of: ndjson, json"})
		return
	}

	h.log.Info().Str("format", format).Msg("Starting streaming export")

	err := h.services.Export.StreamArticles(c.Request.Context(), c.Writer, format)
	if errors.Is(err, service.ErrUnsupportedFormat) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.log.Error().Err(err).Msg("Export failed")
		// Can't return error JSON after streaming has started
		return
	}
}

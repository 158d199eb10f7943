package api

import (
	"net/http"

	"github.com/community-news-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// SearchHandler handles the proxy and federated search endpoints
type SearchHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(services *service.Services, log zerolog.Logger) *SearchHandler {
	return &SearchHandler{
		services: services,
		log:      log.With().Str("handler", "search").Logger(),
	}
}

// Proxy handles GET /api/search?q=
// The provider body is passed through unmodified.
func (h *SearchHandler) Proxy(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing query"})
		return
	}

	body, err := h.services.Search.Proxy(c.Request.Context(), q)
	if err != nil {
		h.log.Error().Err(err).Msg("Search proxy failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch search results"})
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// Search handles GET /v1/search?q=
// Both sections are returned even when one of them failed.
func (h *SearchHandler) Search(c *gin.Context) {
	snapshot := h.services.Search.Search(c.Request.Context(), c.Query("q"), language(c))
	c.JSON(http.StatusOK, snapshot)
}

package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/community-news-api/internal/locale"
	"github.com/community-news-api/internal/models"
	"github.com/community-news-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const maxListLimit = 100

// ArticleHandler handles the public article endpoints
type ArticleHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(services *service.Services, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		services: services,
		log:      log.With().Str("handler", "article").Logger(),
	}
}

// List handles GET /v1/articles?limit=
func (h *ArticleHandler) List(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > maxListLimit {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 0 and 100"})
			return
		}
		limit = n
	}

	feed := h.services.Article.ListPublished(c.Request.Context(), limit)
	c.JSON(http.StatusOK, withNotice(c, feed))
}

// Featured handles GET /v1/articles/featured
func (h *ArticleHandler) Featured(c *gin.Context) {
	feed := h.services.Article.Featured(c.Request.Context())
	c.JSON(http.StatusOK, withNotice(c, feed))
}

// Get handles GET /v1/articles/:id
func (h *ArticleHandler) Get(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}

	detail, err := h.services.Article.GetArticle(c.Request.Context(), id)
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     locale.T(language(c), locale.NotFound),
			"not_found": true,
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": locale.T(language(c), locale.GenericFailure)})
		return
	}

	c.JSON(http.StatusOK, detail)
}

// withNotice adds the localized demo banner to fallback feeds
func withNotice(c *gin.Context, feed *models.ArticleFeed) *models.ArticleFeed {
	if feed.DemoMode {
		feed.Notice = locale.T(language(c), locale.DemoNotice)
	}
	return feed
}

func articleID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid article id"})
		return 0, false
	}
	return id, true
}

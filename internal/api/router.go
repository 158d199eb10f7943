package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/community-news-api/internal/config"
	"github.com/community-news-api/internal/gate"
	"github.com/community-news-api/internal/locale"
	"github.com/community-news-api/internal/metrics"
	"github.com/community-news-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	languageKey     = "lang"
	healthTimeout   = 2 * time.Second
)

// HealthChecker reports whether the article store is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// NewRouter creates and configures the Gin router. health may be nil.
func NewRouter(services *service.Services, cfg *config.Config, health HealthChecker, log zerolog.Logger) *gin.Engine {
	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))
	router.Use(metricsMiddleware())
	router.Use(corsMiddleware(cfg.Server.AllowedOrigins))
	router.Use(localeMiddleware())

	// Handlers
	demoGate := gate.New(cfg.Admin.Passcode)
	articleHandler := NewArticleHandler(services, log)
	searchHandler := NewSearchHandler(services, log)
	adminHandler := NewAdminHandler(services, demoGate, cfg, log)
	exportHandler := NewExportHandler(services, log)

	// Health check
	router.GET("/health", healthCheck(services, health))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Search provider proxy
	router.GET("/api/search", searchHandler.Proxy)

	// API v1
	v1 := router.Group("/v1")
	{
		articles := v1.Group("/articles")
		{
			articles.GET("", articleHandler.List)
			articles.GET("/featured", articleHandler.Featured)
			articles.GET("/:id", articleHandler.Get)
		}

		v1.GET("/search", searchHandler.Search)

		v1.POST("/admin/login", adminHandler.Login)

		admin := v1.Group("/admin", gateMiddleware(demoGate))
		{
			admin.GET("/articles", adminHandler.Dashboard)
			admin.POST("/articles", adminHandler.CreateArticle)
			admin.DELETE("/articles/:id", adminHandler.DeleteArticle)
			admin.GET("/articles/export", exportHandler.StreamExport)
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(services *service.Services, health HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := contextWithTimeout(c, healthTimeout)
		defer cancel()

		status, code := "healthy", http.StatusOK
		database := gin.H{"status": "unknown"}
		if health != nil {
			if err := health.HealthCheck(ctx); err != nil {
				status, code = "degraded", http.StatusServiceUnavailable
				database["status"] = "unreachable"
			} else {
				database["status"] = "ok"
				if count, err := services.Export.GetCount(ctx); err == nil {
					database["articles"] = count
				}
			}
		}

		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   "community-news-api",
			"database":  database,
		})
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Str("path", c.Request.URL.Path).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": locale.T(language(c), locale.GenericFailure),
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// requestIDMiddleware keeps a caller supplied request id or assigns one
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Str("request_id", c.GetString(requestIDKey)).
			Msg("Request completed")
	}
}

// metricsMiddleware records requests by route template
func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordRequest(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start).Seconds())
	}
}

// corsMiddleware handles CORS for the configured origins
func corsMiddleware(allowed []string) gin.HandlerFunc {
	allowAll := len(allowed) == 0
	origins := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			allowAll = true
		}
		origins[o] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		switch {
		case allowAll:
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		case origin != "" && origins[origin]:
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Add("Vary", "Origin")
		}
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", strings.Join([]string{
			"Content-Type", "Accept-Language", gate.HeaderName, requestIDHeader,
		}, ", "))

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// localeMiddleware resolves the response language from ?lang= or Accept-Language
func localeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := locale.Resolve(c.Query("lang"), c.GetHeader("Accept-Language"))
		c.Set(languageKey, lang)
		c.Header("Content-Language", lang)
		c.Writer.Header().Add("Vary", "Accept-Language")
		c.Next()
	}
}

// gateMiddleware turns away admin requests without the demo passcode
func gateMiddleware(g *gate.DemoGate) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !g.Check(c.GetHeader(gate.HeaderName)) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": locale.T(language(c), locale.InvalidPasscode),
			})
			return
		}
		c.Next()
	}
}

func language(c *gin.Context) string {
	if lang := c.GetString(languageKey); lang != "" {
		return lang
	}
	return locale.LanguageEnglish
}

// contextWithTimeout creates a context with timeout for handlers
func contextWithTimeout(c *gin.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), timeout)
}

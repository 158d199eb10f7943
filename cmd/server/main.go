package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/community-news-api/internal/api"
	"github.com/community-news-api/internal/config"
	"github.com/community-news-api/internal/database"
	"github.com/community-news-api/internal/metrics"
	"github.com/community-news-api/internal/repository"
	"github.com/community-news-api/internal/search"
	"github.com/community-news-api/internal/service"
	"github.com/community-news-api/internal/storage"
	"github.com/community-news-api/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is fine outside local development
	envErr := godotenv.Load()

	// Bootstrap logger until the configuration is loaded
	log := logger.New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		log.Warn().Err(envErr).Msg("Ignoring unreadable .env file")
	}
	log.Info().Msg("Starting community news API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	log = logger.FromConfig(cfg.Log)

	// Initialize database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Run migrations
	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "./migrations"
	}
	if err := db.RunMigrations(migrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	if err := metrics.RegisterDBStats(db.DB); err != nil {
		log.Warn().Err(err).Msg("Failed to register database pool metrics")
	}

	images, err := storage.NewS3ImageStore(context.Background(), &cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to configure image storage")
	}

	// Initialize services
	services := service.NewServices(service.Deps{
		Repos:  repository.New(db),
		Images: images,
		Web:    search.NewBingClient(&cfg.Search, log),
	}, log)

	// Initialize router
	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(services, cfg, db, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// Object storage for article images
	Storage StorageConfig

	// External web search provider
	Search SearchConfig

	// Admin demo gate
	Admin AdminConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL          string // takes precedence over the discrete fields when set
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// StorageConfig holds S3-compatible object storage settings
type StorageConfig struct {
	Endpoint      string
	Region        string
	Bucket        string
	AccessKey     string
	SecretKey     string
	PublicURL     string
	CacheControl  string
	UsePathStyle  bool
	MaxUploadSize int64 // in bytes
}

// SearchConfig holds web search provider settings
type SearchConfig struct {
	APIKey      string
	Endpoint    string
	Timeout     time.Duration
	MaxAttempts int // transport errors and 5xx are retried up to this many tries
}

// AdminConfig holds the shared demo passcode
type AdminConfig struct {
	Passcode string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			AllowedOrigins:  getListEnv("ACCEPTED_ORIGINS", []string{"*"}),
		},
		Database: loadDatabaseConfig(),
		Storage: StorageConfig{
			Endpoint:      getEnv("STORAGE_ENDPOINT", ""),
			Region:        getEnv("STORAGE_REGION", "us-east-1"),
			Bucket:        getEnv("STORAGE_BUCKET", "article-images"),
			AccessKey:     getEnv("STORAGE_ACCESS_KEY", ""),
			SecretKey:     getEnv("STORAGE_SECRET_KEY", ""),
			PublicURL:     getEnv("STORAGE_PUBLIC_URL", ""),
			CacheControl:  getEnv("STORAGE_CACHE_CONTROL", "3600"),
			UsePathStyle:  getBoolEnv("STORAGE_USE_PATH_STYLE", true),
			MaxUploadSize: getInt64Env("MAX_UPLOAD_SIZE", 10*1024*1024), // 10MB
		},
		Search: SearchConfig{
			APIKey:      getEnv("BING_API_KEY", ""),
			Endpoint:    getEnv("BING_ENDPOINT", "https://api.bing.microsoft.com/v7.0/search"),
			Timeout:     getDurationEnv("SEARCH_TIMEOUT", 10*time.Second),
			MaxAttempts: getIntEnv("SEARCH_MAX_ATTEMPTS", 2),
		},
		Admin: AdminConfig{
			Passcode: getEnv("ADMIN_PASSCODE", "admin123"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDatabase reads only the database section, for tools that never serve traffic
func LoadDatabase() (*DatabaseConfig, error) {
	db := loadDatabaseConfig()
	if db.URL == "" && db.Host == "" {
		return nil, fmt.Errorf("missing required configuration: DATABASE_URL or DB_HOST")
	}
	return &db, nil
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		URL:          getEnv("DATABASE_URL", ""),
		Host:         getEnv("DB_HOST", ""),
		Port:         getEnv("DB_PORT", "5432"),
		User:         getEnv("DB_USER", "postgres"),
		Password:     getEnv("DB_PASSWORD", ""),
		Name:         getEnv("DB_NAME", "postgres"),
		SSLMode:      getEnv("DB_SSLMODE", "require"),
		MaxOpenConns: getIntEnv("DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns: getIntEnv("DB_MAX_IDLE_CONNS", 5),
		MaxLifetime:  getDurationEnv("DB_MAX_LIFETIME", 5*time.Minute),
	}
}

// Validate checks that everything the write and search paths need is present.
// A missing value stops startup instead of degrading to demo data.
func (c *Config) Validate() error {
	var missing []string
	if c.Database.URL == "" && c.Database.Host == "" {
		missing = append(missing, "DATABASE_URL or DB_HOST")
	}
	if c.Storage.AccessKey == "" {
		missing = append(missing, "STORAGE_ACCESS_KEY")
	}
	if c.Storage.SecretKey == "" {
		missing = append(missing, "STORAGE_SECRET_KEY")
	}
	if c.Storage.Bucket == "" {
		missing = append(missing, "STORAGE_BUCKET")
	}
	if c.Search.APIKey == "" {
		missing = append(missing, "BING_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	if c.Admin.Passcode == "" {
		return fmt.Errorf("ADMIN_PASSCODE must not be empty")
	}
	return nil
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var list []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	if len(list) == 0 {
		return defaultValue
	}
	return list
}

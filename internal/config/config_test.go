package config

import (
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/news?sslmode=disable")
	t.Setenv("STORAGE_ACCESS_KEY", "access")
	t.Setenv("STORAGE_SECRET_KEY", "secret")
	t.Setenv("BING_API_KEY", "bing-key")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Expected port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Storage.Bucket != "article-images" {
		t.Errorf("Expected bucket article-images, got %s", cfg.Storage.Bucket)
	}
	if cfg.Admin.Passcode != "admin123" {
		t.Errorf("Expected default passcode, got %s", cfg.Admin.Passcode)
	}
	if cfg.Search.Timeout != 10*time.Second {
		t.Errorf("Expected 10s search timeout, got %v", cfg.Search.Timeout)
	}
	if cfg.Database.GetDSN() != "postgres://localhost:5432/news?sslmode=disable" {
		t.Errorf("Expected DATABASE_URL to win, got %s", cfg.Database.GetDSN())
	}
}

func TestLoad_FailsFastOnMissingKeys(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "")
	t.Setenv("STORAGE_ACCESS_KEY", "")
	t.Setenv("STORAGE_SECRET_KEY", "")
	t.Setenv("BING_API_KEY", "")

	_, err := Load()
	if err == nil {
		t.Fatal("Expected error for missing configuration")
	}
	for _, key := range []string{"DATABASE_URL or DB_HOST", "STORAGE_ACCESS_KEY", "STORAGE_SECRET_KEY", "BING_API_KEY"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("Expected error to mention %s, got %q", key, err.Error())
		}
	}
}

func TestGetDSN_DiscreteFields(t *testing.T) {
	db := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "news", SSLMode: "disable"}
	want := "host=db port=5432 user=u password=p dbname=news sslmode=disable"
	if got := db.GetDSN(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestGetListEnv(t *testing.T) {
	t.Setenv("ACCEPTED_ORIGINS", " https://a.example, ,https://b.example ")
	got := getListEnv("ACCEPTED_ORIGINS", nil)
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Errorf("Unexpected origins: %v", got)
	}
}

func TestLoadDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "")
	if _, err := LoadDatabase(); err == nil {
		t.Fatal("Expected error without a database location")
	}

	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("BING_API_KEY", "")
	db, err := LoadDatabase()
	if err != nil {
		t.Fatalf("LoadDatabase failed: %v", err)
	}
	if db.Host != "db.internal" || db.Port != "5432" {
		t.Errorf("Unexpected database config: %+v", db)
	}
}

package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/community-news-api/internal/config"
	"github.com/rs/zerolog"
)

func TestNew_JSONCarriesServiceName(t *testing.T) {
	t.Setenv("ENV", "")
	var buf bytes.Buffer
	log := newWithWriter(&buf, "info", "json")

	log.Info().Msg("hello")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected JSON output, got %q", buf.String())
	}
	if entry["service"] != serviceName {
		t.Errorf("Expected service %s, got %v", serviceName, entry["service"])
	}
}

func TestNew_Levels(t *testing.T) {
	t.Setenv("ENV", "")
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		log := newWithWriter(&bytes.Buffer{}, tt.level, "json")
		if log.GetLevel() != tt.want {
			t.Errorf("level %q: expected %v, got %v", tt.level, tt.want, log.GetLevel())
		}
	}
}

func TestFromConfig(t *testing.T) {
	t.Setenv("ENV", "")
	log := FromConfig(config.LogConfig{Level: "warn", Format: "json"})
	if log.GetLevel() != zerolog.WarnLevel {
		t.Errorf("Expected warn level from config, got %v", log.GetLevel())
	}
}

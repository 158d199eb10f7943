package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// ImageStore writes article images to object storage
type ImageStore interface {
	// Upload stores body under key and returns its public URL.
	// An existing object with the same key is never overwritten.
	Upload(ctx context.Context, key, contentType string, body []byte) (string, error)
	Delete(ctx context.Context, key string) error
}

// ObjectKey names an uploaded image <unix-millis>.<ext>, the extension
// taken from the client filename
func ObjectKey(now time.Time, filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" {
		ext = "bin"
	}
	return fmt.Sprintf("%d.%s", now.UnixMilli(), ext)
}

// PublicURL joins the public base, bucket and key
func PublicURL(base, bucket, key string) string {
	return strings.TrimRight(base, "/") + "/" + bucket + "/" + key
}

// cacheControlHeader accepts either "3600" or a full directive
func cacheControlHeader(value string) string {
	if value == "" || strings.Contains(value, "=") {
		return value
	}
	return "max-age=" + value
}

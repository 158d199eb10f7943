package models

import (
	"strings"
	"time"
)

// ArticleStatus represents the editorial status of an article
type ArticleStatus string

const (
	StatusDraft     ArticleStatus = "draft"
	StatusPublished ArticleStatus = "published"
	StatusScheduled ArticleStatus = "scheduled"
)

// ValidStatuses defines allowed article statuses
var ValidStatuses = map[ArticleStatus]bool{
	StatusDraft:     true,
	StatusPublished: true,
	StatusScheduled: true,
}

// ParseStatus converts raw input into an ArticleStatus
func ParseStatus(raw string) (ArticleStatus, bool) {
	status := ArticleStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !ValidStatuses[status] {
		return "", false
	}
	return status, true
}

// Categories is the editorial taxonomy, in display order
var Categories = []string{
	"Community",
	"Business",
	"Food",
	"Education",
	"Arts",
	"Technology",
}

// IsValidCategory reports whether category belongs to the taxonomy
func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Article represents a row of the articles table
type Article struct {
	ID             int64         `json:"id" db:"id"`
	Title          string        `json:"title" db:"title"`
	Content        string        `json:"content" db:"content"` // HTML fragment, rendered unescaped
	Excerpt        *string       `json:"excerpt" db:"excerpt"`
	Category       string        `json:"category" db:"category"`
	Tags           []string      `json:"tags" db:"tags"`
	Author         string        `json:"author" db:"author"`
	Status         ArticleStatus `json:"status" db:"status"`
	Featured       bool          `json:"featured" db:"featured"`
	ImageURL       *string       `json:"image_url" db:"image_url"`
	SEOTitle       *string       `json:"seo_title" db:"seo_title"`
	SEODescription *string       `json:"seo_description" db:"seo_description"`
	Views          int64         `json:"views" db:"views"`
	CreatedAt      time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at" db:"updated_at"`
	PublishedAt    *time.Time    `json:"published_at" db:"published_at"`
}

// DisplayDate is the date shown next to an article: published_at, else created_at
func (a *Article) DisplayDate() time.Time {
	if a.PublishedAt != nil {
		return *a.PublishedAt
	}
	return a.CreatedAt
}

// ArticleDetail is the single-article view with its derived fields
type ArticleDetail struct {
	*Article
	ReadMinutes int       `json:"read_minutes"`
	DisplayDate time.Time `json:"display_date"`
}

// ArticleDraft is the admin form payload before it becomes an Article
type ArticleDraft struct {
	Title          string   `json:"title" form:"title" validate:"notblank"`
	Content        string   `json:"content" form:"content" validate:"notblank"`
	Excerpt        string   `json:"excerpt" form:"excerpt"`
	Category       string   `json:"category" form:"category" validate:"notblank,category"`
	Tags           string   `json:"tags" form:"tags"` // comma separated
	Author         string   `json:"author" form:"author" validate:"notblank"`
	Status         string   `json:"status" form:"status" validate:"omitempty,oneof=draft published scheduled"`
	Featured       Checkbox `json:"featured" form:"featured"`
	SEOTitle       string   `json:"seo_title" form:"seo_title"`
	SEODescription string   `json:"seo_description" form:"seo_description"`
}

// SplitTags turns comma separated input into a trimmed, order-preserving list.
// Blank input yields an empty, non-nil slice.
func SplitTags(raw string) []string {
	tags := make([]string, 0)
	if strings.TrimSpace(raw) == "" {
		return tags
	}
	for _, part := range strings.Split(raw, ",") {
		tag := strings.TrimSpace(part)
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

// OrderField selects the descending sort column for list queries
type OrderField string

const (
	OrderByPublishedAt OrderField = "published_at"
	OrderByCreatedAt   OrderField = "created_at"
)

// ArticleQuery describes a list call against the store
type ArticleQuery struct {
	Status  *ArticleStatus
	Match   string // title OR content contains, case-insensitive
	OrderBy OrderField
	Limit   int
}

// StringPtr returns nil for blank strings
func StringPtr(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

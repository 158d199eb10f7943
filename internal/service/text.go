package service

import (
	"html"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

const (
	excerptMaxRunes = 200
	wordsPerMinute  = 200
)

var stripPolicy = bluemonday.StrictPolicy()

// PlainText strips markup from an HTML fragment and collapses whitespace
func PlainText(fragment string) string {
	text := html.UnescapeString(stripPolicy.Sanitize(fragment))
	return strings.Join(strings.Fields(text), " ")
}

// DeriveExcerpt builds an excerpt from article content, or "" when there is no text
func DeriveExcerpt(content string) string {
	text := PlainText(content)
	if utf8.RuneCountInString(text) <= excerptMaxRunes {
		return text
	}
	runes := []rune(text)
	cut := strings.TrimSpace(string(runes[:excerptMaxRunes]))
	if i := strings.LastIndex(cut, " "); i > excerptMaxRunes/2 {
		cut = cut[:i]
	}
	return cut + "…"
}

// ReadMinutes estimates reading time, never less than one minute
func ReadMinutes(content string) int {
	words := len(strings.Fields(PlainText(content)))
	minutes := int(math.Ceil(float64(words) / wordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}

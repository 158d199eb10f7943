package locale

import (
	"strings"

	"golang.org/x/text/language"
)

const (
	LanguageEnglish = "en"
	LanguageKorean  = "ko"
)

var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Korean,
})

// NormalizeLanguage maps a ?lang= value to a supported language, or ""
func NormalizeLanguage(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case trimmed == "":
		return ""
	case strings.HasPrefix(trimmed, "ko") || trimmed == "kr":
		return LanguageKorean
	case strings.HasPrefix(trimmed, "en"):
		return LanguageEnglish
	}
	return ""
}

// FromAcceptLanguage picks en or ko from an Accept-Language header.
// Unmatched or malformed headers give English.
func FromAcceptLanguage(header string) string {
	if strings.TrimSpace(header) == "" {
		return LanguageEnglish
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return LanguageEnglish
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return LanguageEnglish
	}
	if index == 1 {
		return LanguageKorean
	}
	return LanguageEnglish
}

// Resolve applies the query override first, then the header
func Resolve(query, acceptLanguage string) string {
	if lang := NormalizeLanguage(query); lang != "" {
		return lang
	}
	return FromAcceptLanguage(acceptLanguage)
}

package models

// WebResult is one item of the provider's webPages.value list
type WebResult struct {
	Name       string `json:"name"`
	Snippet    string `json:"snippet"`
	URL        string `json:"url"`
	DisplayURL string `json:"displayUrl"`
}

// SectionState is the loading/error/items triple of one search source
type SectionState[T any] struct {
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
	Items   []T    `json:"items"`
}

// Settled reports whether the section finished without error
func (s SectionState[T]) Settled() bool {
	return !s.Loading && s.Error == ""
}

// SearchSnapshot is the rendered state of a federated search.
// Internal results come first, web results second.
type SearchSnapshot struct {
	Query    string                  `json:"query"`
	Internal SectionState[*Article]  `json:"internal"`
	External SectionState[WebResult] `json:"external"`
	Total    *int                    `json:"total,omitempty"`
}

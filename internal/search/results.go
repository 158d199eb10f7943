package search

import (
	"encoding/json"
	"fmt"

	"github.com/community-news-api/internal/models"
)

type bingResponse struct {
	WebPages *struct {
		Value []models.WebResult `json:"value"`
	} `json:"webPages"`
}

// DecodeWebResults extracts webPages.value from a provider body.
// A body without web pages yields an empty list.
func DecodeWebResults(raw json.RawMessage) ([]models.WebResult, error) {
	var resp bingResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode web results: %w", err)
	}
	if resp.WebPages == nil || resp.WebPages.Value == nil {
		return []models.WebResult{}, nil
	}
	return resp.WebPages.Value, nil
}

package source

import (
	"encoding/json"
	"fmt"
)

// MediaStackTransform 解析 mediastack /v1/news 的响应
type MediaStackTransform struct{}

type mediaStackResponse struct {
	Data []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		Image       string `json:"image"`
		Source      string `json:"source"`
		PublishedAt string `json:"published_at"`
	} `json:"data"`
}

func (t *MediaStackTransform) Parse(body []byte) ([]RawItem, error) {
	var resp mediaStackResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("mediastack: unmarshal response: %w", err)
	}

	items := make([]RawItem, 0, len(resp.Data))
	for _, a := range resp.Data {
		items = append(items, RawItem{
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			Image:       a.Image,
			Source:      a.Source,
			PublishedAt: parseTime(a.PublishedAt),
		})
	}
	return items, nil
}

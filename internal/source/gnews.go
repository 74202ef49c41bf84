package source

import (
	"encoding/json"
	"fmt"
)

// GNewsTransform 解析 gnews.io /api/v4/search 的响应
type GNewsTransform struct{}

type gnewsResponse struct {
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Content     string `json:"content"`
		URL         string `json:"url"`
		Image       string `json:"image"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

func (t *GNewsTransform) Parse(body []byte) ([]RawItem, error) {
	var resp gnewsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("gnews: unmarshal response: %w", err)
	}

	items := make([]RawItem, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		items = append(items, RawItem{
			Title:       a.Title,
			Description: a.Description,
			Content:     a.Content,
			URL:         a.URL,
			Image:       a.Image,
			Source:      a.Source.Name,
			PublishedAt: parseTime(a.PublishedAt),
		})
	}
	return items, nil
}

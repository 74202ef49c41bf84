package source

import (
	"encoding/json"
	"fmt"
)

// NewsAPITransform 解析 newsapi.org /v2/everything 的响应
type NewsAPITransform struct{}

type newsAPIResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Content     string `json:"content"`
		URL         string `json:"url"`
		URLToImage  string `json:"urlToImage"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

func (t *NewsAPITransform) Parse(body []byte) ([]RawItem, error) {
	var resp newsAPIResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("newsapi: unmarshal response: %w", err)
	}

	items := make([]RawItem, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		items = append(items, RawItem{
			Title:       a.Title,
			Description: a.Description,
			Content:     a.Content,
			URL:         a.URL,
			URLToImage:  a.URLToImage,
			Source:      a.Source.Name,
			PublishedAt: parseTime(a.PublishedAt),
		})
	}
	return items, nil
}

package source

import (
	"encoding/json"
	"fmt"
	"time"
)

// RedditTransform 解析 reddit top.json；热门帖不带正式摘要，用 selftext 充当描述
type RedditTransform struct{}

type redditResponse struct {
	Data struct {
		Children []struct {
			Data struct {
				Title       string  `json:"title"`
				Selftext    string  `json:"selftext"`
				Permalink   string  `json:"permalink"`
				Thumbnail   string  `json:"thumbnail"`
				CreatedUTC  float64 `json:"created_utc"`
				Ups         int     `json:"ups"`
				NumComments int     `json:"num_comments"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

func (t *RedditTransform) Parse(body []byte) ([]RawItem, error) {
	var resp redditResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("reddit: unmarshal response: %w", err)
	}

	items := make([]RawItem, 0, len(resp.Data.Children))
	for _, child := range resp.Data.Children {
		post := child.Data
		items = append(items, RawItem{
			Title:       post.Title,
			Description: post.Selftext,
			URL:         "https://reddit.com" + post.Permalink,
			ImageURL:    post.Thumbnail,
			Source:      "Reddit",
			PublishedAt: time.Unix(int64(post.CreatedUTC), 0),
			Extra: map[string]any{
				"upvotes":  post.Ups,
				"comments": post.NumComments,
			},
		})
	}
	return items, nil
}

package source

import (
	"fmt"

	"github.com/mmcdole/gofeed"
)

// RSSTransform 用 gofeed 解析任意 RSS/Atom 订阅源
type RSSTransform struct{}

func (t *RSSTransform) Parse(body []byte) ([]RawItem, error) {
	feed, err := gofeed.NewParser().ParseString(string(body))
	if err != nil {
		return nil, fmt.Errorf("rss: parse feed: %w", err)
	}

	items := make([]RawItem, 0, len(feed.Items))
	for _, it := range feed.Items {
		raw := RawItem{
			Title:       it.Title,
			Description: it.Description,
			Content:     it.Content,
			URL:         it.Link,
			Source:      feed.Title,
		}
		if it.Image != nil {
			raw.Image = it.Image.URL
		}
		if it.PublishedParsed != nil {
			raw.PublishedAt = *it.PublishedParsed
		}
		items = append(items, raw)
	}
	return items, nil
}

package source

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// HackerNewsTransform 解析 Hacker News 首页 HTML。
// 页面结构可能调整，此处基于当前的 DOM 结构做"尽力而为"的解析。
type HackerNewsTransform struct{}

func (t *HackerNewsTransform) Parse(body []byte) ([]RawItem, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("hackernews: parse html: %w", err)
	}

	var items []RawItem
	doc.Find("tr.athing").Each(func(i int, s *goquery.Selection) {
		link := s.Find("span.titleline > a").First()
		title := strings.TrimSpace(link.Text())
		if title == "" {
			return
		}

		href, _ := link.Attr("href")
		if href == "" {
			return
		}
		// 纯讨论帖的链接是相对路径 item?id=xxx
		if !strings.HasPrefix(href, "http") {
			href = "https://news.ycombinator.com/" + href
		}

		points, comments := 0, 0
		sub := s.Next().Find("td.subtext")
		if scoreText := sub.Find("span.score").Text(); scoreText != "" {
			points = leadingInt(scoreText)
		}
		sub.Find("a").Each(func(_ int, a *goquery.Selection) {
			if strings.Contains(a.Text(), "comment") {
				comments = leadingInt(a.Text())
			}
		})

		items = append(items, RawItem{
			Title:  title,
			URL:    href,
			Source: "Hacker News",
			Extra: map[string]any{
				"points":   points,
				"comments": comments,
			},
		})
	})

	return items, nil
}

// leadingInt 取字符串开头的数字部分，如 "123 points" -> 123
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for ; end < len(s); end++ {
		if s[end] < '0' || s[end] > '9' {
			break
		}
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

package processor

import (
	"strings"
	"time"

	"github.com/LJTian/NewsCurate/internal/source"
	"github.com/google/uuid"
)

// Article 归一化之后的统一结构，后续阶段只补充 Summary / Quality 两个字段
type Article struct {
	ID          string
	Title       string
	Description string
	URL         string
	ImageURL    string
	PublishedAt time.Time
	Source      string
	Category    string
	Sentiment   string
	// 源特有字段透传（如 Reddit 的 upvotes/comments），下游不依赖
	Extra map[string]any

	Summary string
	Quality string
}

// DupKey 去重键：规范化标题 + 来源。注意去重身份是标题+来源，不是 ID
func DupKey(title, sourceName string) string {
	return strings.ToLower(strings.TrimSpace(title)) + "-" + sourceName
}

// Normalizer 把各源的原始条目映射成 Article，缺失字段按固定链路兜底
type Normalizer struct {
	// 便于测试时注入假时钟
	now func() time.Time
}

func NewNormalizer() *Normalizer {
	return &Normalizer{now: time.Now}
}

func (n *Normalizer) Normalize(raw source.RawItem) Article {
	title := raw.Title
	if title == "" {
		title = "No title"
	}

	// 描述缺失时退回 content
	description := raw.Description
	if description == "" {
		description = raw.Content
	}

	articleURL := raw.URL
	if articleURL == "" {
		articleURL = "#"
	}

	// 三种图片字段按序兜底
	imageURL := raw.ImageURL
	if imageURL == "" {
		imageURL = raw.URLToImage
	}
	if imageURL == "" {
		imageURL = raw.Image
	}

	publishedAt := raw.PublishedAt
	if publishedAt.IsZero() {
		publishedAt = n.now()
	}

	sourceName := raw.Source
	if sourceName == "" {
		sourceName = "Unknown"
	}

	return Article{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		URL:         articleURL,
		ImageURL:    imageURL,
		PublishedAt: publishedAt,
		Source:      sourceName,
		Category:    Categorize(raw.Title, raw.Description),
		Sentiment:   AnalyzeSentiment(raw.Title, raw.Description),
		Extra:       raw.Extra,
	}
}

// NormalizeAll 逐条归一化，保持输入顺序
func (n *Normalizer) NormalizeAll(raws []source.RawItem) []Article {
	out := make([]Article, 0, len(raws))
	for _, raw := range raws {
		out = append(out, n.Normalize(raw))
	}
	return out
}

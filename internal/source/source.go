package source

import (
	"strconv"
	"time"

	"github.com/LJTian/NewsCurate/internal/config"
)

// RawItem 各数据源解析后的原始条目，字段名贴近上游返回，
// 统一成 Article 的兜底逻辑放在 processor 里做
type RawItem struct {
	Title       string
	Description string
	Content     string
	URL         string
	// 三种图片字段并存：不同上游用不同的名字，normalize 时按序兜底
	ImageURL   string
	URLToImage string
	Image      string
	Source     string
	// 零值表示上游没给发布时间
	PublishedAt time.Time
	// 源特有的扩展字段（如 Reddit 的点赞/评论数），透传不做校验
	Extra map[string]any
}

// Transform 把某个上游的原始响应体解析成条目列表；每个数据源一个实现
type Transform interface {
	Parse(body []byte) ([]RawItem, error)
}

// Descriptor 描述一个数据源：地址、请求参数、启用状态与解析方式。
// Enabled 在启动时根据凭证是否存在计算一次，之后不再变化。
type Descriptor struct {
	Name      string
	URL       string
	Params    map[string]string
	Enabled   bool
	Transform Transform
}

// Sources 返回全部数据源描述，顺序即抓取聚合的基准顺序
func Sources(cfg *config.Config) []Descriptor {
	maxStr := strconv.Itoa(cfg.MaxArticles)

	return []Descriptor{
		{
			Name: "NewsAPI",
			URL:  "https://newsapi.org/v2/everything",
			Params: map[string]string{
				"apiKey":   cfg.NewsAPIKey,
				"q":        cfg.SearchQuery,
				"language": "en",
				"sortBy":   "publishedAt",
				"pageSize": maxStr,
			},
			Enabled:   cfg.NewsAPIKey != "",
			Transform: &NewsAPITransform{},
		},
		{
			Name: "GNews",
			URL:  "https://gnews.io/api/v4/search",
			Params: map[string]string{
				"token": cfg.GNewsAPIKey,
				"q":     cfg.SearchQuery,
				"lang":  "en",
				"max":   maxStr,
			},
			Enabled:   cfg.GNewsAPIKey != "",
			Transform: &GNewsTransform{},
		},
		{
			Name: "MediaStack",
			URL:  "http://api.mediastack.com/v1/news",
			Params: map[string]string{
				"access_key": cfg.MediaStackKey,
				"keywords":   "digital marketing,seo,content marketing",
				"languages":  "en",
				"limit":      maxStr,
			},
			Enabled:   cfg.MediaStackKey != "",
			Transform: &MediaStackTransform{},
		},
		{
			Name: "Reddit",
			URL:  "https://www.reddit.com/r/marketing/top.json",
			Params: map[string]string{
				"limit": maxStr,
				"t":     "day",
			},
			Enabled:   true,
			Transform: &RedditTransform{},
		},
		{
			Name:      "RSS",
			URL:       cfg.RSSFeedURL,
			Params:    map[string]string{},
			Enabled:   cfg.RSSFeedURL != "",
			Transform: &RSSTransform{},
		},
		{
			Name:      "HackerNews",
			URL:       "https://news.ycombinator.com/news",
			Params:    map[string]string{},
			Enabled:   true,
			Transform: &HackerNewsTransform{},
		},
	}
}

// parseTime 尽力解析上游的时间字符串，失败返回零值（由 normalize 兜底为当前时间）
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05Z0700", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

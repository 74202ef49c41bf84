package processor

import (
	"time"

	"github.com/LJTian/NewsCurate/internal/cache"
)

// SeenStore 跨进程重启的去重兜底（redis 实现见 storage 包）。
// 可选依赖：为 nil 时去重只依赖进程内缓存，重启后历史即清零。
type SeenStore interface {
	WasSeen(key string) bool
	MarkSeen(key string)
}

// Deduplicator 批内去重 + 跨轮次抑制。
// 批内重复用当轮的 seen 集合判断；之前轮次已投递过的条目靠长 TTL 缓存拦下。
type Deduplicator struct {
	seen  *cache.TimedCache[time.Time]
	store SeenStore
}

func NewDeduplicator(seen *cache.TimedCache[time.Time], store SeenStore) *Deduplicator {
	return &Deduplicator{seen: seen, store: store}
}

// Dedupe 按输入顺序过滤重复条目。
// 首次出现的条目一定会写入长 TTL 缓存——即使之后被条数上限截掉，
// 下一轮也视作"已见过"，保证跨轮缓存收敛于所有出现过的条目。
func (d *Deduplicator) Dedupe(articles []Article) []Article {
	inBatch := make(map[string]struct{}, len(articles))
	kept := make([]Article, 0, len(articles))

	for _, a := range articles {
		key := DupKey(a.Title, a.Source)

		if _, dup := inBatch[key]; dup {
			continue
		}
		inBatch[key] = struct{}{}

		// 已在长 TTL 缓存中：丢弃且不重写时间戳
		if _, ok := d.seen.Get(key); ok {
			continue
		}
		if d.store != nil && d.store.WasSeen(key) {
			continue
		}

		d.seen.Set(key, time.Now())
		if d.store != nil {
			d.store.MarkSeen(key)
		}
		kept = append(kept, a)
	}

	return kept
}

// Cap 截断到最大条数，保持相对顺序
func Cap(articles []Article, max int) []Article {
	if max > 0 && len(articles) > max {
		return articles[:max]
	}
	return articles
}

package pipeline

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/LJTian/NewsCurate/internal/cache"
	"github.com/LJTian/NewsCurate/internal/config"
	"github.com/LJTian/NewsCurate/internal/fetcher"
	"github.com/LJTian/NewsCurate/internal/processor"
	"github.com/LJTian/NewsCurate/internal/source"
	"github.com/LJTian/NewsCurate/internal/summarize"
)

// Deliverer 投递协作方：拿到最终文章列表后负责落库/发送等动作。
// 返回的 analytics 会原样带进本轮结果里。
type Deliverer interface {
	Deliver(ctx context.Context, articles []processor.Article) (map[string]any, error)
}

// Result 单轮执行的结构化结果。Run 永远返回 Result 而不是向上抛错。
type Result struct {
	Success           bool                `json:"success"`
	ArticlesProcessed int                 `json:"articlesProcessed"`
	Articles          []processor.Article `json:"-"`
	Performance       Performance         `json:"performance"`
	Analytics         map[string]any      `json:"analytics,omitempty"`
	Error             string              `json:"error,omitempty"`
}

type Performance struct {
	// 毫秒
	ExecutionTime int64 `json:"executionTime"`
	// 当前堆上存活对象字节数
	MemoryUsage uint64 `json:"memoryUsage"`
}

type CacheStats struct {
	RequestCache CacheStat `json:"requestCache"`
	SeenCache    CacheStat `json:"seenCache"`
}

type CacheStat struct {
	Size int    `json:"size"`
	TTL  string `json:"ttl"`
}

// Pipeline 串起 抓取 → 归一化 → 去重截断 → 摘要 → 投递 的整条链路。
// 两级缓存由 Pipeline 持有并传给各阶段，不做包级全局状态，方便测试时各自新建。
type Pipeline struct {
	cfg        *config.Config
	sources    []source.Descriptor
	fetcher    *fetcher.Fetcher
	normalizer *processor.Normalizer
	dedup      *processor.Deduplicator
	summarizer *summarize.Service

	reqCache  *cache.TimedCache[[]byte]
	seenCache *cache.TimedCache[time.Time]

	deliverer Deliverer
}

// New 组装整条流水线。seenStore 与 deliverer 都可为 nil。
func New(cfg *config.Config, seenStore processor.SeenStore, deliverer Deliverer) *Pipeline {
	reqCache := cache.New[[]byte](cfg.RequestCacheTTL)
	seenCache := cache.New[time.Time](cfg.SeenCacheTTL)

	return &Pipeline{
		cfg:        cfg,
		sources:    source.Sources(cfg),
		fetcher:    fetcher.New(cfg.RequestTimeout, reqCache),
		normalizer: processor.NewNormalizer(),
		dedup:      processor.NewDeduplicator(seenCache, seenStore),
		summarizer: summarize.New(cfg.HuggingFaceKey, cfg.SummaryDelay),
		reqCache:   reqCache,
		seenCache:  seenCache,
		deliverer:  deliverer,
	}
}

// SetSources 覆盖数据源列表（测试用：指向 httptest 服务）
func (p *Pipeline) SetSources(sources []source.Descriptor) {
	p.sources = sources
}

// Run 执行一轮完整的聚合。
// 任何阶段的意外 panic 都在这里兜住并转成失败结果，调用方不需要 recover。
func (p *Pipeline) Run(ctx context.Context) (result Result) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			log.Printf("pipeline run panic: %v", r)
			result = p.formatResult(start, false, nil, nil, fmt.Sprintf("%v", r))
		}
	}()

	log.Println("starting news curation run...")

	raws := p.fetcher.FetchAll(ctx, p.sources)
	log.Printf("fetched %d raw items", len(raws))

	// 每轮顺手清一遍两级缓存的过期条目
	p.CleanupCache()

	articles := p.normalizer.NormalizeAll(raws)
	articles = p.dedup.Dedupe(articles)
	articles = processor.Cap(articles, p.cfg.MaxArticles)

	if len(articles) == 0 {
		// 没有可报的内容不算失败，摘要与投递直接跳过
		log.Println("no articles found, skipping summary and delivery")
		return p.formatResult(start, true, nil, nil, "")
	}

	articles = p.summarizer.SummarizeAll(ctx, articles)
	log.Printf("generated summaries for %d articles", len(articles))

	var analytics map[string]any
	if p.deliverer != nil {
		var err error
		analytics, err = p.deliverer.Deliver(ctx, articles)
		if err != nil {
			log.Printf("delivery error: %v", err)
			return p.formatResult(start, false, nil, nil, err.Error())
		}
	}

	return p.formatResult(start, true, articles, analytics, "")
}

// CleanupCache 清理两级缓存的过期条目，可由定时任务独立于 Run 调用
func (p *Pipeline) CleanupCache() {
	removedReq := p.reqCache.Sweep()
	removedSeen := p.seenCache.Sweep()
	if removedReq > 0 || removedSeen > 0 {
		log.Printf("cache cleanup: removed %d request entries, %d seen entries", removedReq, removedSeen)
	}
}

// Stats 返回两级缓存的当前状态，供观测接口使用
func (p *Pipeline) Stats() CacheStats {
	return CacheStats{
		RequestCache: CacheStat{Size: p.reqCache.Len(), TTL: p.reqCache.TTL().String()},
		SeenCache:    CacheStat{Size: p.seenCache.Len(), TTL: p.seenCache.TTL().String()},
	}
}

func (p *Pipeline) formatResult(start time.Time, success bool, articles []processor.Article, analytics map[string]any, errMsg string) Result {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return Result{
		Success:           success,
		ArticlesProcessed: len(articles),
		Articles:          articles,
		Performance: Performance{
			ExecutionTime: time.Since(start).Milliseconds(),
			MemoryUsage:   m.Alloc,
		},
		Analytics: analytics,
		Error:     errMsg,
	}
}

package fetcher

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/LJTian/NewsCurate/internal/cache"
	"github.com/LJTian/NewsCurate/internal/source"
)

const maxResponseBytes = 4 << 20 // 4MB

// Fetcher 并发抓取所有启用的数据源。
// 单个源失败只记日志并跳过，不影响其余源，也不会让整轮抓取失败。
type Fetcher struct {
	client   *http.Client
	reqCache *cache.TimedCache[[]byte]
}

func New(timeout time.Duration, reqCache *cache.TimedCache[[]byte]) *Fetcher {
	return &Fetcher{
		client:   &http.Client{Timeout: timeout},
		reqCache: reqCache,
	}
}

// FetchAll 抓取全部启用的源并按配置顺序拼接结果。
// 各源并发执行，结果顺序与 sources 顺序一致，与完成先后无关。
func (f *Fetcher) FetchAll(ctx context.Context, sources []source.Descriptor) []source.RawItem {
	perSource := make([][]source.RawItem, len(sources))

	var wg sync.WaitGroup
	for i, d := range sources {
		if !d.Enabled {
			continue
		}
		wg.Add(1)
		go func(idx int, d source.Descriptor) {
			defer wg.Done()
			items, err := f.fetchOne(ctx, d)
			if err != nil {
				log.Printf("fetch %s error: %v", d.Name, err)
				return
			}
			log.Printf("fetch %s got %d items", d.Name, len(items))
			perSource[idx] = items
		}(i, d)
	}
	wg.Wait()

	var all []source.RawItem
	for _, items := range perSource {
		all = append(all, items...)
	}
	return all
}

func (f *Fetcher) fetchOne(ctx context.Context, d source.Descriptor) ([]source.RawItem, error) {
	body, err := f.cachedRequest(ctx, d)
	if err != nil {
		return nil, err
	}
	items, err := d.Transform.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("transform: %w", err)
	}
	return items, nil
}

// cachedRequest 带短 TTL 缓存的 GET 请求，避免轮询窗口内的重复外呼。
// 缓存键 = 地址 + 规范化后的参数串；只有 2xx 的响应体才会入缓存。
func (f *Fetcher) cachedRequest(ctx context.Context, d source.Descriptor) ([]byte, error) {
	params := url.Values{}
	for k, v := range d.Params {
		params.Set(k, v)
	}
	// Encode 按 key 排序，同一组参数总是算出同一个缓存键
	cacheKey := d.URL + "-" + params.Encode()

	if body, ok := f.reqCache.Get(cacheKey); ok {
		log.Printf("using cached response for %s", d.Name)
		return body, nil
	}

	reqURL := d.URL
	if len(d.Params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "NewsCurateBot/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	f.reqCache.Set(cacheKey, body)
	return body, nil
}

package cache

import (
	"sync"
	"time"
)

// TimedCache 基于写入时间 + 单一 TTL 的内存缓存。
// 不做 LRU，只靠过期自清理：读取时惰性删除，Sweep 做周期性全量清理。
// 同一进程里会有两个实例并存：短 TTL 的请求缓存和长 TTL 的去重缓存。
type TimedCache[V any] struct {
	mu    sync.RWMutex
	items map[string]entry[V]
	ttl   time.Duration

	// 便于测试时注入假时钟
	now func() time.Time
}

type entry[V any] struct {
	value      V
	insertedAt time.Time
}

func New[V any](ttl time.Duration) *TimedCache[V] {
	return &TimedCache[V]{
		items: make(map[string]entry[V]),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get 返回缓存值；已过期的条目视为未命中并顺手删除
func (c *TimedCache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()

	var zero V
	if !ok {
		return zero, false
	}
	if c.now().Sub(e.insertedAt) > c.ttl {
		c.mu.Lock()
		// 二次确认，避免和并发的 Set 抢写
		if cur, ok := c.items[key]; ok && cur.insertedAt.Equal(e.insertedAt) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return zero, false
	}
	return e.value, true
}

// Set 写入并重置时间戳，已存在时直接覆盖
func (c *TimedCache[V]) Set(key string, value V) {
	c.mu.Lock()
	c.items[key] = entry[V]{value: value, insertedAt: c.now()}
	c.mu.Unlock()
}

// Sweep 删除所有过期条目，返回删除数量；供定时清理任务调用
func (c *TimedCache[V]) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for k, e := range c.items {
		if now.Sub(e.insertedAt) > c.ttl {
			delete(c.items, k)
			removed++
		}
	}
	return removed
}

// Len 返回当前条目数（含尚未被惰性清理的过期条目）
func (c *TimedCache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *TimedCache[V]) TTL() time.Duration {
	return c.ttl
}

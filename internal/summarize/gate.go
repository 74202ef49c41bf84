package summarize

import (
	"sync"
	"time"
)

// Gate 外部调用的全局限速闸门：相邻两次 Wait 返回之间至少间隔 interval。
// 所有摘要调用共用一个实例，不是每篇文章一个计时器。
type Gate struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time

	// 便于测试时注入假时钟与假休眠
	now   func() time.Time
	sleep func(time.Duration)
}

func NewGate(interval time.Duration) *Gate {
	return &Gate{
		interval: interval,
		now:      time.Now,
		sleep:    time.Sleep,
	}
}

// Wait 阻塞到距离上一次放行至少 interval 为止；首次调用立即放行
func (g *Gate) Wait() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.last.IsZero() {
		if wait := g.interval - g.now().Sub(g.last); wait > 0 {
			g.sleep(wait)
		}
	}
	g.last = g.now()
}

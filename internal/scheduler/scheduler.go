package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/LJTian/NewsCurate/internal/pipeline"
	"github.com/robfig/cron/v3"
)

// Scheduler 定时驱动聚合流水线：按配置的 cron 跑完整一轮，
// 另挂一个独立的缓存清理任务，与 Run 互不依赖。
type Scheduler struct {
	cron *cron.Cron
	pipe *pipeline.Pipeline

	mu   sync.Mutex
	last *pipeline.Result
}

func New(runSpec, cleanupSpec string, pipe *pipeline.Pipeline) (*Scheduler, error) {
	c := cron.New()
	s := &Scheduler{cron: c, pipe: pipe}

	if _, err := c.AddFunc(runSpec, func() { s.RunOnce() }); err != nil {
		return nil, err
	}
	if _, err := c.AddFunc(cleanupSpec, func() {
		log.Println("running scheduled cache cleanup")
		pipe.CleanupCache()
	}); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	// 延迟执行首轮，避免和服务启动期的其它初始化抢资源
	const startupDelay = 15 * time.Second
	time.AfterFunc(startupDelay, func() {
		go s.RunOnce()
	})
}

// RunOnce 对外暴露的单次执行入口，手动触发采集时也走这里
func (s *Scheduler) RunOnce() pipeline.Result {
	result := s.pipe.Run(context.Background())
	if result.Success {
		log.Printf("curation run done: processed=%d elapsed=%dms", result.ArticlesProcessed, result.Performance.ExecutionTime)
	} else {
		log.Printf("curation run failed: %s", result.Error)
	}

	s.mu.Lock()
	s.last = &result
	s.mu.Unlock()
	return result
}

// LastResult 返回最近一轮的执行结果，还没跑过时返回 nil
func (s *Scheduler) LastResult() *pipeline.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

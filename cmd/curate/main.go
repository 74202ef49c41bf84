package main

import (
	"context"
	"log"
	"os"

	"github.com/LJTian/NewsCurate/internal/config"
	"github.com/LJTian/NewsCurate/internal/pipeline"
	"github.com/LJTian/NewsCurate/internal/processor"
	"github.com/LJTian/NewsCurate/internal/storage"
)

// 只执行一轮聚合任务的命令行入口：适合手动触发或在外部调度器里跑
func main() {
	cfg := config.Load()

	var seenStore processor.SeenStore
	var deliverer pipeline.Deliverer
	if cfg.PostgresDSN != "" {
		s, err := storage.NewStore(cfg.PostgresDSN, cfg.RedisAddr, cfg.SeenCacheTTL)
		if err != nil {
			log.Fatalf("init store failed: %v", err)
		}
		seenStore = s
		deliverer = s
	}

	pipe := pipeline.New(cfg, seenStore, deliverer)
	result := pipe.Run(context.Background())

	if !result.Success {
		log.Printf("curation run failed: %s", result.Error)
		os.Exit(1)
	}
	log.Printf("curation run done: processed=%d elapsed=%dms", result.ArticlesProcessed, result.Performance.ExecutionTime)
}

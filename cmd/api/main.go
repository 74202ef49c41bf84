package main

import (
	"log"

	"github.com/LJTian/NewsCurate/internal/api"
	"github.com/LJTian/NewsCurate/internal/config"
	"github.com/LJTian/NewsCurate/internal/pipeline"
	"github.com/LJTian/NewsCurate/internal/processor"
	"github.com/LJTian/NewsCurate/internal/scheduler"
	"github.com/LJTian/NewsCurate/internal/storage"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	// 数据库可选：不配置 DSN 时流水线照常运行，只是结果不落库
	var store *storage.Store
	var seenStore processor.SeenStore
	var deliverer pipeline.Deliverer
	if cfg.PostgresDSN != "" {
		s, err := storage.NewStore(cfg.PostgresDSN, cfg.RedisAddr, cfg.SeenCacheTTL)
		if err != nil {
			log.Fatalf("init store failed: %v", err)
		}
		store = s
		seenStore = s
		deliverer = s
	}

	pipe := pipeline.New(cfg, seenStore, deliverer)

	sched, err := scheduler.New(cfg.CronSpec, cfg.CleanupCronSpec, pipe)
	if err != nil {
		log.Fatalf("init scheduler failed: %v", err)
	}
	sched.Start()

	r := gin.Default()
	apiServer := api.NewServer(store, sched, pipe, cfg.Env)
	apiServer.RegisterRoutes(r)

	addr := ":" + cfg.AppPort
	log.Printf("starting api server at %s ...", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exit: %v", err)
	}
}

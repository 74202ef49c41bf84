package api

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/LJTian/NewsCurate/internal/pipeline"
	"github.com/LJTian/NewsCurate/internal/scheduler"
	"github.com/LJTian/NewsCurate/internal/storage"
	"github.com/gin-gonic/gin"
)

type Server struct {
	store *storage.Store
	sched *scheduler.Scheduler
	pipe  *pipeline.Pipeline
	env   string

	startedAt time.Time
}

// NewServer 组装 HTTP 层。store 可为 nil（未配置数据库时列表接口返回 503）。
func NewServer(store *storage.Store, sched *scheduler.Scheduler, pipe *pipeline.Pipeline, env string) *Server {
	return &Server{
		store:     store,
		sched:     sched,
		pipe:      pipe,
		env:       env,
		startedAt: time.Now(),
	}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/articles", s.listArticles)
		v1.POST("/run", s.triggerRun)
		v1.GET("/run/latest", s.latestResult)
		v1.GET("/cache/stats", s.cacheStats)
	}
}

// health 存活探针：与流水线状态无关，只报进程自身信息
func (s *Server) health(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	c.JSON(http.StatusOK, gin.H{
		"status":      "OK",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"uptime":      time.Since(s.startedAt).Seconds(),
		"memory":      m.Alloc,
		"environment": s.env,
	})
}

func (s *Server) listArticles(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"code":    "storage_disabled",
			"message": "no database configured",
		})
		return
	}

	category := c.Query("category")
	quality := c.Query("quality")

	limitStr := c.DefaultQuery("limit", "20")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 20
	}

	items, err := s.store.ListArticles(category, quality, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "internal_error",
			"message": "internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    items,
	})
}

// triggerRun 异步触发一轮采集；结果通过 /run/latest 查询
func (s *Server) triggerRun(c *gin.Context) {
	go s.sched.RunOnce()
	c.JSON(http.StatusAccepted, gin.H{
		"code":    "accepted",
		"message": "curation run started",
	})
}

func (s *Server) latestResult(c *gin.Context) {
	result := s.sched.LastResult()
	if result == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"code":    "no_run",
			"message": "no curation run has completed yet",
		})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) cacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.pipe.Stats())
}

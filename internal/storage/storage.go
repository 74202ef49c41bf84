package storage

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/LJTian/NewsCurate/internal/processor"
	"github.com/redis/go-redis/v9"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Article 入库的文章记录，含流水线补充的摘要与质量档
type Article struct {
	ID          string    `gorm:"primaryKey;size:40" json:"id"`
	Title       string    `gorm:"size:512" json:"title"`
	URL         string    `gorm:"size:1024;uniqueIndex" json:"url"`
	Source      string    `gorm:"size:128;index" json:"source"`
	Description string    `gorm:"size:2000" json:"description"`
	ImageURL    string    `gorm:"size:1024" json:"imageUrl"`
	PublishedAt time.Time `gorm:"index" json:"publishedAt"`
	Category    string    `gorm:"size:64;index" json:"category"`
	Sentiment   string    `gorm:"size:16" json:"sentiment"`
	Summary     string    `gorm:"size:2000" json:"summary"`
	Quality     string    `gorm:"size:16;index" json:"quality"`
	// 源特有扩展字段（如 Reddit 点赞/评论数）
	ExtraData datatypes.JSONMap `gorm:"type:jsonb" json:"extraData"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Store struct {
	DB    *gorm.DB
	Redis *redis.Client

	seenTTL time.Duration
}

func NewStore(dsn, redisAddr string, seenTTL time.Duration) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&Article{}); err != nil {
		return nil, err
	}

	var rdb *redis.Client
	if redisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: redisAddr})

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("warn: redis ping failed: %v", err)
		}
	}

	return &Store{DB: db, Redis: rdb, seenTTL: seenTTL}, nil
}

// toValidUTF8 将字符串规范为合法 UTF-8，避免 PostgreSQL invalid byte sequence 错误
func toValidUTF8(s string) string {
	return strings.ToValidUTF8(s, "�")
}

// truncateRunesDB 按 rune 数截断，确保不超过数据库字段长度
func truncateRunesDB(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	s = strings.TrimSpace(s)
	rs := []rune(s)
	if len(rs) <= limit {
		return s
	}
	return string(rs[:limit])
}

// SaveBatch 保存一批文章，以 URL 作为幂等键；已存在时更新摘要等展示字段
func (s *Store) SaveBatch(items []processor.Article) error {
	for _, it := range items {
		title := toValidUTF8(it.Title)
		description := truncateRunesDB(toValidUTF8(it.Description), 2000)
		summary := truncateRunesDB(toValidUTF8(it.Summary), 2000)

		a := &Article{
			ID:          it.ID,
			Title:       title,
			URL:         it.URL,
			Source:      it.Source,
			Description: description,
			ImageURL:    it.ImageURL,
			PublishedAt: it.PublishedAt,
			Category:    it.Category,
			Sentiment:   it.Sentiment,
			Summary:     summary,
			Quality:     it.Quality,
			ExtraData:   datatypes.JSONMap(it.Extra),
		}

		if err := s.DB.Where("url = ?", it.URL).FirstOrCreate(a).Error; err != nil {
			return err
		}
		_ = s.DB.Model(a).Updates(map[string]any{
			"title":       title,
			"description": description,
			"summary":     summary,
			"quality":     it.Quality,
			"category":    it.Category,
			"sentiment":   it.Sentiment,
		}).Error
	}

	// 列表缓存不做通配删除，靠短 TTL 自然过期
	return nil
}

// Deliver 实现 pipeline.Deliverer：把最终文章落库并返回投递统计
func (s *Store) Deliver(_ context.Context, articles []processor.Article) (map[string]any, error) {
	if err := s.SaveBatch(articles); err != nil {
		return nil, fmt.Errorf("save batch: %w", err)
	}
	return map[string]any{"articlesSaved": len(articles)}, nil
}

// ListArticles 按分类/质量档返回最近的文章，使用 Redis 做 5 分钟的列表缓存
func (s *Store) ListArticles(category, quality string, limit int) ([]Article, error) {
	if limit <= 0 || limit > 1000 {
		limit = 20
	}

	ctx := context.Background()
	cacheKey := fmt.Sprintf("news:list:%s:%s:%d", category, quality, limit)

	if s.Redis != nil {
		if bs, err := s.Redis.Get(ctx, cacheKey).Bytes(); err == nil {
			var cached []Article
			if err := json.Unmarshal(bs, &cached); err == nil {
				return cached, nil
			}
		}
	}

	var list []Article
	db := s.DB.Model(&Article{})
	if category != "" {
		db = db.Where("category = ?", category)
	}
	if quality != "" {
		db = db.Where("quality = ?", quality)
	}
	if err := db.Order("published_at DESC").Limit(limit).Find(&list).Error; err != nil {
		return nil, err
	}

	const listCacheTTL = 5 * time.Minute
	if s.Redis != nil && len(list) > 0 {
		if bs, err := json.Marshal(list); err == nil {
			_ = s.Redis.Set(ctx, cacheKey, bs, listCacheTTL).Err()
		}
	}

	return list, nil
}

// WasSeen / MarkSeen 实现 processor.SeenStore：
// 用 Redis 持久化去重键，进程重启后跨轮次抑制仍然生效（尽力而为，Redis 不可用时静默退化）。

func (s *Store) WasSeen(key string) bool {
	if s.Redis == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	n, err := s.Redis.Exists(ctx, seenRedisKey(key)).Result()
	if err != nil {
		return false
	}
	return n > 0
}

func (s *Store) MarkSeen(key string) {
	if s.Redis == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Redis.Set(ctx, seenRedisKey(key), 1, s.seenTTL).Err(); err != nil {
		log.Printf("warn: mark seen %q: %v", key, err)
	}
}

func seenRedisKey(key string) string {
	h := sha1.Sum([]byte(key))
	return "news:seen:" + hex.EncodeToString(h[:])
}

package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string
	Env     string

	// 数据源 API Key，留空表示对应数据源禁用
	NewsAPIKey     string
	GNewsAPIKey    string
	MediaStackKey  string
	HuggingFaceKey string

	SearchQuery string
	MaxArticles int

	// RSS 数据源的订阅地址，留空表示禁用
	RSSFeedURL string

	RequestTimeout  time.Duration
	RequestCacheTTL time.Duration
	SeenCacheTTL    time.Duration

	// 外部摘要接口的最小调用间隔，避免触发限流
	SummaryDelay time.Duration

	PostgresDSN string
	RedisAddr   string

	CronSpec        string
	CleanupCronSpec string
}

func Load() *Config {
	// .env 存在时加载，方便本地调试；线上直接用环境变量
	_ = godotenv.Load()

	cfg := &Config{
		AppPort: getEnv("APP_PORT", "9000"),
		Env:     getEnv("APP_ENV", "development"),

		NewsAPIKey:     getEnv("NEWS_API_KEY", ""),
		GNewsAPIKey:    getEnv("GNEWS_API_KEY", ""),
		MediaStackKey:  getEnv("MEDIASTACK_API_KEY", ""),
		HuggingFaceKey: getEnv("HUGGINGFACE_API_KEY", ""),

		SearchQuery: getEnv("SEARCH_QUERY", "digital marketing OR seo OR content marketing"),
		MaxArticles: getEnvInt("MAX_ARTICLES", 10),

		RSSFeedURL: getEnv("RSS_FEED_URL", ""),

		RequestTimeout:  getEnvDuration("REQUEST_TIMEOUT", 10*time.Second),
		RequestCacheTTL: getEnvDuration("REQUEST_CACHE_TTL", 5*time.Minute),
		SeenCacheTTL:    getEnvDuration("CACHE_TTL", 24*time.Hour),

		SummaryDelay: getEnvDuration("SUMMARY_DELAY", 1100*time.Millisecond),

		PostgresDSN: getEnv("POSTGRES_DSN", ""),
		RedisAddr:   getEnv("REDIS_ADDR", ""),

		CronSpec:        getEnv("CRON_SPEC", "0 9 * * *"),
		CleanupCronSpec: getEnv("CLEANUP_CRON_SPEC", "0 * * * *"),
	}

	log.Printf("config loaded: port=%s cron=%s max_articles=%d", cfg.AppPort, cfg.CronSpec, cfg.MaxArticles)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("warn: invalid %s=%q, using default %d", key, v, def)
		return def
	}
	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("warn: invalid %s=%q, using default %s", key, v, def)
		return def
	}
	return d
}

package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	LogLevel    string
	HTTPAddr    string
	MetricsAddr string

	BookingBase    string
	BookingToken   string
	BookingRPS     int
	BookingTimeout time.Duration

	CacheBackend   string // redis|memcached|none
	RedisAddr      string
	RedisDB        int
	RedisPass      string
	MemcachedAddrs []string
	LocalCacheSize int
	CacheTTL       time.Duration

	CORSOrigins    []string
	SearchDebounce time.Duration
	Workers        int
}

// Load reads the environment, after merging an optional .env file (DOTENV_PATH
// or ./.env). Variables already set in the environment win over the file.
func Load() Config {
	path := env("DOTENV_PATH", ".env")
	if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Str("path", path).Msg("dotenv load failed")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		LogLevel:    env("LOG_LEVEL", "info"),
		HTTPAddr:    env("HTTP_ADDR", ":8090"),
		MetricsAddr: env("METRICS_ADDR", ""),

		BookingBase:    strings.TrimSuffix(env("BOOKING_API_BASE_URL", "http://localhost:8080/api/v1"), "/"),
		BookingToken:   env("BOOKING_API_TOKEN", ""),
		BookingRPS:     atoi("BOOKING_API_RPS", 10),
		BookingTimeout: time.Duration(atoi("BOOKING_API_TIMEOUT_SECONDS", 20)) * time.Second,

		CacheBackend:   strings.ToLower(env("CACHE_BACKEND", "redis")),
		RedisAddr:      env("REDIS_ADDR", "localhost:6379"),
		RedisDB:        atoi("REDIS_DB", 0),
		RedisPass:      env("REDIS_PASSWORD", ""),
		MemcachedAddrs: list(env("MEMCACHED_ADDRS", "localhost:11211")),
		LocalCacheSize: atoi("LOCAL_CACHE_SIZE", 1000),
		CacheTTL:       time.Duration(atoi("CACHE_TTL_SECONDS", 30)) * time.Second,

		CORSOrigins:    list(env("CORS_ALLOWED_ORIGINS", "*")),
		SearchDebounce: time.Duration(atoi("SEARCH_DEBOUNCE_MS", 500)) * time.Millisecond,
		Workers:        atoi("WARM_WORKERS", 4),
	}
	if c.BookingRPS <= 0 {
		c.BookingRPS = 10
	}
	switch c.CacheBackend {
	case "redis", "memcached", "none":
	default:
		log.Warn().Str("backend", c.CacheBackend).Msg("unknown CACHE_BACKEND, caching disabled")
		c.CacheBackend = "none"
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func list(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

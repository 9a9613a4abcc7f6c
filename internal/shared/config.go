package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv         string
	LogLevel       string
	HTTPAddr       string
	MetricsAddr    string
	StorageBackend string // redis|mysql|memory
	RedisAddr      string
	RedisDB        int
	RedisPass      string
	MySQLDSN       string
	DirectoryFile  string
	DefaultCity    string
	ProbeWorkers   int
	ProbeRPS       int
	ProbeTTL       time.Duration
	RequestTimeout time.Duration
}

const (
	BackendRedis  = "redis"
	BackendMySQL  = "mysql"
	BackendMemory = "memory"
)

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("ignoring non-numeric setting")
		}
		return def
	}
	c := Config{
		AppEnv:         env("APP_ENV", "prod"),
		LogLevel:       env("LOG_LEVEL", "info"),
		HTTPAddr:       env("HTTP_ADDR", ":8080"),
		MetricsAddr:    env("METRICS_ADDR", ":9100"),
		StorageBackend: strings.ToLower(env("STORAGE_BACKEND", BackendRedis)),
		RedisAddr:      env("REDIS_ADDR", "localhost:6379"),
		RedisPass:      env("REDIS_PASSWORD", ""),
		RedisDB:        atoi("REDIS_DB", 0),
		MySQLDSN:       env("MYSQL_DSN", "root:root@tcp(localhost:3306)/daleel?parseTime=true&charset=utf8mb4&loc=UTC"),
		DirectoryFile:  env("DIRECTORY_FILE", ""),
		DefaultCity:    env("DEFAULT_CITY", ""),
		ProbeWorkers:   atoi("PROBE_WORKERS", 4),
		ProbeRPS:       atoi("PROBE_RPS", 5),
		ProbeTTL:       time.Duration(atoi("PROBE_TTL_SECONDS", 3600)) * time.Second,
		RequestTimeout: time.Duration(atoi("REQUEST_TIMEOUT_SECONDS", 15)) * time.Second,
	}
	switch c.StorageBackend {
	case BackendRedis, BackendMySQL, BackendMemory:
	default:
		log.Warn().Str("backend", c.StorageBackend).Msg("unknown STORAGE_BACKEND, using memory")
		c.StorageBackend = BackendMemory
	}
	if c.StorageBackend == BackendMemory {
		log.Warn().Msg("reviews are kept in memory and lost on restart")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

package shared

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPAddr        string
	MetricsAddr     string // empty: /metrics only on the API listener
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	RateLimitRPS    float64 // 0 disables
	RateLimitBurst  int

	DBDriver       string
	DatabaseDSN    string
	DBMaxOpenConns int
	DBMaxIdleConns int
	DBConnLifetime time.Duration
	DBSlowQuery    time.Duration
	MigrateOnStart bool

	RedisAddr string // empty disables the cache
	RedisDB   int
	RedisPass string
	CacheTTL  time.Duration // <= 0 disables; cached reads may be stale for up to one TTL
}

// Load reads .env when present (real environment variables win) and then
// the environment, falling back to defaults.
func Load() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("could not read .env")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
		}
		return def
	}
	atof := func(k string, def float64) float64 {
		if v := os.Getenv(k); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not a number, using default")
		}
		return def
	}
	secs := func(k string, def int) time.Duration { return time.Duration(atoi(k, def)) * time.Second }

	c := Config{
		AppEnv:   env("APP_ENV", "prod"),
		LogLevel: env("LOG_LEVEL", "info"),

		HTTPAddr:        env("HTTP_ADDR", ":8080"),
		MetricsAddr:     env("METRICS_ADDR", ""),
		RequestTimeout:  secs("REQUEST_TIMEOUT_SECONDS", 15),
		ShutdownTimeout: secs("SHUTDOWN_TIMEOUT_SECONDS", 10),
		RateLimitRPS:    atof("RATE_LIMIT_RPS", 0),
		RateLimitBurst:  atoi("RATE_LIMIT_BURST", 20),

		DBDriver:       strings.ToLower(env("DB_DRIVER", "mysql")),
		DatabaseDSN:    env("DATABASE_DSN", "root:root@tcp(localhost:3306)/hotels?charset=utf8mb4"),
		DBMaxOpenConns: atoi("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: atoi("DB_MAX_IDLE_CONNS", 25),
		DBConnLifetime: secs("DB_CONN_MAX_LIFETIME_SECONDS", 300),
		DBSlowQuery:    time.Duration(atoi("DB_SLOW_QUERY_MS", 200)) * time.Millisecond,
		MigrateOnStart: envBool("MIGRATE_ON_START", false),

		RedisAddr: env("REDIS_ADDR", ""),
		RedisPass: env("REDIS_PASSWORD", ""),
		RedisDB:   atoi("REDIS_DB", 0),
		CacheTTL:  secs("CACHE_TTL_SECONDS", 900),
	}
	if c.RedisAddr == "" {
		log.Info().Msg("REDIS_ADDR is empty, entity cache disabled")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envBool(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Warn().Str("key", k).Str("value", v).Msg("not a boolean, using default")
		return def
	}
	return b
}

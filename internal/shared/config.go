package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv        string
	HTTPAddr      string
	MetricsAddr   string
	MySQLDSN      string
	RedisAddr     string
	RedisDB       int
	RedisPass     string
	JWTSecret     string
	JWTTTL        time.Duration
	InferenceBase string
	InferenceKey  string
	InferenceRPS  int
	ImportWorkers int
	CacheTTL      time.Duration
}

const devJWTSecret = "super-secret-key"

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:        env("APP_ENV", "prod"),
		HTTPAddr:      env("HTTP_ADDR", ":8080"),
		MetricsAddr:   env("METRICS_ADDR", ":9100"),
		MySQLDSN:      env("MYSQL_DSN", "root:root@tcp(localhost:3306)/sentimentpulse?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:     env("REDIS_ADDR", "localhost:6379"),
		RedisPass:     env("REDIS_PASSWORD", ""),
		RedisDB:       atoi("REDIS_DB", 0),
		JWTSecret:     env("JWT_SECRET_KEY", devJWTSecret),
		JWTTTL:        time.Duration(atoi("JWT_EXPIRES_MINUTES", 60)) * time.Minute,
		InferenceBase: env("INFERENCE_BASE_URL", "http://localhost:8501/v1/sentiment"),
		InferenceKey:  env("INFERENCE_API_KEY", ""),
		InferenceRPS:  atoi("INFERENCE_RPS", 5),
		ImportWorkers: atoi("IMPORT_WORKERS", 8),
		CacheTTL:      time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,
	}
	if c.JWTSecret == devJWTSecret {
		log.Warn().Msg("JWT_SECRET_KEY not set, using insecure default")
	}
	if c.InferenceKey == "" {
		log.Warn().Msg("INFERENCE_API_KEY is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

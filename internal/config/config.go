package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config collects everything the service binary needs from the environment.
type Config struct {
	HTTPAddr       string
	AllowedOrigins []string

	LLMAPIKey  string
	LLMBaseURL string
	LLMModel   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	CacheWindow time.Duration

	SQLitePath string
}

// Load reads .env (if present) and the process environment.
func Load() Config {
	godotenv.Load()

	return Config{
		HTTPAddr:       EnvString("HTTP_ADDR", ":8080"),
		AllowedOrigins: splitList(EnvString("ALLOWED_ORIGINS", "*")),
		LLMAPIKey:      os.Getenv("LLM_API_KEY"),
		LLMBaseURL:     os.Getenv("LLM_BASE_URL"),
		LLMModel:       os.Getenv("LLM_MODEL"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        EnvInt("REDIS_DB", 0),
		CacheWindow:    EnvDuration("CACHE_VALIDITY_WINDOW", time.Hour),
		SQLitePath:     os.Getenv("SQLITE_PATH"),
	}
}

func EnvString(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func EnvInt(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return def
}

func EnvDuration(key string, def time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

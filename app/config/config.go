package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings, sourced from the environment with
// an optional .env file.
type Config struct {
	Port               string
	Env                string
	DataDir            string
	UploadsDir         string
	JWTSecret          string
	TokenTTL           time.Duration
	CorsAllowedOrigins []string

	// RedisAddr enables the listing cache when non-empty.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration
}

// Load reads configuration from the environment. Missing values fall
// back to development defaults; only JWT_SECRET has no default.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		DataDir:            getEnv("DATA_DIR", "data/badger"),
		UploadsDir:         getEnv("UPLOADS_DIR", "uploads"),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		TokenTTL:           getDuration("TOKEN_TTL", 7*24*time.Hour),
		CorsAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisDB:            getInt("REDIS_DB", 0),
		CacheTTL:           getDuration("CACHE_TTL", 5*time.Minute),
	}
}

// Production reports whether internal error detail should be hidden
// from responses.
func (c Config) Production() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getInt(key string, fallback int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings of the API server
type Config struct {
	Port        string
	Env         string
	DatabaseURL string

	GeminiAPIKey string
	GeminiModel  string

	AllowedOrigins []string
	PreviewSuffix  string

	AICacheTTL  time.Duration
	AIRateLimit float64
}

// IsDevelopment reports whether stack traces and verbose logs should be emitted.
// Development must be selected explicitly through APP_ENV or NODE_ENV.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

var defaultOrigins = []string{
	"http://localhost:5173",
	"http://localhost:5174",
	"http://localhost:3000",
}

// Load reads an optional .env file (missing files are ignored) and then the environment.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !os.IsNotExist(err) {
		return Config{}, err
	}
	return FromEnv(), nil
}

// FromEnv builds a Config from the process environment only.
func FromEnv() Config {
	env := getEnv("APP_ENV", getEnv("NODE_ENV", "production"))

	origins := splitList(getEnv("CORS_ALLOWED_ORIGINS", ""))
	if len(origins) == 0 {
		origins = append(origins, defaultOrigins...)
	}
	if frontend := strings.TrimSpace(os.Getenv("FRONTEND_URL")); frontend != "" {
		origins = append(origins, frontend)
	}

	ttl, err := time.ParseDuration(getEnv("AI_CACHE_TTL", "0"))
	if err != nil || ttl < 0 {
		ttl = 0
	}
	rate, err := strconv.ParseFloat(getEnv("AI_RATE_LIMIT", "2"), 64)
	if err != nil || rate < 0 {
		rate = 2
	}

	return Config{
		Port:           getEnv("PORT", "5000"),
		Env:            env,
		DatabaseURL:    getEnv("DATABASE_URL", "project-board.db"),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiModel:    strings.TrimSpace(os.Getenv("GEMINI_MODEL")),
		AllowedOrigins: origins,
		PreviewSuffix:  getEnv("CORS_PREVIEW_SUFFIX", ".vercel.app"),
		AICacheTTL:     ttl,
		AIRateLimit:    rate,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

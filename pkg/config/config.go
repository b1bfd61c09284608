package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DatabaseURL   string
	DBMaxConns    int
	JWTSecret     string
	JWTIssuer     string
	JWTTTLMinutes int

	// RedisURL enables the vocabulary cache when set.
	RedisURL      string
	VocabCacheTTL time.Duration

	UploadDir   string
	MaxUploadMB int
	HeadersFile string
	LogLevel    string
	LogFormat   string

	OpenRouter OpenRouter
}

// OpenRouter configures the optional recommendation writer. It is off
// without an API key.
type OpenRouter struct {
	APIKey   string
	BaseURL  string
	Model    string
	AppTitle string
	Referer  string
}

func (o OpenRouter) Enabled() bool { return o.APIKey != "" }

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	return Config{
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		DBMaxConns:    getEnvInt("DB_MAX_CONNS", 10),
		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change"),
		JWTIssuer:     getEnv("JWT_ISSUER", "resumematch"),
		JWTTTLMinutes: getEnvInt("JWT_TTL_MINUTES", 60),

		RedisURL:      os.Getenv("REDIS_URL"),
		VocabCacheTTL: time.Duration(getEnvInt("VOCAB_CACHE_TTL_SECONDS", 300)) * time.Second,

		UploadDir:   getEnv("UPLOAD_DIR", "./uploads"),
		MaxUploadMB: getEnvInt("MAX_UPLOAD_MB", 10),
		HeadersFile: os.Getenv("HEADERS_CONFIG"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),

		OpenRouter: OpenRouter{
			APIKey:   os.Getenv("OPENROUTER_API_KEY"),
			BaseURL:  getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
			Model:    getEnv("OPENROUTER_MODEL", "qwen/qwen2.5-32b-instruct"),
			AppTitle: getEnv("OPENROUTER_APP_TITLE", "resumematch"),
			Referer:  os.Getenv("OPENROUTER_REFERER"),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

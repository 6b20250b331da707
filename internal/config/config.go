package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries everything the service reads from the environment.
type Config struct {
	HTTPAddr        string
	MongoURI        string
	MongoDB         string
	StripeSecretKey string
	GroqAPIKey      string
	GroqModel       string
	AllowedOrigins  []string
	FrontendURL     string
}

// Load reads an optional .env file, then builds the configuration from the
// environment. Missing provider keys are warnings, not errors: the catalog
// endpoints work without them.
func Load() Config {
	// Try to load env file but don't fail if it's not found
	_ = godotenv.Load(".env")

	cfg := Config{
		HTTPAddr:        getEnv("HTTP_ADDR", ":8000"),
		MongoURI:        getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:         getEnv("MONGODB_DB", "TEE-TRIBE"),
		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		GroqAPIKey:      os.Getenv("GROQ_API_KEY"),
		GroqModel:       getEnv("GROQ_MODEL", "openai/gpt-oss-20b"),
		AllowedOrigins:  splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173")),
		FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:8000"),
	}

	if cfg.StripeSecretKey == "" {
		slog.Warn("STRIPE_SECRET_KEY not set, payment sessions will fail")
	}
	if cfg.GroqAPIKey == "" {
		slog.Warn("GROQ_API_KEY not set, /ai/enhance will fail")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

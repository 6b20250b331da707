package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"HTTP_ADDR", "MONGODB_URI", "MONGODB_DB", "GROQ_MODEL",
		"ALLOWED_ORIGINS", "FRONTEND_URL", "STRIPE_SECRET_KEY", "GROQ_API_KEY",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, ":8000", cfg.HTTPAddr)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "TEE-TRIBE", cfg.MongoDB)
	assert.Equal(t, "openai/gpt-oss-20b", cfg.GroqModel)
	assert.Equal(t, []string{"http://localhost:5173", "http://127.0.0.1:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, "http://localhost:8000", cfg.FrontendURL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("MONGODB_DB", "shop-test")
	t.Setenv("ALLOWED_ORIGINS", "https://shop.example, https://admin.example ,")

	cfg := Load()
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "shop-test", cfg.MongoDB)
	assert.Equal(t, []string{"https://shop.example", "https://admin.example"}, cfg.AllowedOrigins)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"a", "b"}, splitList("a, b"))
	assert.Equal(t, []string{"a"}, splitList(",a,,"))
}

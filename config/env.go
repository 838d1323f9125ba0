package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Load environment variables and handle errors

func LoadEnv() {
	err := godotenv.Load()

	if err != nil {
		Logger.Warn("Error loading .env file, will use environment variables instead:", err)
		// Don't call Fatal here - continue execution
	}
}

func Getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// LLMBaseURL is the base URL of the chat-completion endpoint (LM Studio compatible).
func LLMBaseURL() string {
	return Getenv("LMSTUDIO_API_BASE_URL", "http://localhost:1234/v1")
}

func LLMModel() string {
	return Getenv("LLM_MODEL", "local-model")
}

// RedisAddr is optional; when empty the app falls back to the in-memory cache.
func RedisAddr() string {
	return os.Getenv("REDIS_ADDR")
}

func Port() string {
	return Getenv("PORT", "8080")
}

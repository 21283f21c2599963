package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings for the auction site
type Config struct {
	Addr          string
	SessionSecret string
	SessionTTL    time.Duration
}

// Load reads configuration from the environment. A .env file is honored when
// present but never required.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Addr:          fmt.Sprintf(":%s", getEnv("PORT", "8080")),
		SessionSecret: getEnv("SESSION_SECRET", "dev-session-secret"),
		SessionTTL:    time.Duration(getEnvAsInt("SESSION_TTL_HOURS", 24)) * time.Hour,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

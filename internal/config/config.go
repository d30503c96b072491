package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver    string
	DatabaseURL string
	RedisURL    string
	ServerPort  string
	CartTTL     int
}

// Load reads configuration from the environment. The database credential is
// required; the application must not come up without it.
func Load() (*Config, error) {
	// Load .env file if exists
	godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	return &Config{
		DBDriver:    getEnv("DB_DRIVER", "postgres"),
		DatabaseURL: databaseURL,
		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379"),
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		CartTTL:     getEnvAsInt("CART_TTL", 3600),
	}, nil
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

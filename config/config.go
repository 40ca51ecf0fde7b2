package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI   string
	MongoDB    string
	RedisAddr  string
	HTTPPort   string
	AdminToken string
	Env        string

	// Scoring defaults
	MinScore int

	// Notification relay (empty disables outbound notifications)
	NotifyURL  string
	NotifyFrom string
	NotifyTo   string
}

func Load() *Config {
	// Best effort: a missing .env file is not an error
	_ = godotenv.Load()

	return &Config{
		MongoURI:   getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:    getEnv("MONGO_DB", "advisordb"),
		RedisAddr:  getEnv("REDIS_ADDR", "localhost:6379"),
		HTTPPort:   getEnv("HTTP_PORT", "8080"),
		AdminToken: getEnv("ADMIN_TOKEN", ""),
		Env:        getEnv("APP_ENV", "development"),
		MinScore:   getEnvInt("MIN_SCORE", 3),
		NotifyURL:  getEnv("NOTIFY_URL", ""),
		NotifyFrom: getEnv("NOTIFY_FROM", "roadmap@advisor.local"),
		NotifyTo:   getEnv("NOTIFY_TO", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

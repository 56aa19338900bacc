package config

import (
	"os"
)

type Config struct {
	ServerAddr string
	APIBaseURL string
	JWTSecret  string
	TimeZone   string
}

var Cfg *Config

func Load() {
	Cfg = &Config{
		ServerAddr: ":" + getEnv("PORT", "8080"),
		APIBaseURL: getEnv("API_BASE_URL", "http://localhost:8080/api/"),
		JWTSecret:  getEnv("JWT_SECRET", "buybuddysave-secret-key-change-in-production"),
		TimeZone:   getEnv("TIME_ZONE", "Local"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

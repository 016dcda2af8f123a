package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the service.
type Config struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// TravelAPIBaseURL points at the remote travel-search API. Empty
	// disables the proxy endpoints.
	TravelAPIBaseURL string

	// SeedDemoActivities controls whether freshly generated first days get
	// the demonstration content.
	SeedDemoActivities bool
}

// Load reads configuration from the environment, after loading .env if present.
func Load() *Config {
	godotenv.Load()

	return &Config{
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		TravelAPIBaseURL: getEnv("TRAVEL_API_BASE_URL", ""),

		SeedDemoActivities: getEnvAsBool("SEED_DEMO_ACTIVITIES", true),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

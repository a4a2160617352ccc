package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration.
type Config struct {
	LogLevel string

	ChromePath     string
	LighthousePath string

	NavigationTimeout time.Duration
	QuiescentTimeout  time.Duration
	EngineTimeout     time.Duration
	JobDelay          time.Duration

	MetricsAddr string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	ScoreCacheExpiry time.Duration
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		ChromePath:        getEnv("CHROME_PATH", ""),
		LighthousePath:    getEnv("LIGHTHOUSE_PATH", "lighthouse"),
		NavigationTimeout: getEnvAsDuration("NAVIGATION_TIMEOUT_SECONDS", 45) * time.Second,
		QuiescentTimeout:  getEnvAsDuration("QUIESCENT_TIMEOUT_SECONDS", 10) * time.Second,
		EngineTimeout:     getEnvAsDuration("ENGINE_TIMEOUT_SECONDS", 180) * time.Second,
		JobDelay:          time.Duration(getEnvAsInt("JOB_DELAY_MS", 0)) * time.Millisecond,
		MetricsAddr:       getEnv("METRICS_ADDR", ""),
		PostgresHost:      getEnv("POSTGRES_HOST", ""),
		PostgresPort:      getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:      getEnv("POSTGRES_USER", "user"),
		PostgresPassword:  getEnv("POSTGRES_PASSWORD", "password"),
		PostgresDB:        getEnv("POSTGRES_DB", "audits"),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisDB:           getEnvAsInt("REDIS_DB", 0),
		ScoreCacheExpiry:  getEnvAsDuration("SCORE_CACHE_EXPIRY_HOURS", 24*30) * time.Hour,
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback int) time.Duration {
	return time.Duration(getEnvAsInt(key, fallback))
}

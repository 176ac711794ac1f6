package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/vladimiradmaev/dm-webhook/internal/logger"
)

type Config struct {
	Server ServerConfig
	DB     DBConfig
	Redis  RedisConfig
	Model  ModelConfig
	Logger LoggerConfig
}

type ServerConfig struct {
	Port         string
	StoreTimeout time.Duration
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// RedisConfig selects the session backend. An empty Host means the in-memory
// session manager is used instead of Redis.
type RedisConfig struct {
	Host string
	Port string
}

type ModelConfig struct {
	Provider     string // "endpoint" or "gemini"
	EndpointURL  string
	GeminiAPIKey string
	Timeout      time.Duration
}

type LoggerConfig struct {
	Level      logger.LogLevel
	OutputPath string
	Format     string
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvSeconds(key string, defaultSeconds int) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return time.Duration(defaultSeconds) * time.Second
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		return time.Duration(defaultSeconds) * time.Second
	}
	return time.Duration(seconds) * time.Second
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return logger.LevelDebug
	case "info":
		return logger.LevelInfo
	case "warn", "warning":
		return logger.LevelWarn
	case "error":
		return logger.LevelError
	default:
		return logger.LevelInfo
	}
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnvOrDefault("SERVER_PORT", "8080"),
			StoreTimeout: getEnvSeconds("STORE_TIMEOUT", 5),
		},
		DB: DBConfig{
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			Port:     getEnvOrDefault("DB_PORT", "5432"),
			User:     getEnvOrDefault("DB_USER", "postgres"),
			Password: getEnvOrDefault("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrDefault("DB_NAME", "dm_webhook"),
		},
		Redis: RedisConfig{
			Host: os.Getenv("REDIS_HOST"),
			Port: getEnvOrDefault("REDIS_PORT", "6379"),
		},
		Model: ModelConfig{
			Provider:     getEnvOrDefault("MODEL_PROVIDER", "endpoint"),
			EndpointURL:  os.Getenv("MODEL_ENDPOINT_URL"),
			GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
			Timeout:      getEnvSeconds("MODEL_TIMEOUT", 10),
		},
		Logger: LoggerConfig{
			Level:      parseLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
			OutputPath: getEnvOrDefault("LOG_OUTPUT", "logs/app.log"),
			Format:     getEnvOrDefault("LOG_FORMAT", "json"),
		},
	}

	switch cfg.Model.Provider {
	case "endpoint", "gemini":
	default:
		return nil, fmt.Errorf("unknown MODEL_PROVIDER %q", cfg.Model.Provider)
	}

	return cfg, nil
}

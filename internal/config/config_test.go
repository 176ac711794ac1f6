package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vladimiradmaev/dm-webhook/internal/logger"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.StoreTimeout)
	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, "dm_webhook", cfg.DB.DBName)
	assert.Equal(t, "endpoint", cfg.Model.Provider)
	assert.Equal(t, 10*time.Second, cfg.Model.Timeout)
	assert.Equal(t, logger.LevelInfo, cfg.Logger.Level)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORE_TIMEOUT", "2")
	t.Setenv("MODEL_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("MODEL_TIMEOUT", "30")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("REDIS_HOST", "redis.internal")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 2*time.Second, cfg.Server.StoreTimeout)
	assert.Equal(t, "gemini", cfg.Model.Provider)
	assert.Equal(t, "test-key", cfg.Model.GeminiAPIKey)
	assert.Equal(t, 30*time.Second, cfg.Model.Timeout)
	assert.Equal(t, logger.LevelDebug, cfg.Logger.Level)
	assert.Equal(t, "redis.internal", cfg.Redis.Host)
	assert.Equal(t, "6379", cfg.Redis.Port)
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	t.Setenv("MODEL_PROVIDER", "llama-on-a-floppy")

	_, err := Load()
	assert.Error(t, err)
}

func TestInvalidTimeoutFallsBackToDefault(t *testing.T) {
	t.Setenv("MODEL_TIMEOUT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, cfg.Model.Timeout)
}

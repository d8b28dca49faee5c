package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "ticket-triage", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 60*time.Second, cfg.App.RequestTimeout())

	assert.Equal(t, "groq", cfg.LLM.Provider)
	assert.Equal(t, 30*time.Second, cfg.LLM.RequestTimeout())
	assert.Equal(t, 1024, cfg.LLM.MaxTokens)
	assert.Equal(t, 2048, cfg.LLM.DraftMaxTokens)
	assert.Equal(t, 4000, cfg.LLM.ContextTruncateRune)

	assert.Equal(t, "memory", cfg.Dedupe.Backend)
	assert.Equal(t, "127.0.0.1:6379", cfg.Redis.Addr)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9999")
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("LLM_API_KEY", "sk-test")
	t.Setenv("LLM_REQUEST_TIMEOUT_SECONDS", "5")
	t.Setenv("DEDUPE_BACKEND", "redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("POSTGRES_RUN_MIGRATIONS", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9999", cfg.App.Addr())
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, 5*time.Second, cfg.LLM.RequestTimeout())
	assert.Equal(t, "redis", cfg.Dedupe.Backend)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.False(t, cfg.Postgres.RunMigrations)
}

func TestLoadInvalidNumbersFallBack(t *testing.T) {
	t.Setenv("LLM_MAX_TOKENS", "not-a-number")
	t.Setenv("POSTGRES_RUN_MIGRATIONS", "not-a-bool")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 1024, cfg.LLM.MaxTokens)
	assert.True(t, cfg.Postgres.RunMigrations)
}

func TestLoadRejectsInvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "oops")

	_, err := Load()
	require.Error(t, err)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"RECIPE_API_KEY", "RECIPE_API_KEY_FILE",
		"OPENAI_API_KEY", "OPENAI_API_KEY_FILE",
		"OPENAI_API_URL", "OPENAI_MODEL", "OPENAI_TEMPERATURE", "OPENAI_MAX_TOKENS",
		"SERVER_HOST", "SERVER_PORT",
		"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadRequiresSecrets(t *testing.T) {
	clearEnv(t)

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "RECIPE_API_KEY")
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("RECIPE_API_KEY", "shared-secret")
	t.Setenv("OPENAI_API_KEY", "llm-key")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "https://api.openai.com/v1/chat/completions", cfg.LLMAPIURL)
	assert.Equal(t, "gpt-4o-mini", cfg.LLMModel)
	assert.Equal(t, 0.7, cfg.LLMTemperature)
	assert.Equal(t, 1000, cfg.LLMMaxTokens)
	assert.Equal(t, "", cfg.RedisAddr())
}

func TestLoadSecretFileFallback(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "recipe_api_key")
	require.NoError(t, os.WriteFile(path, []byte("file-secret\n"), 0o600))

	t.Setenv("RECIPE_API_KEY_FILE", path)
	t.Setenv("OPENAI_API_KEY", "llm-key")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "file-secret", cfg.RecipeAPIKey)
}

func TestLoadTuningOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("RECIPE_API_KEY", "shared-secret")
	t.Setenv("OPENAI_API_KEY", "llm-key")
	t.Setenv("OPENAI_TEMPERATURE", "0.2")
	t.Setenv("OPENAI_MAX_TOKENS", "512")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 0.2, cfg.LLMTemperature)
	assert.Equal(t, 512, cfg.LLMMaxTokens)
}

func TestLoadRejectsBadTuningValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("RECIPE_API_KEY", "shared-secret")
	t.Setenv("OPENAI_API_KEY", "llm-key")
	t.Setenv("OPENAI_TEMPERATURE", "warm")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_TEMPERATURE")
}

func TestRedisAddr(t *testing.T) {
	clearEnv(t)
	t.Setenv("RECIPE_API_KEY", "shared-secret")
	t.Setenv("OPENAI_API_KEY", "llm-key")
	t.Setenv("REDIS_HOST", "cache.internal")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "cache.internal:6379", cfg.RedisAddr())
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("ENV", "production")
	assert.Equal(t, Production, GetEnvironment())
	assert.True(t, IsProduction())

	t.Setenv("ENV", "test")
	assert.Equal(t, Test, GetEnvironment())
	assert.True(t, IsTest())

	t.Setenv("ENV", "")
	assert.Equal(t, Development, GetEnvironment())
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"PORT", "LLM_ENDPOINT", "LLM_MODEL", "LLM_TIMEOUT", "SESSION_TTL", "MAX_FILE_SIZE", "S3_ENDPOINT", "LLM_API_KEY_ENV", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DefaultLLMEndpoint, cfg.LLMEndpoint)
	assert.Equal(t, DefaultLLMModel, cfg.LLMModel)
	assert.Equal(t, 60*time.Second, cfg.LLMTimeout)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Equal(t, int64(10<<20), cfg.MaxFileSize)
	assert.Equal(t, "OPENROUTER_API_KEY", cfg.APIKeyEnv)
	assert.Empty(t, cfg.S3Endpoint)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("LLM_TIMEOUT", "5s")
	t.Setenv("SESSION_TTL", "10m")
	t.Setenv("MAX_FILE_SIZE", "1024")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.LLMTimeout)
	assert.Equal(t, 10*time.Minute, cfg.SessionTTL)
	assert.Equal(t, int64(1024), cfg.MaxFileSize)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Run("unparseable timeout", func(t *testing.T) {
		t.Setenv("LLM_TIMEOUT", "soon")
		_, err := Load()
		assert.ErrorContains(t, err, "LLM_TIMEOUT")
	})

	t.Run("negative timeout", func(t *testing.T) {
		t.Setenv("LLM_TIMEOUT", "-1s")
		_, err := Load()
		assert.ErrorContains(t, err, "must be positive")
	})

	t.Run("non numeric file size", func(t *testing.T) {
		t.Setenv("MAX_FILE_SIZE", "big")
		_, err := Load()
		assert.ErrorContains(t, err, "MAX_FILE_SIZE")
	})
}

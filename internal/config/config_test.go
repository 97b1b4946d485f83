package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/resume-screener/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "gemini-2.0-flash", cfg.GeminiModel)
	assert.Equal(t, "json_data", cfg.SnapshotDir)
	assert.Equal(t, int64(10), cfg.MaxUploadMB)
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.IsDev())
	assert.False(t, cfg.IsProd())
	assert.False(t, cfg.OracleConfigured())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("PORT", "9090")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("REQUEST_TIMEOUT", "5s")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.IsProd())
	assert.True(t, cfg.OracleConfigured())
}

func TestLoadInvalidValue(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	_, err := config.Load()
	require.Error(t, err)
}

func TestOracleConfiguredIgnoresWhitespace(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "   ")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.False(t, cfg.OracleConfigured())
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "0123456789abcdef-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, 2*time.Second, cfg.Auth.LookupTimeout())
	assert.Zero(t, cfg.Auth.AccountCacheTTL())
	assert.True(t, cfg.Auth.DiscloseAllowedRoles)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "0123456789abcdef-test")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("AUTH_ACCOUNT_CACHE_TTL_SECONDS", "15")
	t.Setenv("AUTH_LOOKUP_TIMEOUT_MS", "250")
	t.Setenv("AUTH_DISCLOSE_ALLOWED_ROLES", "false")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, 15*time.Second, cfg.Auth.AccountCacheTTL())
	assert.Equal(t, 250*time.Millisecond, cfg.Auth.LookupTimeout())
	assert.False(t, cfg.Auth.DiscloseAllowedRoles)
	assert.Zero(t, cfg.App.RequestTimeout())
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("AUTH_JWT_SECRET", "")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("short secret", func(t *testing.T) {
		t.Setenv("AUTH_JWT_SECRET", "short")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("non numeric port", func(t *testing.T) {
		t.Setenv("AUTH_JWT_SECRET", "0123456789abcdef-test")
		t.Setenv("APP_PORT", "http")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("bad redis db", func(t *testing.T) {
		t.Setenv("AUTH_JWT_SECRET", "0123456789abcdef-test")
		t.Setenv("REDIS_DB", "zero")
		_, err := Load()
		assert.Error(t, err)
	})
}

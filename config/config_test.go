package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "JWT_SECRET", "JWT_REFRESH_SECRET", "DATA_DIR", "REDIS_ADDR"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, DefaultAccessSecret, cfg.JWTAccessSecret)
	assert.Equal(t, DefaultRefreshSecret, cfg.JWTRefreshSecret)
	assert.NotEqual(t, cfg.JWTAccessSecret, cfg.JWTRefreshSecret)
	assert.True(t, cfg.UsesDefaultSecrets())
	assert.Equal(t, filepath.Join("data", "users.json"), cfg.UsersPath())
	assert.Equal(t, filepath.Join("data", "logins.json"), cfg.LoginsPath())
	assert.Empty(t, cfg.RedisAddr)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("JWT_SECRET", "access-from-env")
	t.Setenv("JWT_REFRESH_SECRET", "refresh-from-env")
	t.Setenv("DATA_DIR", "/var/lib/ipdr")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("MAIL_SEND_ENABLED", "true")

	cfg := Load()

	require.Equal(t, "9000", cfg.Port)
	require.Equal(t, "access-from-env", cfg.JWTAccessSecret)
	require.Equal(t, "refresh-from-env", cfg.JWTRefreshSecret)
	require.False(t, cfg.UsesDefaultSecrets())
	require.Equal(t, filepath.Join("/var/lib/ipdr", "users.json"), cfg.UsersPath())
	require.Equal(t, 3, cfg.RedisDB)
	require.True(t, cfg.MailSendEnabled)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("DEBUG_METRICS_ENABLED", "maybe")

	cfg := Load()

	assert.Equal(t, 0, cfg.RedisDB)
	assert.True(t, cfg.DebugMetricsEnabled)
}

func TestCORSOrigins_TrimsAndSkipsEmpty(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: " http://a.local ,, http://b.local "}
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.CORSOrigins())

	cfg.CORSAllowedOrigins = ""
	assert.Empty(t, cfg.CORSOrigins())
}

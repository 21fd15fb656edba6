package main

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ipdr-analysis/auth-server/config"
	"github.com/ipdr-analysis/auth-server/pkg/helpers"
)

func quietLogger() (*logrus.Logger, *test.Hook) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger, test.NewLocal(logger)
}

func TestCheckSecrets_RejectsSharedSecret(t *testing.T) {
	logger, _ := quietLogger()
	cfg := &config.Config{Env: "production", JWTAccessSecret: "same", JWTRefreshSecret: "same"}

	err := checkSecrets(cfg, helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret), logger)

	assert.ErrorIs(t, err, helpers.ErrSharedSecrets)
}

func TestCheckSecrets_DefaultSecretsAlwaysReported(t *testing.T) {
	tests := []struct {
		env   string
		level logrus.Level
	}{
		{"development", logrus.WarnLevel},
		{"production", logrus.ErrorLevel},
	}
	for _, tc := range tests {
		t.Run(tc.env, func(t *testing.T) {
			logger, hook := quietLogger()
			cfg := &config.Config{Env: tc.env, JWTAccessSecret: config.DefaultAccessSecret, JWTRefreshSecret: config.DefaultRefreshSecret}

			err := checkSecrets(cfg, helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret), logger)

			require.NoError(t, err)
			require.Len(t, hook.AllEntries(), 1)
			assert.Equal(t, tc.level, hook.LastEntry().Level)
		})
	}
}

func TestCheckSecrets_CustomSecretsQuiet(t *testing.T) {
	logger, hook := quietLogger()
	cfg := &config.Config{Env: "production", JWTAccessSecret: "a-long-access", JWTRefreshSecret: "a-long-refresh"}

	require.NoError(t, checkSecrets(cfg, helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret), logger))
	assert.Empty(t, hook.AllEntries())
}

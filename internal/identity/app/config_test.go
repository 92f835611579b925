package app

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/identity/pkg/httpx"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(env.Options{Environment: map[string]string{
		"JWT_SIGNER_KEY": "secret",
	}})
	require.NoError(t, err)

	require.Equal(t, "secret", cfg.SignerKey)
	require.Equal(t, "mq", cfg.Issuer)
	require.Equal(t, time.Hour, cfg.ValidDuration())
	require.Equal(t, 10*time.Hour, cfg.RefreshableDuration())
	require.Equal(t, "identity.db", cfg.DatabaseFile)
	require.Equal(t, BackendSQLite, cfg.RevocationBackend)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
	require.Equal(t, time.Hour, cfg.HousekeepingInterval)
	require.Equal(t, "admin", cfg.AdminUsername)
	require.Equal(t, httpx.StrictLimit, cfg.AuthLimit)
}

func TestLoadConfig_Overrides(t *testing.T) {
	cfg, err := loadConfig(env.Options{Environment: map[string]string{
		"JWT_SIGNER_KEY":            "secret",
		"JWT_ISSUER":                "identity",
		"JWT_VALID_DURATION":        "60",
		"JWT_REFRESHABLE_DURATION":  "120",
		"REVOCATION_BACKEND":        "redis",
		"REDIS_ADDR":                "cache:6379",
		"REDIS_DB":                  "2",
		"HOUSEKEEPING_INTERVAL":     "5m",
		"RATELIMIT_AUTH_REQUESTS":   "0",
		"RATELIMIT_AUTH_WINDOW_SEC": "30",
		"ADMIN_USERNAME":            "root",
		"ADMIN_PASSWORD":            "root-password",
	}})
	require.NoError(t, err)

	require.Equal(t, "identity", cfg.Issuer)
	require.Equal(t, time.Minute, cfg.ValidDuration())
	require.Equal(t, 2*time.Minute, cfg.RefreshableDuration())
	require.Equal(t, BackendRedis, cfg.RevocationBackend)
	require.Equal(t, "cache:6379", cfg.RedisAddr)
	require.Equal(t, 2, cfg.RedisDB)
	require.Equal(t, 5*time.Minute, cfg.HousekeepingInterval)
	require.True(t, cfg.AuthLimit.Disabled())
	require.Equal(t, 30, cfg.AuthLimit.WindowSec)
	require.Equal(t, "root", cfg.AdminUsername)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want error
	}{
		{"missing secret", map[string]string{}, nil},
		{"empty secret", map[string]string{"JWT_SIGNER_KEY": ""}, nil},
		{"zero duration", map[string]string{"JWT_SIGNER_KEY": "s", "JWT_VALID_DURATION": "0"}, ErrInvalidDuration},
		{"bad backend", map[string]string{"JWT_SIGNER_KEY": "s", "REVOCATION_BACKEND": "memcached"}, ErrUnknownBackend},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(env.Options{Environment: tt.env})
			require.Error(t, err)
			if tt.want != nil {
				require.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestConfig_LogValueHidesSecrets(t *testing.T) {
	cfg := Config{SignerKey: "super-secret-key", AdminPassword: "admin-pass", Issuer: "mq"}

	var buf bytes.Buffer
	slog.New(slog.NewJSONHandler(&buf, nil)).Info("config", "config", cfg)

	require.Contains(t, buf.String(), `"issuer":"mq"`)
	require.NotContains(t, buf.String(), "super-secret-key")
	require.NotContains(t, buf.String(), "admin-pass")
}

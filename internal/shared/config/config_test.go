package config_test

import (
	"testing"
	"time"

	"go-gemtrack/internal/shared/config"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := config.LoadFrom(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, "session-token", cfg.Auth.CookieName)
	assert.Equal(t, 50, cfg.Outbox.BatchSize)
	assert.Equal(t, []byte("supersecretkey"), cfg.Auth.SessionSecret())
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "legacy-secret")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("GEMTRACK_APP_PORT", "8080")
	t.Setenv("GEMTRACK_LOG_LEVEL", "debug")

	cfg, err := config.LoadFrom(viper.New())
	require.NoError(t, err)

	assert.True(t, cfg.App.IsProduction())
	assert.Equal(t, "legacy-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadFrom_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := config.LoadFrom(viper.New())
	assert.Error(t, err)
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("APP_NAME", "job-portal")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("JWT_ACCESS_SECRET", "access")
	t.Setenv("JWT_REFRESH_SECRET", "refresh")
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("APP_NAME", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("JWT_ACCESS_SECRET", "")
	t.Setenv("JWT_REFRESH_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, errMissingRequiredEnv)
	assert.Contains(t, err.Error(), "APP_NAME")
	assert.Contains(t, err.Error(), "JWT_REFRESH_SECRET")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "job-portal", cfg.App.AppName)
	assert.Equal(t, "migrations", cfg.App.MigrationsDir)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessExpiresIn)
	assert.Equal(t, 168*time.Hour, cfg.JWT.RefreshExpiresIn)
	assert.Equal(t, "INFO", cfg.Logger.Level)
	assert.Equal(t, "*/15 * * * *", cfg.Alerts.Schedule)
	assert.Equal(t, 10, cfg.Auth.RateLimitBurst)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvironmentOverride(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("REDIS_TTL", "120")
	t.Setenv("JWT_ACCESS_EXPIRES_IN", "5m")
	t.Setenv("PUBLIC_BASE_URL", "https://jobs.example.com/")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 120*time.Second, cfg.Redis.TTL)
	assert.Equal(t, 5*time.Minute, cfg.JWT.AccessExpiresIn)
	assert.Equal(t, "https://jobs.example.com", cfg.App.PublicBaseURL)
	assert.Equal(t, "DEBUG", cfg.Logger.Level)
}

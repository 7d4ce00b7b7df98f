package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	unsetenv(t, "APP_ENV", "DATABASE_URL", "JWT_ACCESS_TTL", "SHUTDOWN_TIMEOUT", "REDIS_DB")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, "inkbook.db", cfg.DatabaseURL)
	assert.Equal(t, 24*time.Hour, cfg.JWTAccessTTL)
	assert.False(t, cfg.IsProdLike())
}

func TestLoad_ProdRequiresSecrets(t *testing.T) {
	unsetenv(t, "DATABASE_URL", "JWT_ACCESS_TTL", "SHUTDOWN_TIMEOUT", "REDIS_DB")
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	t.Setenv("JWT_SECRET", "a-real-secret")
	t.Setenv("REDIS_ADDR", "")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_ADDR")
}

func TestLoad_CORSList(t *testing.T) {
	unsetenv(t, "DATABASE_URL", "JWT_ACCESS_TTL", "SHUTDOWN_TIMEOUT", "REDIS_DB")
	t.Setenv("APP_ENV", "dev")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://inkbook.app,https://admin.inkbook.app")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://inkbook.app", "https://admin.inkbook.app"}, cfg.CORSAllowedOrigins)
}

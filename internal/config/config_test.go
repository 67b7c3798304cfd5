package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FailsWithoutDSN(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "POSTGRES_DSN")
}

func TestLoad_AppliesDefaults(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "postgres://localhost:5432/directory")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "member-directory", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:4000", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, int32(10), cfg.Postgres.MaxConns)
	assert.True(t, cfg.Postgres.RunMigrations)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoad_ReadsOverrides(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "postgres://localhost:5432/directory")
	t.Setenv("APP_PORT", "8081")
	t.Setenv("POSTGRES_RUN_MIGRATIONS", "false")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8081", cfg.App.Port)
	assert.False(t, cfg.Postgres.RunMigrations)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

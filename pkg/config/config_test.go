package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	require.Equal(t, ":8080", cfg.Server.Address)
	require.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	require.Equal(t, "file://migrations", cfg.Database.MigrationsPath)
	require.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
	require.False(t, cfg.Redis.Enabled)
	require.Equal(t, 1500, cfg.Platform.DefaultFeeBps)
	require.Equal(t, "marketplace", cfg.Metrics.Prefix)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":9090")
	t.Setenv("SERVER_SHUTDOWN_TIMEOUT", "5s")
	t.Setenv("PLATFORM_FEE_BPS", "1000")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("DB_CONN_MAX_LIFETIME", "30m")

	cfg := Load()

	require.Equal(t, ":9090", cfg.Server.Address)
	require.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	require.Equal(t, 1000, cfg.Platform.DefaultFeeBps)
	require.True(t, cfg.Redis.Enabled)
	require.Equal(t, 30*time.Minute, cfg.Database.ConnMaxLifetime)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("PLATFORM_FEE_BPS", "fifteen percent")
	t.Setenv("REDIS_ENABLED", "sure")

	cfg := Load()

	require.Equal(t, 1500, cfg.Platform.DefaultFeeBps)
	require.False(t, cfg.Redis.Enabled)
}

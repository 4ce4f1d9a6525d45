package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WuorBhang/alx-backend-graphql-crm/internal/config"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "crm")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "disable", cfg.Postgres.SSLMode)
	assert.Equal(t, int32(10), cfg.Postgres.MaxConns)
	assert.Equal(t, 30*time.Minute, cfg.Postgres.MaxConnLifetime)
	assert.Equal(t, "migrations", cfg.Postgres.MigrationsPath)
	assert.Equal(t, "http://localhost:8080/graphql", cfg.Agent.GraphQLURL)
	assert.Equal(t, 5*time.Minute, cfg.Agent.HeartbeatInterval)
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("CRM_HEARTBEAT_INTERVAL", "30s")
	t.Setenv("CRM_HEARTBEAT_LOG", "/var/log/crm/heartbeat.txt")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, int32(25), cfg.Postgres.MaxConns)
	assert.Equal(t, 30*time.Second, cfg.Agent.HeartbeatInterval)
	assert.Equal(t, "/var/log/crm/heartbeat.txt", cfg.Agent.HeartbeatLog)
}

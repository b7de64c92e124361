package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_NAME", "APP_ENV", "ROSTER_STORE", "ROSTER_TOP_DEFAULT", "ROSTER_SEED_SAMPLE",
		"DATABASE_URL", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
		"REDIS_URL", "REDIS_HOST", "REDIS_SESSION_TTL",
		"STORE_CONNECT_ATTEMPTS", "STORE_CONNECT_DELAY", "EXPORT_XLSX_PATH", "LOG_LEVEL", "LOG_OUTPUT", "LOG_FORMAT",
		"SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gradebook", cfg.App.Name)
	assert.Equal(t, StoreMemory, cfg.Store.Backend)
	assert.Equal(t, 3, cfg.Roster.TopDefault)
	assert.True(t, cfg.Roster.SeedSample)
	assert.Equal(t, "warn", cfg.Observability.LogLevel)
	assert.Equal(t, "json", cfg.Observability.LogFormat)
	assert.Equal(t, 12*time.Hour, cfg.Redis.SessionTTL)
	assert.Empty(t, cfg.Export.XLSXPath)
	assert.Equal(t, 10*time.Second, cfg.App.ShutdownTimeout)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ROSTER_STORE", "Postgres")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "grader")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("ROSTER_TOP_DEFAULT", "5")
	t.Setenv("ROSTER_SEED_SAMPLE", "false")
	t.Setenv("STORE_CONNECT_DELAY", "1s")
	t.Setenv("EXPORT_XLSX_PATH", "out/summary.xlsx")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorePostgres, cfg.Store.Backend)
	assert.Equal(t, "postgres://grader:secret@db:5432/postgres?sslmode=disable", cfg.Database.URL)
	assert.Equal(t, 5, cfg.Roster.TopDefault)
	assert.False(t, cfg.Roster.SeedSample)
	assert.Equal(t, time.Second, cfg.Store.ConnectDelay)
	assert.Equal(t, "out/summary.xlsx", cfg.Export.XLSXPath)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("ROSTER_TOP_DEFAULT", "many")
	t.Setenv("ROSTER_SEED_SAMPLE", "maybe")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Roster.TopDefault)
	assert.True(t, cfg.Roster.SeedSample)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"unknown store", func(c *Config) { c.Store.Backend = "sqlite" }, "ROSTER_STORE must be one of"},
		{"postgres without url", func(c *Config) { c.Store.Backend = StorePostgres }, "DATABASE_URL"},
		{"redis without host", func(c *Config) { c.Store.Backend = StoreRedis; c.Redis.Host = "" }, "REDIS_URL or REDIS_HOST"},
		{"top default", func(c *Config) { c.Roster.TopDefault = 0 }, "ROSTER_TOP_DEFAULT"},
		{"attempts", func(c *Config) { c.Store.ConnectAttempts = 0 }, "STORE_CONNECT_ATTEMPTS"},
		{"export ext", func(c *Config) { c.Export.XLSXPath = "out.csv" }, "EXPORT_XLSX_PATH"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Roster: RosterConfig{TopDefault: 3},
				Store:  StoreConfig{Backend: StoreMemory, ConnectAttempts: 1},
				Redis:  RedisConfig{Host: "localhost"},
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_DatabaseURLEscapesCredentials(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "grader")
	t.Setenv("DB_PASSWORD", "p@ss/word")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://grader:p%40ss%2Fword@db:5432/postgres?sslmode=disable", cfg.Database.URL)
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	cfg := &Config{Store: StoreConfig{Backend: "sqlite"}}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ROSTER_STORE")
	assert.Contains(t, err.Error(), "ROSTER_TOP_DEFAULT")
	assert.Contains(t, err.Error(), "STORE_CONNECT_ATTEMPTS")
}

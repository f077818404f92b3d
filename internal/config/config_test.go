package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(8000), cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:8000", cfg.Address())
	assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
	assert.Equal(t, DefaultDatabasePath, cfg.Store.DatabasePath)
	assert.Equal(t, 10*time.Second, cfg.Providers.Timeout)
	assert.Equal(t, uint32(5), cfg.Providers.BreakerFailureThreshold)
	assert.Empty(t, cfg.Audit.Dir)
	assert.True(t, cfg.Tasks.Enabled)
	assert.False(t, cfg.SummaryBackfill.Enabled)
	require.NoError(t, cfg.Validate())
}

func TestNewConfig_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("DATABASE_PATH", "/tmp/books.db")
	t.Setenv("GEMINI_KEY", "secret")
	t.Setenv("PROVIDER_TIMEOUT", "3s")
	t.Setenv("PROVIDER_RATE_PER_SECOND", "0.5")
	t.Setenv("SUMMARY_BACKFILL_ENABLED", "true")
	t.Setenv("SUMMARY_BACKFILL_SCHEDULE", "0 * * * *")

	cfg := NewConfig()

	assert.Equal(t, int32(9090), cfg.HTTP.Port)
	assert.Equal(t, StoreDriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "/tmp/books.db", cfg.Store.DatabasePath)
	assert.Equal(t, "secret", cfg.Gemini.APIKey)
	assert.Equal(t, 3*time.Second, cfg.Providers.Timeout)
	assert.Equal(t, 0.5, cfg.Providers.RatePerSecond)
	assert.True(t, cfg.SummaryBackfill.Enabled)
	assert.Equal(t, "0 * * * *", cfg.SummaryBackfill.Schedule)
	require.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown driver", func(c *Config) { c.Store.Driver = "postgres" }},
		{"sqlite without path", func(c *Config) { c.Store.Driver = StoreDriverSQLite; c.Store.DatabasePath = "" }},
		{"bad port", func(c *Config) { c.HTTP.Port = 0 }},
		{"bad backfill schedule", func(c *Config) {
			c.SummaryBackfill.Enabled = true
			c.SummaryBackfill.Schedule = "every night"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

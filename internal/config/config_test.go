package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, RelayEmailJS, cfg.Relay.Provider)
	assert.Equal(t, 1500*time.Millisecond, cfg.SimulatedDelay())
	assert.False(t, cfg.RelayEnabled())
	assert.False(t, cfg.AdminEnabled())
	require.NoError(t, cfg.Validate())
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Database, cfg.Database)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.yml")

	original := DefaultConfig()
	original.Port = "9090"
	original.Relay.ServiceID = "service_x"
	original.Relay.PublicKey = "pk"
	original.Relay.NotificationTemplate = "template_notify"
	require.NoError(t, original.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", loaded.Port)
	assert.Equal(t, "service_x", loaded.Relay.ServiceID)
	assert.Equal(t, "template_notify", loaded.Relay.NotificationTemplate)
	assert.True(t, loaded.RelayEnabled())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("EMAILJS_SERVICE_ID", "service_plain")
	t.Setenv("PORTFOLIO_RELAY__SERVICE_ID", "service_prefixed")
	t.Setenv("PORTFOLIO_RELAY__PUBLIC_KEY", "pk_123")
	t.Setenv("PORTFOLIO_ADMIN__PASSWORD", "s3cret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	// Prefixed variables win over the plain names.
	assert.Equal(t, "service_prefixed", cfg.Relay.ServiceID)
	assert.Equal(t, "pk_123", cfg.Relay.PublicKey)
	assert.True(t, cfg.RelayEnabled())
	assert.True(t, cfg.AdminEnabled())
}

func TestRelayEnabledSMTP(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Relay.Provider = RelaySMTP
	assert.False(t, cfg.RelayEnabled())

	cfg.SMTP.User = "me@example.com"
	cfg.SMTP.Pass = "app-password"
	assert.True(t, cfg.RelayEnabled())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad port", func(c *Config) { c.Port = "http" }, "invalid port"},
		{"port out of range", func(c *Config) { c.Port = "70000" }, "invalid port"},
		{"bad mode", func(c *Config) { c.Mode = "prod" }, "invalid mode"},
		{"no database", func(c *Config) { c.Database = "" }, "database is required"},
		{"bad provider", func(c *Config) { c.Relay.Provider = "sendgrid" }, "invalid relay provider"},
		{"negative delay", func(c *Config) { c.Relay.SimulatedDelayMS = -1 }, "simulated_delay_ms"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}

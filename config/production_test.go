package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProductionConfig_Defaults(t *testing.T) {
	cfg, err := LoadProductionConfig()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "redis://localhost:6379", cfg.Redis.URL)
	assert.Equal(t, 3, cfg.Redis.ConnectRetries)
	assert.Equal(t, time.Second, cfg.Redis.RetryDelay)
	assert.Equal(t, "admin", cfg.Admin.Username)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "logs.txt", cfg.Logging.FilePath)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadProductionConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("REDIS_URL", "redis://cache.internal:6380")
	t.Setenv("REDIS_CONNECT_RETRIES", "5")
	t.Setenv("REDIS_RETRY_DELAY", "250ms")
	t.Setenv("ADMIN_USERNAME", "registrar")
	t.Setenv("SMTP_SERVER", "mail.internal")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("BCRYPT_COST", "10")

	cfg, err := LoadProductionConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "redis://cache.internal:6380", cfg.Redis.URL)
	assert.Equal(t, 5, cfg.Redis.ConnectRetries)
	assert.Equal(t, 250*time.Millisecond, cfg.Redis.RetryDelay)
	assert.Equal(t, "registrar", cfg.Admin.Username)
	assert.Equal(t, "mail.internal", cfg.SMTP.Host)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 10, cfg.Security.BcryptCost)
}

func TestLoadProductionConfig_MalformedValuesFallBackToDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-number")
	t.Setenv("SESSION_TTL", "soon")
	t.Setenv("METRICS_ENABLED", "perhaps")

	cfg, err := LoadProductionConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestValidateProductionConfig(t *testing.T) {
	valid := func() *ProductionConfig {
		cfg, err := LoadProductionConfig()
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*ProductionConfig)
		errMsg string
	}{
		{"port out of range", func(c *ProductionConfig) { c.Server.Port = 0 }, "SERVER_PORT"},
		{"missing redis url", func(c *ProductionConfig) { c.Redis.URL = "" }, "REDIS_URL"},
		{"zero connect retries", func(c *ProductionConfig) { c.Redis.ConnectRetries = 0 }, "REDIS_CONNECT_RETRIES"},
		{"missing admin username", func(c *ProductionConfig) { c.Admin.Username = "" }, "ADMIN_USERNAME"},
		{"missing admin password", func(c *ProductionConfig) { c.Admin.Password = "" }, "ADMIN_PASSWORD"},
		{"short session secret", func(c *ProductionConfig) { c.Session.Secret = "short" }, "SESSION_SECRET"},
		{"bcrypt cost too low", func(c *ProductionConfig) { c.Security.BcryptCost = 4 }, "BCRYPT_COST"},
		{"bcrypt cost too high", func(c *ProductionConfig) { c.Security.BcryptCost = 31 }, "BCRYPT_COST"},
		{"missing log file path", func(c *ProductionConfig) { c.Logging.FilePath = "" }, "LOG_FILE_PATH"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := ValidateProductionConfig(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

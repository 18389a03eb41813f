package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("JWT_TTL_HOURS", "2")
	t.Setenv("LATENCY_SCALE", "0")

	cfg := Load()

	assert.Equal(t, "memory", cfg.StoreDriver)
	assert.Equal(t, 2*time.Hour, cfg.TokenExpires)
	assert.Zero(t, cfg.LatencyScale)
	assert.Equal(t, "admin@freshmarket.com", cfg.AdminContact)
	assert.Equal(t, "plain", cfg.PasswordHashing)
	assert.Equal(t, "freshmarket", cfg.StoreNamespace)
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			AppPort:         "8080",
			StoreDriver:     "memory",
			JWTSecret:       "secret",
			PasswordHashing: "plain",
			AdminContact:    "admin@freshmarket.com",
			LatencyScale:    1,
		}
	}

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{name: "valid", modify: func(c *Config) {}},
		{name: "missing port", modify: func(c *Config) { c.AppPort = "" }, wantErr: true},
		{name: "missing secret", modify: func(c *Config) { c.JWTSecret = "" }, wantErr: true},
		{name: "unknown driver", modify: func(c *Config) { c.StoreDriver = "mongo" }, wantErr: true},
		{name: "unknown hashing", modify: func(c *Config) { c.PasswordHashing = "md5" }, wantErr: true},
		{name: "negative latency", modify: func(c *Config) { c.LatencyScale = -1 }, wantErr: true},
		{name: "bcrypt redis", modify: func(c *Config) { c.PasswordHashing = "bcrypt"; c.StoreDriver = "redis" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

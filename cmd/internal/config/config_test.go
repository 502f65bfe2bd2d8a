package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) lookupFunc {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 6060, cfg.Server.Port)
	assert.Equal(t, "./database.db", cfg.Database.Path)
	assert.True(t, cfg.Worker.Enabled)

	// a secret is the only thing defaults cannot provide
	assert.ErrorIs(t, cfg.Validate(), ErrMissingJWTSecret)
	cfg.Auth.JWTSecret = "s3cret"
	assert.NoError(t, cfg.Validate())
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.applyEnv(envMap(map[string]string{
		"PORT":                "8080",
		"JWT_SECRET":          "abc",
		"JWT_TTL":             "2h",
		"DATABASE_PATH":       "/tmp/meetapp.db",
		"MAIL_HOST":           "smtp.example.com",
		"WORKER_ENABLED":      "false",
		"WORKER_MAX_ATTEMPTS": "2",
		"LOG_LEVEL":           "",
	}))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "abc", cfg.Auth.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "/tmp/meetapp.db", cfg.Database.Path)
	assert.Equal(t, "smtp.example.com", cfg.Mail.Host)
	assert.False(t, cfg.Worker.Enabled)
	assert.Equal(t, 2, cfg.Worker.MaxAttempts)
	assert.Equal(t, "info", cfg.LogLevel, "empty values keep the default")
}

func TestApplyEnv_Errors(t *testing.T) {
	cfg := Default()
	err := cfg.applyEnv(envMap(map[string]string{
		"PORT":           "eighty",
		"JWT_TTL":        "forever",
		"WORKER_ENABLED": "maybe",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
	assert.Contains(t, err.Error(), "JWT_TTL")
	assert.Contains(t, err.Error(), "WORKER_ENABLED")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meetapp.yaml")
	content := `
log_level: debug
server:
  port: 7070
auth:
  jwt_secret: from-file
  token_ttl: 30m
worker:
  poll_interval: 1s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg := Default()
	require.NoError(t, cfg.loadFile(path))

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "from-file", cfg.Auth.JWTSecret)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, time.Second, cfg.Worker.PollInterval)
	assert.Equal(t, 5, cfg.Worker.MaxAttempts, "unset keys keep the default")

	assert.Error(t, cfg.loadFile(filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.Auth.JWTSecret = "s3cret"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: ErrInvalidLogLevel},
		{name: "port zero", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: ErrInvalidPort},
		{name: "no database", mutate: func(c *Config) { c.Database.Path = "" }, wantErr: ErrMissingDatabase},
		{name: "no ttl", mutate: func(c *Config) { c.Auth.TokenTTL = 0 }, wantErr: ErrInvalidTokenTTL},
		{name: "no poll interval", mutate: func(c *Config) { c.Worker.PollInterval = 0 }, wantErr: ErrInvalidPollPeriod},
		{name: "no attempts", mutate: func(c *Config) { c.Worker.MaxAttempts = 0 }, wantErr: ErrInvalidMaxAttempts},
		{name: "no backoff", mutate: func(c *Config) { c.Worker.Backoff = 0 }, wantErr: ErrInvalidBackoff},
		{name: "negative backoff", mutate: func(c *Config) { c.Worker.Backoff = -time.Second }, wantErr: ErrInvalidBackoff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

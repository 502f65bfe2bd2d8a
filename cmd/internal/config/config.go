// Package config loads the service configuration from an optional YAML file,
// a .env file and the process environment, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var (
	ErrMissingJWTSecret   = errors.New("auth.jwt_secret is required")
	ErrInvalidTokenTTL    = errors.New("auth.token_ttl must be positive")
	ErrMissingDatabase    = errors.New("database.path is required")
	ErrInvalidPort        = errors.New("server.port must be between 1 and 65535")
	ErrInvalidPollPeriod  = errors.New("worker.poll_interval must be positive")
	ErrInvalidMaxAttempts = errors.New("worker.max_attempts must be at least 1")
	ErrInvalidBackoff     = errors.New("worker.backoff must be positive")
	ErrInvalidLogLevel    = errors.New("log_level must be one of: debug, info, warn, error")
)

type Config struct {
	LogLevel string         `yaml:"log_level"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Uploads  UploadsConfig  `yaml:"uploads"`
	Mail     MailConfig     `yaml:"mail"`
	Worker   WorkerConfig   `yaml:"worker"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
	// PublicURL prefixes links to uploaded files.
	PublicURL string `yaml:"public_url"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

type UploadsConfig struct {
	Dir      string `yaml:"dir"`
	MaxBytes int64  `yaml:"max_bytes"`
}

// MailConfig configures SMTP delivery. An empty Host logs mails instead.
type MailConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type WorkerConfig struct {
	Enabled      bool          `yaml:"enabled"`
	PollInterval time.Duration `yaml:"poll_interval"`
	MaxAttempts  int           `yaml:"max_attempts"`
	Backoff      time.Duration `yaml:"backoff"`
}

func Default() *Config {
	return &Config{
		LogLevel: "info",
		Server:   ServerConfig{Port: 6060, PublicURL: "http://localhost:6060"},
		Database: DatabaseConfig{Path: "./database.db"},
		Auth:     AuthConfig{TokenTTL: 7 * 24 * time.Hour},
		Uploads:  UploadsConfig{Dir: "./uploads", MaxBytes: 5 << 20},
		Mail:     MailConfig{Port: 587, From: "Meetapp <noreply@meetapp.dev>"},
		Worker: WorkerConfig{
			Enabled:      true,
			PollInterval: 5 * time.Second,
			MaxAttempts:  5,
			Backoff:      30 * time.Second,
		},
	}
}

// Load reads .env (if present), then the YAML file named by CONFIG_FILE (if
// set), then environment overrides, and validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

type lookupFunc func(key string) (string, bool)

func (c *Config) applyEnv(lookup lookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	var errs []error
	integer := func(key string, dst *int) {
		if v, ok := lookup(key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	duration := func(key string, dst *time.Duration) {
		if v, ok := lookup(key); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = d
		}
	}

	str("LOG_LEVEL", &c.LogLevel)
	integer("PORT", &c.Server.Port)
	str("PUBLIC_URL", &c.Server.PublicURL)
	str("DATABASE_PATH", &c.Database.Path)
	str("JWT_SECRET", &c.Auth.JWTSecret)
	duration("JWT_TTL", &c.Auth.TokenTTL)
	str("UPLOADS_DIR", &c.Uploads.Dir)
	str("MAIL_HOST", &c.Mail.Host)
	integer("MAIL_PORT", &c.Mail.Port)
	str("MAIL_USER", &c.Mail.Username)
	str("MAIL_PASS", &c.Mail.Password)
	str("MAIL_FROM", &c.Mail.From)
	duration("WORKER_POLL_INTERVAL", &c.Worker.PollInterval)
	integer("WORKER_MAX_ATTEMPTS", &c.Worker.MaxAttempts)
	duration("WORKER_BACKOFF", &c.Worker.Backoff)

	if v, ok := lookup("WORKER_ENABLED"); ok && v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("WORKER_ENABLED: %w", err))
		} else {
			c.Worker.Enabled = enabled
		}
	}

	return errors.Join(errs...)
}

func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return ErrInvalidLogLevel
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return ErrInvalidPort
	}
	if c.Database.Path == "" {
		return ErrMissingDatabase
	}
	if c.Auth.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	if c.Auth.TokenTTL <= 0 {
		return ErrInvalidTokenTTL
	}
	if c.Worker.PollInterval <= 0 {
		return ErrInvalidPollPeriod
	}
	if c.Worker.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}
	if c.Worker.Backoff <= 0 {
		return ErrInvalidBackoff
	}
	return nil
}

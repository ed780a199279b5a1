// Package config loads and validates agapay configuration using Viper.
//
// Configuration is layered: built-in defaults < YAML config file < environment
// variables. Environment variables use the AGAPAY_ prefix (e.g.,
// AGAPAY_DATABASE_HOST overrides database.host in the YAML).
//
// DATABASE_URL has no prefix. When set it is used verbatim as the connection
// string and the individual database.* fields are ignored.
package config

import (
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Seed      SeedConfig      `mapstructure:"seed"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string          `mapstructure:"host"`
	Port         int             `mapstructure:"port"`
	ReadTimeout  time.Duration   `mapstructure:"read_timeout"`
	WriteTimeout time.Duration   `mapstructure:"write_timeout"`
	RateLimit    RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig bounds per-client request rates on the /v1 routes
type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute"`
	Burst             int  `mapstructure:"burst"`
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	// URL is a full connection string. It takes precedence over the discrete fields.
	URL                string `mapstructure:"url"`
	Host               string `mapstructure:"host"`
	Port               int    `mapstructure:"port"`
	Name               string `mapstructure:"name"`
	User               string `mapstructure:"user"`
	Password           string `mapstructure:"password"`
	SSLMode            string `mapstructure:"ssl_mode"`
	MaxConnections     int    `mapstructure:"max_connections"`
	MinIdleConnections int    `mapstructure:"min_idle_connections"`
}

// AuthConfig holds API authentication configuration
type AuthConfig struct {
	// APIKeyHash is the bcrypt hash of the bearer key accepted by /v1 routes.
	// An empty hash disables the /v1 routes.
	APIKeyHash string `mapstructure:"api_key_hash"`
}

// SeedConfig controls the seed command
type SeedConfig struct {
	// Migrate applies pending schema migrations before seeding.
	Migrate bool `mapstructure:"migrate"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TelemetryConfig holds observability configuration
type TelemetryConfig struct {
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// MetricsConfig holds Prometheus metrics configuration
type MetricsConfig struct {
	Enabled        bool `mapstructure:"enabled"`
	PrometheusPort int  `mapstructure:"prometheus_port"`
}

// bindEnvVars explicitly binds environment variables to config keys.
// This is necessary because AutomaticEnv() doesn't work well with nested structs during Unmarshal.
func bindEnvVars(v *viper.Viper) error {
	keys := []string{
		// Database
		"database.host",
		"database.port",
		"database.name",
		"database.user",
		"database.password",
		"database.ssl_mode",
		"database.max_connections",
		"database.min_idle_connections",

		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.rate_limit.enabled",
		"server.rate_limit.requests_per_minute",
		"server.rate_limit.burst",

		// Auth
		"auth.api_key_hash",

		// Seed
		"seed.migrate",

		// Logging
		"logging.level",
		"logging.format",

		// Telemetry
		"telemetry.metrics.enabled",
		"telemetry.metrics.prometheus_port",
	}
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("failed to bind env var %q: %w", key, err)
		}
	}

	// The conventional unprefixed variable used by hosting platforms and tooling.
	if err := v.BindEnv("database.url", "DATABASE_URL", "AGAPAY_DATABASE_URL"); err != nil {
		return fmt.Errorf("failed to bind env var %q: %w", "database.url", err)
	}
	return nil
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/agapay")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; use defaults and environment variables
	}

	v.SetEnvPrefix("AGAPAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := bindEnvVars(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Expand environment variables in sensitive fields
	cfg.Database.Password = expandEnv(cfg.Database.Password)
	cfg.Database.URL = expandEnv(cfg.Database.URL)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.rate_limit.enabled", true)
	v.SetDefault("server.rate_limit.requests_per_minute", 200)
	v.SetDefault("server.rate_limit.burst", 50)

	// Database defaults
	v.SetDefault("database.url", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "agapay")
	v.SetDefault("database.user", "agapay")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.min_idle_connections", 2)

	v.SetDefault("auth.api_key_hash", "")

	v.SetDefault("seed.migrate", true)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	// Telemetry defaults
	v.SetDefault("telemetry.metrics.enabled", true)
	v.SetDefault("telemetry.metrics.prometheus_port", 9090)
}

// expandEnv expands environment variables in the format ${VAR_NAME}
func expandEnv(s string) string {
	return os.ExpandEnv(s)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Server.RateLimit.Enabled && (c.Server.RateLimit.RequestsPerMinute < 1 || c.Server.RateLimit.Burst < 1) {
		return fmt.Errorf("server.rate_limit requires positive requests_per_minute and burst")
	}

	// Discrete fields are only required when no URL is supplied.
	if c.Database.URL == "" {
		if c.Database.Host == "" {
			return fmt.Errorf("database.host is required")
		}
		if c.Database.Name == "" {
			return fmt.Errorf("database.name is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database.user is required")
		}
	}
	if c.Database.MaxConnections < 0 || c.Database.MinIdleConnections < 0 {
		return fmt.Errorf("database connection pool sizes must not be negative")
	}

	if c.Telemetry.Metrics.Enabled {
		if c.Telemetry.Metrics.PrometheusPort < 1 || c.Telemetry.Metrics.PrometheusPort > 65535 {
			return fmt.Errorf("invalid prometheus port: %d", c.Telemetry.Metrics.PrometheusPort)
		}
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s (must be debug, info, warn, or error)", c.Logging.Level)
	}

	return nil
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Describe returns a loggable summary of the connection target with the
// password masked. When URL is set it describes the URL, never the discrete
// fields.
func (c *DatabaseConfig) Describe() string {
	if c.URL != "" {
		return describeURL(c.URL)
	}
	masked := ""
	if c.Password != "" {
		masked = "****"
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, masked, c.Name, c.SSLMode,
	)
}

var dsnPassword = regexp.MustCompile(`password=('(?:[^'\\]|\\.)*'|\S+)`)

// describeURL masks the password of a postgres:// URL or of a key=value DSN.
func describeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return dsnPassword.ReplaceAllString(raw, "password=****")
	}
	if u.User != nil {
		if _, ok := u.User.Password(); ok {
			u.User = url.UserPassword(u.User.Username(), "****")
		}
	}
	return u.String()
}

// GetAddress returns the server address in host:port format
func (c *ServerConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

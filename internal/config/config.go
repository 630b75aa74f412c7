package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all configuration for the catalog API
type Config struct {
	// Server configuration
	HTTPPort int    `env:"PORT" envDefault:"3000"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Database configuration
	Database DatabaseConfig

	// Timeouts
	Timeouts TimeoutConfig
}

// DatabaseConfig holds the relational database connection configuration
type DatabaseConfig struct {
	Driver   string `env:"DB_DRIVER" envDefault:"mysql"`
	DSN      string `env:"DB_DSN"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	// Port defaults to 3306 for mysql and 5432 for postgres when unset.
	Port     int    `env:"DB_PORT"`
	User     string `env:"DB_USER" envDefault:"root"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME" envDefault:"videojuegos"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	// Connection pool settings
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`

	// Health checks. A zero interval only runs the startup check.
	HealthCheckTimeout  time.Duration `env:"DB_HEALTH_CHECK_TIMEOUT" envDefault:"5s"`
	HealthCheckInterval time.Duration `env:"DB_HEALTH_CHECK_INTERVAL" envDefault:"30s"`
}

// TimeoutConfig holds various timeout configurations
type TimeoutConfig struct {
	ShutdownTimeout time.Duration `env:"TIMEOUT_SHUTDOWN" envDefault:"30s"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// applyDefaults fills settings whose default depends on other settings
func (c *Config) applyDefaults() {
	if c.Database.Port == 0 {
		switch c.Database.Driver {
		case "mysql":
			c.Database.Port = 3306
		case "postgres":
			c.Database.Port = 5432
		}
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}

	// Validate database config
	switch c.Database.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver: %s (must be mysql, postgres, or sqlite)", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		if c.Database.Name == "" {
			return fmt.Errorf("database name is required")
		}
		if c.Database.Driver != "sqlite" {
			if c.Database.Host == "" {
				return fmt.Errorf("database host is required")
			}
			if c.Database.Port < 1 || c.Database.Port > 65535 {
				return fmt.Errorf("invalid database port: %d", c.Database.Port)
			}
		}
	}
	if c.Database.MaxOpenConns < 1 {
		return fmt.Errorf("database max open connections must be at least 1")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database max idle connections cannot be negative")
	}
	if c.Database.HealthCheckTimeout <= 0 {
		return fmt.Errorf("database health check timeout must be positive")
	}
	if c.Database.HealthCheckInterval < 0 {
		return fmt.Errorf("database health check interval cannot be negative")
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

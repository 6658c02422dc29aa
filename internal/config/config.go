// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all runtime configuration for the server.
type Config struct {
	Env      string `envconfig:"APP_ENV" default:"development"`
	Port     string `envconfig:"APP_PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	JWTSecret   string        `envconfig:"JWT_SECRET" default:"change-me-in-production"`
	JWTIssuer   string        `envconfig:"JWT_ISSUER" default:"paneerflow"`
	JWTTokenTTL time.Duration `envconfig:"JWT_TOKEN_TTL" default:"12h"`

	ReadTimeout     time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `envconfig:"HTTP_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// Load reads configuration from the environment. An optional .env file in the
// working directory is merged in first; its absence is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env config: %w", err)
	}
	return &cfg, nil
}

// Development reports whether the service runs in development mode.
func (c *Config) Development() bool {
	return c.Env == "development"
}

package config

import (
	"errors"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Port               int    `env:"PORT" env-default:"8080"`
	DatabaseURL        string `env:"DATABASE_URL"`
	FrontendURL        string `env:"FRONTEND_URL" env-default:"http://localhost:5173"`
	LogLevel           string `env:"LOG_LEVEL" env-default:"INFO"`
	RateLimitPerMinute int    `env:"RATE_LIMIT_PER_MINUTE" env-default:"60"`
}

// Load reads configuration from the environment. DATABASE_URL is required:
// the process must not start without a store to connect to.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	if cfg.DatabaseURL == "" {
		return nil, errors.New("missing required env var: DATABASE_URL")
	}
	return &cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

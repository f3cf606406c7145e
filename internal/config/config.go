// Package config loads the ambient settings of the csveda command from
// environment variables. The analysed file path is not configurable.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "CSVEDA"

// Config holds all command configuration.
type Config struct {
	Logging LoggingConfig `envconfig:"LOG"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error (CSVEDA_LOG_LEVEL)
	Level string `envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn warning error"`

	// Format is text or json (CSVEDA_LOG_FORMAT)
	Format string `envconfig:"FORMAT" default:"text" validate:"oneof=text json"`
}

// Load reads configuration from the environment, applies defaults and validates the result.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks every field against its validate tag.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

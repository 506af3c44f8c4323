package config

import (
	"time"

	"github.com/vietddude/employees/internal/infra/remote"
	"github.com/vietddude/employees/internal/infra/retry"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	Server  ServerConfig  `yaml:"server"`
	Remote  remote.Config `yaml:"remote"`
	Retry   RetryConfig   `yaml:"retry"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// RetryConfig holds the backoff applied to rate-limited remote calls.
type RetryConfig struct {
	MaxAttempts  int           `yaml:"max_attempts"`
	InitialDelay time.Duration `yaml:"initial_delay"`
	Multiplier   float64       `yaml:"multiplier"`
	MaxDelay     time.Duration `yaml:"max_delay"` // 0 = uncapped
}

// Policy converts the YAML section into a retry policy.
func (c RetryConfig) Policy() retry.Policy {
	return retry.Policy{
		MaxAttempts:  c.MaxAttempts,
		InitialDelay: c.InitialDelay,
		Multiplier:   c.Multiplier,
		MaxDelay:     c.MaxDelay,
	}
}

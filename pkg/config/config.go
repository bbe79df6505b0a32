// Package config loads pawnrace settings from PAWNRACE_* environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	LogPath      string        `env:"PAWNRACE_LOG" envDefault:"./log"`
	LayoutPath   string        `env:"PAWNRACE_LAYOUT"`
	Theme        string        `env:"PAWNRACE_THEME" envDefault:"basic"`
	SquareSize   float64       `env:"PAWNRACE_SQUARE_SIZE" envDefault:"1"`
	ServerAddr   string        `env:"PAWNRACE_SERVER_ADDR" envDefault:":1998"`
	SSHAddr      string        `env:"PAWNRACE_SSH_ADDR" envDefault:":2222"`
	HostKeyPath  string        `env:"PAWNRACE_HOST_KEY"`
	ClientBinary string        `env:"PAWNRACE_CLIENT" envDefault:"pawnrace"`
	StorePath    string        `env:"PAWNRACE_STORE"`
	IdleTimeout  time.Duration `env:"PAWNRACE_IDLE_TIMEOUT" envDefault:"5m"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns the defaults overridden by the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.SquareSize <= 0 {
		return Config{}, fmt.Errorf("square size must be positive, got %v", cfg.SquareSize)
	}
	return cfg, nil
}

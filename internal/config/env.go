// Package config loads axelrod settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds tournament settings. Command-line flags override these values.
type Config struct {
	EntrantsDir   string        `env:"AXELROD_ENTRANTS_DIR"`
	DecideTimeout time.Duration `env:"AXELROD_DECIDE_TIMEOUT" envDefault:"5s"`
	Rounds        int           `env:"AXELROD_ROUNDS" envDefault:"200"`
	Reward        int           `env:"AXELROD_REWARD" envDefault:"3"`
	Sucker        int           `env:"AXELROD_SUCKER" envDefault:"0"`
	Temptation    int           `env:"AXELROD_TEMPTATION" envDefault:"5"`
	Punishment    int           `env:"AXELROD_PUNISHMENT" envDefault:"1"`
	FailSoft      bool          `env:"AXELROD_FAIL_SOFT" envDefault:"false"`
	OtelEndpoint  string        `env:"AXELROD_OTEL_ENDPOINT"`
	OtelEnabled   bool          `env:"AXELROD_OTEL_ENABLED" envDefault:"true"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns the Config described by the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

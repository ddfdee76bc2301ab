// Package config reads runtime settings from the environment and sets up
// logging.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds the settings shared by all commands.
type Config struct {
	TickHz      int     `env:"WORDCRANE_TICK_HZ" envDefault:"60"`
	LogLevel    string  `env:"WORDCRANE_LOG_LEVEL" envDefault:"info"`
	LogFile     string  `env:"WORDCRANE_LOG_FILE" envDefault:"wordcrane.log"`
	Locale      string  `env:"WORDCRANE_LOCALE" envDefault:"ro"`
	Audio       bool    `env:"WORDCRANE_AUDIO" envDefault:"true"`
	Volume      float64 `env:"WORDCRANE_VOLUME" envDefault:"0.8"`
	Seed        uint64  `env:"WORDCRANE_SEED"`
	Levels      string  `env:"WORDCRANE_LEVELS"`
	RobotConfig string  `env:"WORDCRANE_ROBOT_CONFIG" envDefault:"wordcrane.json"`
}

// Load reads the given dotenv files (".env" when none), then the
// environment. Missing dotenv files are skipped; variables already set win.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges that the env tags cannot express.
func (c Config) Validate() error {
	if c.TickHz < 1 || c.TickHz > 240 {
		return fmt.Errorf("WORDCRANE_TICK_HZ must be within 1..240, got %d", c.TickHz)
	}
	if c.Volume < 0 || c.Volume > 1 {
		return fmt.Errorf("WORDCRANE_VOLUME must be within 0..1, got %g", c.Volume)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("WORDCRANE_LOG_LEVEL: %w", err)
	}
	return nil
}

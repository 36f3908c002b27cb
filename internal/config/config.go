// internal/config/config.go
//
// Server configuration from the environment. A `.env` file in the working
// directory is loaded first when present; real environment variables win.

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port     string `env:"PORT"      envDefault:"5175"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// StoreDriver is "memory" or "sqlite".
	StoreDriver  string `env:"STORE_DRIVER"  envDefault:"memory"`
	DatabasePath string `env:"DATABASE_PATH" envDefault:"./data/hangman.db"`

	// WordsFile replaces the embedded word list when set.
	WordsFile       string `env:"WORDS_FILE"`
	WordMode        string `env:"WORD_MODE"        envDefault:"random"`
	DailySalt       string `env:"DAILY_SALT"       envDefault:"local_dev_salt"`
	DefaultAttempts int    `env:"DEFAULT_ATTEMPTS" envDefault:"6"`

	// RedisAddr selects the Redis cache; empty keeps the cache in memory.
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	AverageInterval  time.Duration `env:"AVERAGE_INTERVAL"  envDefault:"1m"`
	ReminderInterval time.Duration `env:"REMINDER_INTERVAL" envDefault:"1h"`

	// SESFromEmail enables reminder mail through SES.
	SESRegion    string `env:"SES_REGION"     envDefault:"us-east-1"`
	SESFromEmail string `env:"SES_FROM_EMAIL"`
}

// Load reads `.env` (if any) and parses the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse reads the process environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.StoreDriver {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("STORE_DRIVER must be memory or sqlite, got %q", c.StoreDriver)
	}
	switch c.WordMode {
	case "random", "daily":
	default:
		return fmt.Errorf("WORD_MODE must be random or daily, got %q", c.WordMode)
	}
	if c.DefaultAttempts < 1 {
		return fmt.Errorf("DEFAULT_ATTEMPTS must be positive, got %d", c.DefaultAttempts)
	}
	if c.AverageInterval <= 0 || c.ReminderInterval <= 0 {
		return fmt.Errorf("job intervals must be positive")
	}
	return nil
}

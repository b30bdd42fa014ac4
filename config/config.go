package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const envPrefix = "CLIENTSTORE_"

var ErrInvalidSchedule = errors.New("invalid sweep schedule")

type (
	Config struct {
		Store   Options       `yaml:"store" envPrefix:"STORE_"`
		Area    AreaConfig    `yaml:"area" envPrefix:"AREA_"`
		Sweep   SweepConfig   `yaml:"sweep" envPrefix:"SWEEP_"`
		Logging LoggingConfig `yaml:"logging" envPrefix:"LOG_"`
	}

	// Options are the construction options of a Store. They never change
	// after the Store is built.
	Options struct {
		ForceCookies bool `yaml:"force_cookies" env:"FORCE_COOKIES"`
		Persistent   bool `yaml:"persistent" env:"PERSISTENT"`
		// ExpirationMultiplier scales caller durations into milliseconds,
		// e.g. 1000 lets callers pass seconds.
		ExpirationMultiplier float64 `yaml:"expiration_multiplier" env:"EXPIRATION_MULTIPLIER"`
	}

	AreaConfig struct {
		// URL of the persistent area snapshot (path, file://, mem://).
		URL string `yaml:"url" env:"URL"`
	}

	SweepConfig struct {
		Enabled  bool   `yaml:"enabled" env:"ENABLED"`
		Schedule string `yaml:"schedule" env:"SCHEDULE"` // cron spec or @every
	}

	LoggingConfig struct {
		Level      string `yaml:"level" env:"LEVEL"`   // debug, info, warn, error
		Format     string `yaml:"format" env:"FORMAT"` // json, text
		Output     string `yaml:"output" env:"OUTPUT"` // stdout, stderr, file, both
		File       string `yaml:"file" env:"FILE"`
		MaxSize    int    `yaml:"max_size" env:"MAX_SIZE"` // MB
		MaxBackups int    `yaml:"max_backups" env:"MAX_BACKUPS"`
		MaxAge     int    `yaml:"max_age" env:"MAX_AGE"` // days
		Compress   bool   `yaml:"compress" env:"COMPRESS"`
	}
)

// Default returns a validated configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	_ = cfg.Validate()
	return cfg
}

// Load reads the YAML file at path, applies CLIENTSTORE_* environment
// overrides and validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	var cfg Config

	path = strings.TrimSpace(path)
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("parse config yaml: %w", err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

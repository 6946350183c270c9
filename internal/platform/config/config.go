package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

type Config struct {
	DataDir string

	StoreDriver string `env:"CHRONICLE_STORE" envDefault:"sqlite"`
	DBPath      string `env:"CHRONICLE_DB_PATH"`
	LogPath     string `env:"CHRONICLE_LOG_PATH"`
	LogLevel    string `env:"CHRONICLE_LOG_LEVEL" envDefault:"info"`
	MetricsAddr string `env:"CHRONICLE_METRICS_ADDR"`

	GeminiAPIKey      string        `env:"GEMINI_API_KEY"`
	LegacyAPIKey      string        `env:"API_KEY"`
	TextModel         string        `env:"CHRONICLE_TEXT_MODEL" envDefault:"gemini-2.5-flash"`
	ImageModel        string        `env:"CHRONICLE_IMAGE_MODEL" envDefault:"gemini-2.5-flash-image"`
	GenerationTimeout time.Duration `env:"CHRONICLE_GENERATION_TIMEOUT" envDefault:"90s"`
}

// New reads the environment and derives file locations under dataDir.
func New(dataDir string) (Config, error) {
	return FromEnvironment(dataDir, nil)
}

// FromEnvironment is New with an explicit environment; nil means the process
// environment.
func FromEnvironment(dataDir string, environ map[string]string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	cfg := Config{}
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	cfg.DataDir = dataDir
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(dataDir, ".chronicle", "chronicle.db")
	}
	if cfg.LogPath == "" {
		cfg.LogPath = filepath.Join(dataDir, ".chronicle", "chronicle.log")
	}
	switch cfg.StoreDriver {
	case DriverSQLite, DriverMemory:
	default:
		return Config{}, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
	if cfg.GenerationTimeout <= 0 {
		return Config{}, fmt.Errorf("generation timeout must be positive")
	}
	return cfg, nil
}

// APIKey returns the configured model key, preferring GEMINI_API_KEY.
func (c Config) APIKey() string {
	if c.GeminiAPIKey != "" {
		return c.GeminiAPIKey
	}
	return c.LegacyAPIKey
}

func (c Config) ExportDir() string {
	return filepath.Join(c.DataDir, "chronicle")
}

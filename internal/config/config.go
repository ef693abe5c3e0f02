package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.yaml.in/yaml/v3"
)

// EnvPrefix prefixes every environment override, e.g. ALMOX_API_URL.
const EnvPrefix = "ALMOX"

// Defaults used when config.yaml is missing or leaves a field empty.
const (
	DefaultAPIURL   = "http://localhost:8080"
	DefaultPageSize = 10
	DefaultTimeout  = 10 * time.Second
	DefaultLogLevel = "info"
)

// Config represents ~/.almox/config.yaml.
type Config struct {
	APIURL   string        `yaml:"api_url" envconfig:"API_URL"`
	PageSize int           `yaml:"page_size" envconfig:"PAGE_SIZE"`
	Timeout  time.Duration `yaml:"timeout" envconfig:"TIMEOUT"`
	LogLevel string        `yaml:"log_level" envconfig:"LOG_LEVEL"`
	LogFile  string        `yaml:"log_file,omitempty" envconfig:"LOG_FILE"`
}

// Default returns a config with every field set to its default.
func Default() Config {
	return Config{
		APIURL:   DefaultAPIURL,
		PageSize: DefaultPageSize,
		Timeout:  DefaultTimeout,
		LogLevel: DefaultLogLevel,
	}
}

// Parse parses config.yaml bytes into a Config, filling unset fields with defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	return normalize(cfg), nil
}

// Marshal serializes a Config to YAML bytes.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// Load reads the config file at path (a missing file is not an error), then
// applies a .env file from the working directory and ALMOX_* environment
// overrides on top.
func Load(path string) (Config, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return Config{}, err
	}

	// .env is optional.
	_ = godotenv.Load()

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("reading %s_* environment: %w", EnvPrefix, err)
	}
	return normalize(cfg), nil
}

// LoadFile reads the config file at path with defaults filled in, ignoring
// .env and the environment. Edits that are saved back start from it, so
// overrides never end up in the file.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		return Parse(data)
	case errors.Is(err, os.ErrNotExist):
		return Default(), nil
	default:
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
}

// Save writes cfg to path, creating the parent directory if needed.
func Save(path string, cfg Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func normalize(cfg Config) Config {
	cfg.APIURL = strings.TrimRight(strings.TrimSpace(cfg.APIURL), "/")
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	return cfg
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/aayushbajaj/jexi/internal/chef"
	"github.com/aayushbajaj/jexi/internal/dictionary"
	"github.com/aayushbajaj/jexi/internal/oven"
)

// Config holds application configuration.
type Config struct {
	// DictionaryDir is searched for *.txt word lists.
	DictionaryDir string `yaml:"dictionary_dir" env:"JEXI_DICTIONARY_DIR"`

	// OutputFile receives the generated passwords. It is never offered as a dictionary.
	OutputFile string `yaml:"output_file" env:"JEXI_OUTPUT_FILE"`

	// Count is the default number of passwords per session, clamped to 1..1000.
	Count int `yaml:"count" env:"JEXI_COUNT"`

	// Threshold is the score a password must exceed to be accepted.
	Threshold float64 `yaml:"threshold" env:"JEXI_THRESHOLD"`

	// RepairLimit caps spice rounds spent removing weak patterns.
	RepairLimit int `yaml:"repair_limit" env:"JEXI_REPAIR_LIMIT"`

	Theme string `yaml:"theme" env:"JEXI_THEME"`

	// DataDir holds the session history database and logs.
	DataDir string `yaml:"data_dir" env:"JEXI_DATA_DIR"`

	// History records session summaries (never passwords) in DataDir.
	History bool `yaml:"history" env:"JEXI_HISTORY"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DictionaryDir: ".",
		OutputFile:    dictionary.DefaultOutput,
		Count:         10,
		Threshold:     oven.DefaultThreshold,
		RepairLimit:   chef.DefaultRepairLimit,
		Theme:         "default",
		DataDir:       defaultDataDir(),
		History:       true,
	}
}

// DefaultPath returns ~/.config/jexi/config.yaml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "jexi", "config.yaml")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "jexi")
	}
	return filepath.Join(home, ".local", "share", "jexi")
}

// Load applies defaults, then the YAML file at path (if it exists), then a
// .env file in the working directory (if any), then JEXI_* variables.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	// The .env file is optional, but a broken one is reported.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects unusable values and clamps the count.
func (c *Config) Validate() error {
	if c.Threshold <= 0 {
		return fmt.Errorf("%w: threshold must be positive, got %v", ErrInvalidConfig, c.Threshold)
	}
	if c.RepairLimit <= 0 {
		return fmt.Errorf("%w: repair_limit must be positive, got %d", ErrInvalidConfig, c.RepairLimit)
	}
	if c.OutputFile == "" {
		return fmt.Errorf("%w: output_file must not be empty", ErrInvalidConfig)
	}
	if c.DictionaryDir == "" {
		c.DictionaryDir = "."
	}
	c.Count = oven.ClampCount(c.Count)
	return nil
}

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

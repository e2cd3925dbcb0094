package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Version      int                `toml:"version"`
	Autocomplete AutocompleteConfig `toml:"autocomplete"`
	Source       SourceConfig       `toml:"source"`
	Log          LogConfig          `toml:"log"`
}

// AutocompleteConfig holds widget options
type AutocompleteConfig struct {
	DelayMS     int    `toml:"delay_ms"`    // debounce window, 0 dispatches on every edit
	ListHeight  int    `toml:"list_height"` // rows of the suggestion viewport
	Limit       int    `toml:"limit"`       // max suggestions asked from the source
	Prompt      string `toml:"prompt"`
	Placeholder string `toml:"placeholder"`
}

// SourceConfig configures the demo lookup source
type SourceConfig struct {
	Dictionary   string  `toml:"dictionary"` // YAML file, built-in names when empty
	LatencyMinMS int     `toml:"latency_min_ms"`
	LatencyMaxMS int     `toml:"latency_max_ms"`
	FailRate     float64 `toml:"fail_rate"` // 0..1
}

// LogConfig configures logging
type LogConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Delay returns the debounce window as a duration
func (c AutocompleteConfig) Delay() time.Duration {
	return time.Duration(c.DelayMS) * time.Millisecond
}

// LatencyRange returns the simulated latency bounds
func (c SourceConfig) LatencyRange() (time.Duration, time.Duration) {
	return time.Duration(c.LatencyMinMS) * time.Millisecond, time.Duration(c.LatencyMaxMS) * time.Millisecond
}

// Validate checks value ranges
func (c *Config) Validate() error {
	var errs []error
	if c.Autocomplete.DelayMS < 0 {
		errs = append(errs, fmt.Errorf("autocomplete.delay_ms must not be negative, got %d", c.Autocomplete.DelayMS))
	}
	if c.Autocomplete.ListHeight < 1 {
		errs = append(errs, fmt.Errorf("autocomplete.list_height must be at least 1, got %d", c.Autocomplete.ListHeight))
	}
	if c.Autocomplete.Limit < 0 {
		errs = append(errs, fmt.Errorf("autocomplete.limit must not be negative, got %d", c.Autocomplete.Limit))
	}
	if c.Source.LatencyMinMS < 0 || c.Source.LatencyMaxMS < c.Source.LatencyMinMS {
		errs = append(errs, fmt.Errorf("source latency range [%d, %d] is invalid", c.Source.LatencyMinMS, c.Source.LatencyMaxMS))
	}
	if c.Source.FailRate < 0 || c.Source.FailRate > 1 {
		errs = append(errs, fmt.Errorf("source.fail_rate must be within [0, 1], got %v", c.Source.FailRate))
	}
	return errors.Join(errs...)
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigService creates a config service rooted in the user config dir
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "typeahead", "config.toml"),
	}
}

// NewConfigServiceAt creates a config service for an explicit file
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

// Path returns the file Load and Save operate on
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration, returning defaults when the file is missing
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return cs.LoadFromPath(cs.filePath)
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Missing keys keep
// their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Autocomplete: AutocompleteConfig{
			DelayMS:     500,
			ListHeight:  8,
			Limit:       50,
			Prompt:      "> ",
			Placeholder: "Start typing a name...",
		},
		Source: SourceConfig{
			LatencyMinMS: 50,
			LatencyMaxMS: 400,
		},
		Log: LogConfig{
			File:  "typeahead.log",
			Level: "info",
		},
	}
}

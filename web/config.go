package web

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"tradepnl/i18n"
)

// Config holds the server settings. Every field has a usable default so
// the server runs without a config file.
type Config struct {
	Listen         string `yaml:"listen"`
	ThresholdHours int    `yaml:"threshold_hours"`
	Language       string `yaml:"language"`
	Debug          bool   `yaml:"debug"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		Listen:         ":5001",
		ThresholdHours: 24,
		Language:       i18n.DefaultLanguage,
	}
}

// LoadConfig reads a YAML config file over the defaults. An empty path
// yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("cannot read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("cannot parse config %q: %w", path, err)
	}
	return cfg, nil
}

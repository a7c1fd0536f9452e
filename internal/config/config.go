package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the bsor tool configuration
type Config struct {
	Decode  Decode  `yaml:"decode"`
	Encode  Encode  `yaml:"encode"`
	Output  Output  `yaml:"output"`
	Archive Archive `yaml:"archive"`
	Logging Logging `yaml:"logging"`
}

// Decode controls how replays are read
type Decode struct {
	// Strict requires all six sections.
	Strict bool `yaml:"strict"`
}

// Encode controls how replays are written
type Encode struct {
	// Validate refuses replays that would not decode back to themselves.
	Validate bool `yaml:"validate"`
}

// Output controls JSON output
type Output struct {
	Indent string `yaml:"indent"`
}

// Archive locates the replay archive
type Archive struct {
	Dir string `yaml:"dir"`
}

// Logging contains logging configuration
type Logging struct {
	Level string `yaml:"level"`
}

// SlogLevel maps Level onto a slog level; unknown names mean info.
func (l Logging) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Encode: Encode{
			Validate: true,
		},
		Output: Output{
			Indent: "  ",
		},
		Archive: Archive{
			Dir: "./replays",
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from the specified path. Keys the file
// leaves out keep their defaults.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path with secure permissions
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

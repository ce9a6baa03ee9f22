package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/gtgrass/internal/persist"
)

// ErrInvalidData is returned when the data section cannot locate grass assets.
var ErrInvalidData = errors.New("invalid data config")

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Try to load from file (explicit path takes priority)
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		root := cfg.Data.AssetsRoot
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
		// A relative assets root in a config file is relative to that file.
		if cfg.Data.AssetsRoot != root && !filepath.IsAbs(cfg.Data.AssetsRoot) {
			cfg.Data.AssetsRoot = filepath.Join(filepath.Dir(configPath), cfg.Data.AssetsRoot)
		}
	}

	// Apply CLI flags (highest priority)
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the brush settings and the asset locations.
func (c *Config) Validate() error {
	if err := c.Brush.Validate(); err != nil {
		return fmt.Errorf("invalid brush settings: %w", err)
	}
	if c.Data.AssetsRoot == "" {
		return fmt.Errorf("%w: empty assets root", ErrInvalidData)
	}
	if !strings.HasPrefix(c.Data.Folder, persist.AssetsPrefix) {
		return fmt.Errorf("%w: %w", ErrInvalidData, persist.ErrInvalidFolder)
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "GTGrass")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "GTGrass")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "gtgrass")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "gtgrass")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

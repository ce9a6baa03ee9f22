// Package config handles grass tool configuration loading and management.
package config

import "github.com/Faultbox/gtgrass/pkg/grass"

// Config holds all tool settings.
type Config struct {
	Brush   grass.Settings `yaml:"brush"`
	Data    DataConfig     `yaml:"data"`
	Logging LoggingConfig  `yaml:"logging"`
}

// DataConfig holds asset store settings.
type DataConfig struct {
	AssetsRoot string `yaml:"assets_root"` // directory that holds the Assets/ tree
	Folder     string `yaml:"folder"`      // default folder for new grass data
	Seed       uint64 `yaml:"seed"`        // random seed, 0 picks one from the clock
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Brush: grass.DefaultSettings(),
		Data: DataConfig{
			AssetsRoot: ".",
			Folder:     "Assets/Grass/",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Output    OutputConfig    `toml:"output"`
	History   HistoryConfig   `toml:"history"`
	Convert   ConvertConfig   `toml:"convert"`
	WordCount WordCountConfig `toml:"wordcount"`
}

// OutputConfig maps result file settings.
type OutputConfig struct {
	Dir *string `toml:"dir"`
}

// HistoryConfig maps run history settings.
type HistoryConfig struct {
	Disabled *bool `toml:"disabled"`
}

// ConvertConfig maps number conversion settings.
type ConvertConfig struct {
	Bits *int `toml:"bits"`
}

// WordCountConfig maps word counting settings.
type WordCountConfig struct {
	Lowercase *bool `toml:"lowercase"`
	KeepPunct *bool `toml:"keep-punct"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Game     GameConfig     `toml:"game"`
	Feedback FeedbackConfig `toml:"feedback"`
	UI       UIConfig       `toml:"ui"`
	Log      LogConfig      `toml:"log"`
}

// GameConfig maps gameplay settings.
type GameConfig struct {
	Sound *bool   `toml:"sound"`
	Lang  *string `toml:"lang"`
}

// FeedbackConfig maps feedback provider settings.
type FeedbackConfig struct {
	Enabled   *bool   `toml:"enabled"`
	Model     *string `toml:"model"`
	Timeout   *int    `toml:"timeout"`
	APIKeyEnv *string `toml:"api-key-env"`
}

// UIConfig maps terminal canvas settings.
type UIConfig struct {
	CanvasCols *int `toml:"canvas-cols"`
	CanvasRows *int `toml:"canvas-rows"`
}

// LogConfig maps diagnostic log settings.
type LogConfig struct {
	Level *string `toml:"level"`
	File  *string `toml:"file"`
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
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

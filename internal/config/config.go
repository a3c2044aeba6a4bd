// Package config provides Viper-based configuration loading for the game.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// SavesConfig holds save-file settings.
type SavesConfig struct {
	// Dir is the directory save files are written to, relative to the
	// working directory unless absolute.
	Dir string `mapstructure:"dir"`
}

// AIConfig holds dungeon-master LLM settings. The API key is read from the
// ANTHROPIC_API_KEY environment variable, never from config files.
type AIConfig struct {
	// Enabled toggles the LLM dungeon master; when false the game runs with
	// canned narration.
	Enabled bool `mapstructure:"enabled"`
	// Model is the model identifier sent to the API.
	Model string `mapstructure:"model"`
	// MaxTokens bounds each response.
	MaxTokens int `mapstructure:"max_tokens"`
}

// GameConfig holds gameplay pacing settings.
type GameConfig struct {
	// AutosaveInterval is how often the session autosaves; zero disables it.
	AutosaveInterval time.Duration `mapstructure:"autosave_interval"`
	// AutosaveSlot is the save name used for autosaves.
	AutosaveSlot string `mapstructure:"autosave_slot"`
	// ContentDir is an optional directory of YAML content packs; empty
	// means built-in content only.
	ContentDir string `mapstructure:"content_dir"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Saves   SavesConfig   `mapstructure:"saves"`
	AI      AIConfig      `mapstructure:"ai"`
	Game    GameConfig    `mapstructure:"game"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error
// describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Saves.Dir == "" {
		errs = append(errs, "saves.dir must not be empty")
	}
	if err := validateAI(c.AI); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateAI(a AIConfig) error {
	var errs []string
	if a.Enabled && a.Model == "" {
		errs = append(errs, "ai.model must not be empty when ai.enabled is true")
	}
	if a.MaxTokens < 1 {
		errs = append(errs, fmt.Sprintf("ai.max_tokens must be >= 1, got %d", a.MaxTokens))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateGame(g GameConfig) error {
	var errs []string
	if g.AutosaveInterval < 0 {
		errs = append(errs, "game.autosave_interval must not be negative")
	}
	if g.AutosaveSlot == "" {
		errs = append(errs, "game.autosave_slot must not be empty")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path (optional), applies
// environment variable overrides, and validates the result.
//
// Precondition: path, when non-empty, must point to a YAML file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with WASTELAND_ prefix
	v.SetEnvPrefix("WASTELAND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if _, statErr := os.Stat(path); statErr == nil {
				return Config{}, fmt.Errorf("reading config file: %w", err)
			}
			// Missing file falls back to defaults plus environment.
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("saves.dir", "saves")

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "claude-sonnet-4-5")
	v.SetDefault("ai.max_tokens", 1024)

	v.SetDefault("game.autosave_interval", "5m")
	v.SetDefault("game.autosave_slot", "autosave")
	v.SetDefault("game.content_dir", "")
}

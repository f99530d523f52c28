// Package config provides Viper-based configuration loading for the duel client.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output is a zap sink: "stderr", "stdout", or a file path.
	// The duel screen owns stdout, so the default is stderr.
	Output string `mapstructure:"output"`
}

// BattleConfig holds duel engine settings.
type BattleConfig struct {
	// PlayerClass is the class used when none is chosen on the command line.
	PlayerClass string `mapstructure:"player_class"`
	// Seed makes every draw reproducible when non-zero; zero draws from crypto/rand.
	Seed uint64 `mapstructure:"seed"`
	// ClassesFile replaces the built-in class table when non-empty.
	ClassesFile string `mapstructure:"classes_file"`
}

// ConsoleConfig holds terminal frontend settings.
type ConsoleConfig struct {
	// Color enables ANSI styling.
	Color bool `mapstructure:"color"`
	// Prompt is printed before each command read.
	Prompt string `mapstructure:"prompt"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Battle  BattleConfig  `mapstructure:"battle"`
	Console ConsoleConfig `mapstructure:"console"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateBattle(c.Battle); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateConsole(c.Console); err != nil {
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
	if l.Output == "" {
		return errors.New("logging.output must not be empty")
	}
	return nil
}

func validateBattle(b BattleConfig) error {
	validClasses := map[string]bool{"mage": true, "archer": true, "knight": true, "rogue": true}
	if !validClasses[b.PlayerClass] {
		return fmt.Errorf("battle.player_class must be one of [mage, archer, knight, rogue], got %q", b.PlayerClass)
	}
	return nil
}

func validateConsole(c ConsoleConfig) error {
	if c.Prompt == "" {
		return errors.New("console.prompt must not be empty")
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path uses defaults and the
// environment only.
//
// Precondition: path must be empty or a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with DSTARS_ prefix
	v.SetEnvPrefix("DSTARS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
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
	v.SetDefault("logging.output", "stderr")

	v.SetDefault("battle.player_class", "mage")
	v.SetDefault("battle.seed", 0)
	v.SetDefault("battle.classes_file", "")

	v.SetDefault("console.color", true)
	v.SetDefault("console.prompt", "> ")
}

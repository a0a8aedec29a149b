// Package config loads the engine's ambient server configuration
// (logging, persistence backend, HTTP API bind address, metrics) and the
// declarative keymap configuration (layers, physical layouts, behaviors)
// that together describe one running keymapd instance.
//
// Configuration sources, in precedence order:
//  1. Environment variables (KEYMAPD_*)
//  2. Configuration file (YAML)
//  3. Default values (lowest priority)
//
// No CLI flag is bound to a config key; cmd/keymapd's --config flag only
// chooses which file is read.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Config is the static, ambient configuration of a keymapd instance. The
// keymap itself (layers, physical layouts, behaviors) is loaded
// separately by LoadKeymap, mirroring the split between "declarative
// configuration" and ordinary server settings.
type Config struct {
	Logging     LoggingConfig     `mapstructure:"logging" yaml:"logging"`
	Persistence PersistenceConfig `mapstructure:"persistence" yaml:"persistence"`
	API         APIConfig         `mapstructure:"api" yaml:"api"`
	Metrics     MetricsConfig     `mapstructure:"metrics" yaml:"metrics"`
	BehaviorIDs BehaviorIDConfig  `mapstructure:"behavior_ids" yaml:"behavior_ids"`
	KeymapFile  string            `mapstructure:"keymap_file" yaml:"keymap_file" validate:"required"`
}

// LoggingConfig controls log output behavior.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error" yaml:"level"`
	Format string `mapstructure:"format" validate:"required,oneof=text json" yaml:"format"`
	Output string `mapstructure:"output" validate:"required" yaml:"output"`
}

// PersistenceConfig selects and configures the persist.Store backend.
type PersistenceConfig struct {
	// Backend is "badger" (on-disk, crash-safe) or "memory" (volatile,
	// for quick evaluation or tests).
	Backend string `mapstructure:"backend" validate:"required,oneof=badger memory" yaml:"backend"`
	// Path is the BadgerDB directory. Required when Backend is "badger".
	Path string `mapstructure:"path" yaml:"path"`
}

// APIConfig configures the chi-routed management/inspection HTTP server.
type APIConfig struct {
	Enabled      bool          `mapstructure:"enabled" yaml:"enabled"`
	Port         int           `mapstructure:"port" validate:"omitempty,min=1,max=65535" yaml:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
}

// MetricsConfig configures the Prometheus metrics HTTP endpoint.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	Port    int  `mapstructure:"port" validate:"omitempty,min=1,max=65535" yaml:"port"`
}

// BehaviorIDConfig selects the local-ID assignment policy (§4.1).
type BehaviorIDConfig struct {
	// Policy is "crc16" (deterministic hash) or "monotonic" (assigned on
	// first boot and persisted thereafter).
	Policy string `mapstructure:"policy" validate:"required,oneof=crc16 monotonic" yaml:"policy"`
}

var validate = validator.New()

// Load reads configuration from configPath (or the default search path
// if empty), applies environment overrides and defaults, and validates
// the result.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setupViper(v, configPath)

	if _, err := readConfigFile(v); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg, viper.DecodeHook(configDecodeHooks())); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate runs struct-tag validation over cfg.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return err
	}
	if cfg.Persistence.Backend == "badger" && cfg.Persistence.Path == "" {
		return fmt.Errorf("persistence.path is required when persistence.backend is badger")
	}
	return nil
}

func setupViper(v *viper.Viper, configPath string) {
	v.SetEnvPrefix("KEYMAPD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		return
	}

	v.AddConfigPath(defaultConfigDir())
	v.SetConfigName("config")
	v.SetConfigType("yaml")
}

func readConfigFile(v *viper.Viper) (bool, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return false, nil
		}
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read config file: %w", err)
	}
	return true, nil
}

func defaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "keymapd")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "keymapd")
}

// DefaultConfigPath returns the default configuration file location.
func DefaultConfigPath() string {
	return filepath.Join(defaultConfigDir(), "config.yaml")
}

// configDecodeHooks composes the mapstructure decode hooks viper applies
// while unmarshalling, so config files can use human-readable durations
// ("10s", "1m") for the time.Duration fields.
func configDecodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
	)
}

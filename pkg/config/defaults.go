package config

import (
	"strings"
	"time"
)

// ApplyDefaults fills zero-valued fields with sensible defaults. Called
// after unmarshalling so that a config file only needs to override what
// it cares about, and so that Load with no config file at all still
// returns a usable Config.
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyPersistenceDefaults(&cfg.Persistence)
	applyAPIDefaults(&cfg.API)
	applyMetricsDefaults(&cfg.Metrics)
	applyBehaviorIDDefaults(&cfg.BehaviorIDs)

	if cfg.KeymapFile == "" {
		cfg.KeymapFile = "keymap.yaml"
	}
}

func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.Output == "" {
		cfg.Output = "stdout"
	}
}

func applyPersistenceDefaults(cfg *PersistenceConfig) {
	if cfg.Backend == "" {
		cfg.Backend = "memory"
	}
	if cfg.Backend == "badger" && cfg.Path == "" {
		cfg.Path = "/var/lib/keymapd/store"
	}
}

func applyAPIDefaults(cfg *APIConfig) {
	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 10 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 10 * time.Second
	}
}

func applyMetricsDefaults(cfg *MetricsConfig) {
	if cfg.Enabled && cfg.Port == 0 {
		cfg.Port = 9090
	}
}

func applyBehaviorIDDefaults(cfg *BehaviorIDConfig) {
	if cfg.Policy == "" {
		cfg.Policy = "crc16"
	}
}

// GetDefaultConfig returns a Config with every default applied, useful
// for tests.
func GetDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

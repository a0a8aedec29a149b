package config

import "testing"

func TestGetDefaultConfig(t *testing.T) {
	cfg := GetDefaultConfig()

	if cfg.Logging.Level != "INFO" {
		t.Errorf("expected default log level INFO, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("expected default log format text, got %q", cfg.Logging.Format)
	}
	if cfg.Persistence.Backend != "memory" {
		t.Errorf("expected default persistence backend memory, got %q", cfg.Persistence.Backend)
	}
	if cfg.API.Port != 8080 {
		t.Errorf("expected default api port 8080, got %d", cfg.API.Port)
	}
	if cfg.BehaviorIDs.Policy != "crc16" {
		t.Errorf("expected default behavior id policy crc16, got %q", cfg.BehaviorIDs.Policy)
	}
	if cfg.KeymapFile == "" {
		t.Error("expected a default keymap file name")
	}
}

func TestApplyDefaultsPreservesExplicitValues(t *testing.T) {
	cfg := &Config{Logging: LoggingConfig{Level: "debug"}, API: APIConfig{Port: 9999}}
	ApplyDefaults(cfg)

	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("expected explicit level normalized to DEBUG, got %q", cfg.Logging.Level)
	}
	if cfg.API.Port != 9999 {
		t.Errorf("expected explicit port preserved, got %d", cfg.API.Port)
	}
}

func TestApplyMetricsDefaultsOnlyWhenEnabled(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	if cfg.Metrics.Port != 0 {
		t.Errorf("expected metrics port to stay 0 when disabled, got %d", cfg.Metrics.Port)
	}

	cfg2 := &Config{Metrics: MetricsConfig{Enabled: true}}
	ApplyDefaults(cfg2)
	if cfg2.Metrics.Port != 9090 {
		t.Errorf("expected default metrics port 9090 when enabled, got %d", cfg2.Metrics.Port)
	}
}

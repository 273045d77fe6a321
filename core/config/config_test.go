// File: config_test.go
// Title: Service Configuration Tests
// Description: Unit tests for configuration loading covering defaults, TOML
//              and YAML parsing, environment overrides and validation.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-08
// Modified: 2025-02-08

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	if !cfg.Dispatch.ReportCommandNotFound {
		t.Error("ReportCommandNotFound must default to true")
	}
	if cfg.Dispatch.MaxInputLength != 4096 {
		t.Errorf("MaxInputLength = %d", cfg.Dispatch.MaxInputLength)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("log defaults = %+v", cfg.Log)
	}
	if cfg.Gateway.Addr == "" {
		t.Error("gateway addr must have a default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.I18n.Locale != "en" {
		t.Errorf("locale = %q", cfg.I18n.Locale)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
[log]
level = "debug"
format = "text"

[dispatch]
report_command_not_found = false
max_input_length = 128

[gateway]
addr = "0.0.0.0:9000"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Errorf("log = %+v", cfg.Log)
	}
	if cfg.Dispatch.ReportCommandNotFound {
		t.Error("ReportCommandNotFound not overridden")
	}
	if cfg.Dispatch.MaxInputLength != 128 {
		t.Errorf("MaxInputLength = %d", cfg.Dispatch.MaxInputLength)
	}
	if cfg.Gateway.Addr != "0.0.0.0:9000" {
		t.Errorf("addr = %q", cfg.Gateway.Addr)
	}
	// Untouched sections keep their defaults.
	if cfg.History.Path != "./data/history.db" {
		t.Errorf("history path = %q", cfg.History.Path)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
log:
  level: warn
history:
  enabled: false
i18n:
  locale: de
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("level = %q", cfg.Log.Level)
	}
	if cfg.History.Enabled {
		t.Error("history not disabled")
	}
	if cfg.I18n.Locale != "de" {
		t.Errorf("locale = %q", cfg.I18n.Locale)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	path := writeFile(t, "broken.toml", "[log\nlevel = ")
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MCHAT_LOG_LEVEL", "error")
	t.Setenv("MCHAT_REPORT_COMMAND_NOT_FOUND", "false")
	t.Setenv("MCHAT_MAX_INPUT_LENGTH", "99")
	t.Setenv("MCHAT_GATEWAY_ADDR", "127.0.0.1:1234")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("level = %q", cfg.Log.Level)
	}
	if cfg.Dispatch.ReportCommandNotFound {
		t.Error("env override not applied")
	}
	if cfg.Dispatch.MaxInputLength != 99 {
		t.Errorf("MaxInputLength = %d", cfg.Dispatch.MaxInputLength)
	}
	if cfg.Gateway.Addr != "127.0.0.1:1234" {
		t.Errorf("addr = %q", cfg.Gateway.Addr)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero input length", func(c *Config) { c.Dispatch.MaxInputLength = 0 }, true},
		{"history without path", func(c *Config) { c.History.Path = " " }, true},
		{"disabled history without path", func(c *Config) {
			c.History.Enabled = false
			c.History.Path = ""
		}, false},
		{"empty gateway addr", func(c *Config) { c.Gateway.Addr = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

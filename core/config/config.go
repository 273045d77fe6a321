// File: config.go
// Title: Service Configuration
// Description: Implements configuration loading for mChat. Configuration is
//              read from a TOML (default) or YAML file, overlaid with
//              MCHAT_* environment variables, and validated. All settings
//              have working defaults so the service starts without a file.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-08
// Modified: 2025-02-08

package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	mcerror "github.com/msto63/mChat/core/error"
)

// Config holds all service configuration
type Config struct {
	Log      LogConfig      `toml:"log" yaml:"log"`
	Dispatch DispatchConfig `toml:"dispatch" yaml:"dispatch"`
	History  HistoryConfig  `toml:"history" yaml:"history"`
	Gateway  GatewayConfig  `toml:"gateway" yaml:"gateway"`
	I18n     I18nConfig     `toml:"i18n" yaml:"i18n"`
}

// LogConfig configures the logger
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// DispatchConfig configures the command dispatcher
type DispatchConfig struct {
	// ReportCommandNotFound controls whether an unresolved command
	// produces a user-visible error (default: true)
	ReportCommandNotFound bool `toml:"report_command_not_found" yaml:"report_command_not_found"`

	// MaxInputLength limits the length of a single chat input
	MaxInputLength int `toml:"max_input_length" yaml:"max_input_length"`
}

// HistoryConfig configures the invocation history store
type HistoryConfig struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Path    string `toml:"path" yaml:"path"`
}

// GatewayConfig configures the WebSocket gateway
type GatewayConfig struct {
	Addr string `toml:"addr" yaml:"addr"`
}

// I18nConfig configures localization
type I18nConfig struct {
	Locale    string `toml:"locale" yaml:"locale"`
	LocaleDir string `toml:"locale_dir" yaml:"locale_dir"`
}

// Default returns the configuration used when no file is provided
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Dispatch: DispatchConfig{
			ReportCommandNotFound: true,
			MaxInputLength:        4096,
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    "./data/history.db",
		},
		Gateway: GatewayConfig{
			Addr: "127.0.0.1:8460",
		},
		I18n: I18nConfig{
			Locale: "en",
		},
	}
}

// Load reads configuration from path, applies environment overrides and
// validates the result. The format is chosen by file extension: .yaml
// and .yml are parsed as YAML, everything else as TOML.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, mcerror.Wrap(err, "failed to read config file").
				WithCode(mcerror.CodeConfigError).
				WithDetail("path", path)
		}

		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			err = yaml.Unmarshal(data, cfg)
		default:
			err = toml.Unmarshal(data, cfg)
		}
		if err != nil {
			return nil, mcerror.Wrap(err, "failed to parse config file").
				WithCode(mcerror.CodeConfigError).
				WithDetail("path", path)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays MCHAT_* environment variables over the loaded values
func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv("MCHAT_LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := os.LookupEnv("MCHAT_LOG_FORMAT"); ok {
		c.Log.Format = v
	}
	if v, ok := os.LookupEnv("MCHAT_REPORT_COMMAND_NOT_FOUND"); ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Dispatch.ReportCommandNotFound = parsed
		}
	}
	if v, ok := os.LookupEnv("MCHAT_MAX_INPUT_LENGTH"); ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Dispatch.MaxInputLength = parsed
		}
	}
	if v, ok := os.LookupEnv("MCHAT_HISTORY_PATH"); ok {
		c.History.Path = v
	}
	if v, ok := os.LookupEnv("MCHAT_GATEWAY_ADDR"); ok {
		c.Gateway.Addr = v
	}
	if v, ok := os.LookupEnv("MCHAT_LOCALE"); ok {
		c.I18n.Locale = v
	}
}

// Validate checks the configuration for inconsistent values
func (c *Config) Validate() error {
	if c.Dispatch.MaxInputLength <= 0 {
		return mcerror.New("dispatch.max_input_length must be positive").
			WithCode(mcerror.CodeInvalidConfig).
			WithDetail("value", c.Dispatch.MaxInputLength)
	}
	if c.History.Enabled && strings.TrimSpace(c.History.Path) == "" {
		return mcerror.New("history.path must be set when history is enabled").
			WithCode(mcerror.CodeInvalidConfig)
	}
	if strings.TrimSpace(c.Gateway.Addr) == "" {
		return mcerror.New("gateway.addr must not be empty").
			WithCode(mcerror.CodeInvalidConfig)
	}
	return nil
}

// Package config loads AMP peer configuration from a YAML file and the
// environment, with CLI flags taking final precedence. See cmd/amp-peer for
// the flag definitions that feed into Merge.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// HookEntry binds an AMP engine lifecycle event to a hook target, in the
// event_type=target shorthand used on the command line and in YAML.
type HookEntry struct {
	EventType string `yaml:"event"`
	Target    string `yaml:"target"`
}

// Config is the resolved configuration for an amp-peer process.
type Config struct {
	ListenAddr string `yaml:"listen_addr"`
	DialAddr   string `yaml:"dial_addr"`
	LogLevel   string `yaml:"log_level"`

	MetricsAddr string `yaml:"metrics_addr"`

	HookScripts     []HookEntry `yaml:"hook_scripts"`
	HookWebhooks    []HookEntry `yaml:"hook_webhooks"`
	HookStdioFormat string      `yaml:"hook_stdio_format"`
	HookTimeout     string      `yaml:"hook_timeout"`
	HookConcurrency int         `yaml:"hook_concurrency"`
}

// Default returns a Config with the same baseline values the teacher's
// flag parser seeds into its cliConfig.
func Default() Config {
	return Config{
		ListenAddr:      ":7700",
		LogLevel:        "info",
		MetricsAddr:     "",
		HookStdioFormat: "",
		HookTimeout:     "30s",
		HookConcurrency: 10,
	}
}

// LoadFile reads and parses a YAML config file. A missing file is not an
// error; the caller gets back the zero Config and should fall back to
// Default().
func LoadFile(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDotenv loads environment variables from a .env file at path, if it
// exists. It never errors on a missing file.
func LoadDotenv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load dotenv %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays AMP_-prefixed environment variables onto cfg, for values
// not already set by a more specific source (YAML file, then env, then
// flags, in increasing precedence).
func ApplyEnv(cfg Config) Config {
	if v := os.Getenv("AMP_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("AMP_DIAL_ADDR"); v != "" {
		cfg.DialAddr = v
	}
	if v := os.Getenv("AMP_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("AMP_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	return cfg
}

// Merge layers override on top of base, taking any non-zero field from
// override. Used to apply CLI flag values over file/env defaults.
func Merge(base, override Config) Config {
	out := base
	if override.ListenAddr != "" {
		out.ListenAddr = override.ListenAddr
	}
	if override.DialAddr != "" {
		out.DialAddr = override.DialAddr
	}
	if override.LogLevel != "" {
		out.LogLevel = override.LogLevel
	}
	if override.MetricsAddr != "" {
		out.MetricsAddr = override.MetricsAddr
	}
	if override.HookStdioFormat != "" {
		out.HookStdioFormat = override.HookStdioFormat
	}
	if override.HookTimeout != "" {
		out.HookTimeout = override.HookTimeout
	}
	if override.HookConcurrency != 0 {
		out.HookConcurrency = override.HookConcurrency
	}
	if len(override.HookScripts) > 0 {
		out.HookScripts = override.HookScripts
	}
	if len(override.HookWebhooks) > 0 {
		out.HookWebhooks = override.HookWebhooks
	}
	return out
}

// Validate checks field values for internal consistency.
func Validate(cfg Config) error {
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", cfg.LogLevel)
	}
	if cfg.ListenAddr == "" && cfg.DialAddr == "" {
		return fmt.Errorf("one of listen_addr or dial_addr must be set")
	}
	if cfg.HookStdioFormat != "" && cfg.HookStdioFormat != "json" && cfg.HookStdioFormat != "env" {
		return fmt.Errorf("invalid hook_stdio_format %q, must be 'json' or 'env'", cfg.HookStdioFormat)
	}
	if cfg.HookConcurrency < 0 {
		return fmt.Errorf("hook_concurrency cannot be negative")
	}
	return nil
}

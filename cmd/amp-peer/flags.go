package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/alxayo/go-amp/internal/config"
)

// version is injected at build time with -ldflags "-X main.version=...". Defaults to dev.
var version = "dev"

type cliConfig struct {
	listenAddr  string
	dialAddr    string
	logLevel    string
	configFile  string
	envFile     string
	metricsAddr string
	showVersion bool

	hookScripts     []string
	hookWebhooks    []string
	hookStdioFormat string
	hookTimeout     string
	hookConcurrency int
}

func parseFlags(args []string) (*cliConfig, error) {
	fs := flag.NewFlagSet("amp-peer", flag.ContinueOnError)
	fs.SetOutput(os.Stdout)

	cfg := &cliConfig{}
	var hookScripts stringSliceFlag
	var hookWebhooks stringSliceFlag

	fs.StringVar(&cfg.listenAddr, "listen", "", "TCP listen address (e.g. :7700); starts the peer as a responder")
	fs.StringVar(&cfg.dialAddr, "dial", "", "TCP address to dial (e.g. 127.0.0.1:7700); starts the peer as a caller")
	fs.StringVar(&cfg.logLevel, "log-level", "", "Log level: debug|info|warn|error")
	fs.StringVar(&cfg.configFile, "config", "", "Path to a YAML config file")
	fs.StringVar(&cfg.envFile, "env-file", "", "Path to a .env file to load before resolving config")
	fs.StringVar(&cfg.metricsAddr, "metrics-addr", "", "Address to serve Prometheus metrics on (empty=disabled)")
	fs.BoolVar(&cfg.showVersion, "version", false, "Print version and exit")

	fs.Var(&hookScripts, "hook-script", "Hook script in format event_type=script_path (can be specified multiple times)")
	fs.Var(&hookWebhooks, "hook-webhook", "Hook webhook in format event_type=webhook_url (can be specified multiple times)")
	fs.StringVar(&cfg.hookStdioFormat, "hook-stdio-format", "", "Enable structured stdio output: json|env (empty=disabled)")
	fs.StringVar(&cfg.hookTimeout, "hook-timeout", "", "Timeout for hook execution")
	fs.IntVar(&cfg.hookConcurrency, "hook-concurrency", 0, "Maximum concurrent hook executions")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.hookScripts = hookScripts
	cfg.hookWebhooks = hookWebhooks

	if cfg.showVersion {
		return cfg, nil
	}

	if cfg.logLevel != "" {
		switch cfg.logLevel {
		case "debug", "info", "warn", "error":
		default:
			return nil, fmt.Errorf("invalid log-level %q", cfg.logLevel)
		}
	}

	for _, script := range cfg.hookScripts {
		if err := validateHookAssignment("hook-script", script); err != nil {
			return nil, err
		}
	}
	for _, webhook := range cfg.hookWebhooks {
		if err := validateHookAssignment("hook-webhook", webhook); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// toConfigOverride converts the raw flag values into a config.Config carrying
// only the fields the user actually set, for merging over file/env defaults.
func (c *cliConfig) toConfigOverride() config.Config {
	override := config.Config{
		ListenAddr:      c.listenAddr,
		DialAddr:        c.dialAddr,
		LogLevel:        c.logLevel,
		MetricsAddr:     c.metricsAddr,
		HookStdioFormat: c.hookStdioFormat,
		HookTimeout:     c.hookTimeout,
		HookConcurrency: c.hookConcurrency,
	}
	for _, s := range c.hookScripts {
		et, target := splitAssignment(s)
		override.HookScripts = append(override.HookScripts, config.HookEntry{EventType: et, Target: target})
	}
	for _, s := range c.hookWebhooks {
		et, target := splitAssignment(s)
		override.HookWebhooks = append(override.HookWebhooks, config.HookEntry{EventType: et, Target: target})
	}
	return override
}

type stringSliceFlag []string

func (s *stringSliceFlag) String() string {
	return strings.Join(*s, ", ")
}

func (s *stringSliceFlag) Set(value string) error {
	*s = append(*s, value)
	return nil
}

func splitAssignment(s string) (string, string) {
	parts := strings.SplitN(s, "=", 2)
	if len(parts) != 2 {
		return "", ""
	}
	return parts[0], parts[1]
}

var validHookEventTypes = map[string]bool{
	"request":        true,
	"unhandled":      true,
	"responded":      true,
	"error_sent":     true,
	"call_completed": true,
	"cancelled":      true,
	"fatal":          true,
}

func validateHookAssignment(flagName, assignment string) error {
	eventType, value := splitAssignment(assignment)
	if eventType == "" {
		return errors.New("invalid " + flagName + ": event type cannot be empty")
	}
	if value == "" {
		return errors.New("invalid " + flagName + ": value cannot be empty")
	}
	if !validHookEventTypes[eventType] {
		return fmt.Errorf("invalid %s: unknown event type %q", flagName, eventType)
	}
	return nil
}

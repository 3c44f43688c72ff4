package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFileMissingIsNotError(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ListenAddr != "" {
		t.Errorf("expected zero-value config, got %+v", cfg)
	}
}

func TestLoadFileParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "amp.yaml")
	content := "listen_addr: \":9000\"\nlog_level: debug\nhook_concurrency: 5\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ListenAddr != ":9000" {
		t.Errorf("expected listen addr ':9000', got %q", cfg.ListenAddr)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level 'debug', got %q", cfg.LogLevel)
	}
	if cfg.HookConcurrency != 5 {
		t.Errorf("expected hook concurrency 5, got %d", cfg.HookConcurrency)
	}
}

func TestApplyEnvOverridesDefaults(t *testing.T) {
	t.Setenv("AMP_LISTEN_ADDR", ":8888")
	t.Setenv("AMP_LOG_LEVEL", "warn")

	cfg := ApplyEnv(Default())
	if cfg.ListenAddr != ":8888" {
		t.Errorf("expected listen addr ':8888', got %q", cfg.ListenAddr)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("expected log level 'warn', got %q", cfg.LogLevel)
	}
}

func TestMergeOverrideTakesPrecedence(t *testing.T) {
	base := Default()
	override := Config{ListenAddr: ":1111", HookConcurrency: 42}

	merged := Merge(base, override)
	if merged.ListenAddr != ":1111" {
		t.Errorf("expected override listen addr, got %q", merged.ListenAddr)
	}
	if merged.HookConcurrency != 42 {
		t.Errorf("expected override concurrency, got %d", merged.HookConcurrency)
	}
	if merged.LogLevel != base.LogLevel {
		t.Errorf("expected base log level to survive merge, got %q", merged.LogLevel)
	}
}

func TestValidateRejectsBadLogLevel(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "verbose"
	if err := Validate(cfg); err == nil {
		t.Error("expected error for invalid log level")
	}
}

func TestValidateRequiresAddr(t *testing.T) {
	cfg := Default()
	cfg.ListenAddr = ""
	cfg.DialAddr = ""
	if err := Validate(cfg); err == nil {
		t.Error("expected error when neither listen_addr nor dial_addr is set")
	}
}

func TestValidateRejectsBadStdioFormat(t *testing.T) {
	cfg := Default()
	cfg.HookStdioFormat = "xml"
	if err := Validate(cfg); err == nil {
		t.Error("expected error for invalid hook stdio format")
	}
}

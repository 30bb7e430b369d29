package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/danmuck/rqstctl/internal/config"
)

func TestLoadRuntimeConfigDefaultsAndOverrides(t *testing.T) {
	cfg, err := loadRuntimeConfig("ex.config.toml")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Device.Path != "/dev/rqst-test" {
		t.Fatalf("unexpected device path: %q", cfg.Device.Path)
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("unexpected level: %q", cfg.Logging.Level)
	}
	if !cfg.Logging.Timestamp {
		t.Fatalf("expected default timestamp enabled")
	}
	if cfg.Logging.File.MaxBackups != 7 {
		t.Fatalf("unexpected max backups: %d", cfg.Logging.File.MaxBackups)
	}
	if cfg.Logging.File.MaxSizeMB != config.Default().Logging.File.MaxSizeMB {
		t.Fatalf("unexpected max size: %d", cfg.Logging.File.MaxSizeMB)
	}
	if cfg.Metrics.Textfile != "/var/lib/node_exporter/textfile/rqstctl.prom" {
		t.Fatalf("unexpected textfile: %q", cfg.Metrics.Textfile)
	}
}

func TestLoadRuntimeConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[device]\npriority = 2\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := loadRuntimeConfig(path); err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestLoadRuntimeConfigRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[device]\npath = \"relative/rqst\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := loadRuntimeConfig(path); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestLoadRuntimeConfigMissingExplicitPath(t *testing.T) {
	if _, err := loadRuntimeConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatalf("expected missing file error")
	}
}

func TestTemplateMatchesRuntimeLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := config.WriteTemplate(path, "rqstctl", false); err != nil {
		t.Fatalf("write template: %v", err)
	}
	got, err := loadRuntimeConfig(path)
	if err != nil {
		t.Fatalf("load template: %v", err)
	}
	want, err := config.Load(path)
	if err != nil {
		t.Fatalf("load template with config.Load: %v", err)
	}
	if got != want {
		t.Fatalf("loaders disagree:\n%+v\n%+v", got, want)
	}
}

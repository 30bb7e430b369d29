package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/danmuck/rqstctl/internal/config"
)

// rqstctl config.toml key mapping to runtime settings.
type fileConfig struct {
	Device struct {
		Path string `toml:"path"`
	} `toml:"device"`
	Logging struct {
		Level     string `toml:"level"`
		Timestamp bool   `toml:"timestamp"`
		NoColor   bool   `toml:"no_color"`
		File      struct {
			Path       string `toml:"path"`
			MaxSizeMB  int    `toml:"max_size_mb"`
			MaxBackups int    `toml:"max_backups"`
			MaxAgeDays int    `toml:"max_age_days"`
			Compress   bool   `toml:"compress"`
		} `toml:"file"`
	} `toml:"logging"`
	Metrics struct {
		Textfile string `toml:"textfile"`
	} `toml:"metrics"`
}

// loadRuntimeConfig overlays the keys present in path onto config.Default.
// An empty path falls back to config.DefaultPath and tolerates its absence.
func loadRuntimeConfig(path string) (config.Config, error) {
	cfg := config.Default()

	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = config.DefaultPath
	}
	if _, err := os.Stat(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return config.Config{}, fmt.Errorf("load rqstctl config: %w", err)
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config.Config{}, fmt.Errorf("load rqstctl config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return config.Config{}, fmt.Errorf("load rqstctl config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("device", "path") {
		cfg.Device.Path = strings.TrimSpace(raw.Device.Path)
	}
	if meta.IsDefined("logging", "level") {
		cfg.Logging.Level = strings.TrimSpace(raw.Logging.Level)
	}
	if meta.IsDefined("logging", "timestamp") {
		cfg.Logging.Timestamp = raw.Logging.Timestamp
	}
	if meta.IsDefined("logging", "no_color") {
		cfg.Logging.NoColor = raw.Logging.NoColor
	}
	if meta.IsDefined("logging", "file", "path") {
		cfg.Logging.File.Path = strings.TrimSpace(raw.Logging.File.Path)
	}
	if meta.IsDefined("logging", "file", "max_size_mb") {
		cfg.Logging.File.MaxSizeMB = raw.Logging.File.MaxSizeMB
	}
	if meta.IsDefined("logging", "file", "max_backups") {
		cfg.Logging.File.MaxBackups = raw.Logging.File.MaxBackups
	}
	if meta.IsDefined("logging", "file", "max_age_days") {
		cfg.Logging.File.MaxAgeDays = raw.Logging.File.MaxAgeDays
	}
	if meta.IsDefined("logging", "file", "compress") {
		cfg.Logging.File.Compress = raw.Logging.File.Compress
	}
	if meta.IsDefined("metrics", "textfile") {
		cfg.Metrics.Textfile = strings.TrimSpace(raw.Metrics.Textfile)
	}

	if err := config.Validate(cfg); err != nil {
		return config.Config{}, fmt.Errorf("load rqstctl config: %w", err)
	}
	return cfg, nil
}

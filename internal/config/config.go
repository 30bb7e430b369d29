package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/danmuck/rqstctl/internal/device"
	"github.com/danmuck/rqstctl/internal/logging"
)

// DefaultPath is where rqstctl looks for its config when none is given.
const DefaultPath = "/etc/rqstctl/config.toml"

type Config struct {
	Device  DeviceConfig  `toml:"device"`
	Logging LoggingConfig `toml:"logging"`
	Metrics MetricsConfig `toml:"metrics"`
}

type DeviceConfig struct {
	Path string `toml:"path"`
}

type LoggingConfig struct {
	Level     string        `toml:"level"`
	Timestamp bool          `toml:"timestamp"`
	NoColor   bool          `toml:"no_color"`
	File      LogFileConfig `toml:"file"`
}

type LogFileConfig struct {
	Path       string `toml:"path"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
	Compress   bool   `toml:"compress"`
}

type MetricsConfig struct {
	Textfile string `toml:"textfile"`
}

func Default() Config {
	return Config{
		Device: DeviceConfig{Path: device.DefaultPath},
		Logging: LoggingConfig{
			Level:     "info",
			Timestamp: true,
			File: LogFileConfig{
				MaxSizeMB:  10,
				MaxBackups: 3,
				MaxAgeDays: 28,
			},
		},
	}
}

// Load reads path over Default and validates the result. Unknown keys are
// rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.Device.Path) == "" {
		return fmt.Errorf("config missing device.path")
	}
	if !filepath.IsAbs(cfg.Device.Path) {
		return fmt.Errorf("device.path must be absolute: %q", cfg.Device.Path)
	}
	if _, ok := logging.ParseLevel(cfg.Logging.Level); !ok {
		return fmt.Errorf("logging.level invalid: %q", cfg.Logging.Level)
	}
	f := cfg.Logging.File
	if f.MaxSizeMB < 0 || f.MaxBackups < 0 || f.MaxAgeDays < 0 {
		return fmt.Errorf("logging.file limits must not be negative")
	}
	if tf := strings.TrimSpace(cfg.Metrics.Textfile); tf != "" && !strings.HasSuffix(tf, ".prom") {
		return fmt.Errorf("metrics.textfile must end in .prom: %q", tf)
	}
	return nil
}

// ApplyLogging copies the logging section onto a logging config.
func (c Config) ApplyLogging(dst *logging.Config) {
	if lvl, ok := logging.ParseLevel(c.Logging.Level); ok {
		dst.Level = lvl
	}
	dst.Timestamp = c.Logging.Timestamp
	dst.NoColor = c.Logging.NoColor
	dst.File = logging.FileConfig{
		Path:       c.Logging.File.Path,
		MaxSizeMB:  c.Logging.File.MaxSizeMB,
		MaxBackups: c.Logging.File.MaxBackups,
		MaxAgeDays: c.Logging.File.MaxAgeDays,
		Compress:   c.Logging.File.Compress,
	}
}

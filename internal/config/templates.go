package config

import (
	"fmt"
	"os"
	"strings"
)

func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", "rqstctl":
		return rqstctlTemplate, nil
	case "minimal":
		return minimalTemplate, nil
	default:
		return "", fmt.Errorf("unknown config kind: %s", kind)
	}
}

func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const rqstctlTemplate = `[device]
path = "/sys/bus/serial/devices/serial0-0/rqst"

[logging]
level = "info"
timestamp = true
no_color = false

[logging.file]
path = ""
max_size_mb = 10
max_backups = 3
max_age_days = 28
compress = false

[metrics]
textfile = ""
`

const minimalTemplate = `[device]
path = "/sys/bus/serial/devices/serial0-0/rqst"
`

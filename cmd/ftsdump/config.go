package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// cliConfig holds the tool's defaults, overridable through a TOML file.
type cliConfig struct {
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
	Output    string `toml:"output"` // table or json
}

func defaultConfig() cliConfig {
	return cliConfig{
		LogLevel:  "info",
		LogFormat: "text",
		Output:    "table",
	}
}

// loadConfig reads the TOML config at path. With an empty path the
// well-known location is tried and silently skipped when absent; an
// explicitly given path must exist.
func loadConfig(path string) (cliConfig, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		base, err := os.UserConfigDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(base, "ftsdump", "config.toml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	switch cfg.Output {
	case "table", "json":
	default:
		return cfg, fmt.Errorf("config output: unsupported value %q", cfg.Output)
	}
	return cfg, nil
}

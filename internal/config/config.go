package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/tspivey/fm/internal/logging"
	statepkg "github.com/tspivey/fm/internal/state"
)

// Config is the content of the configuration file. Every key is optional;
// empty values fall back to the environment and then to built-in defaults.
type Config struct {
	Sort         string `toml:"sort"`
	Opener       string `toml:"opener"`
	Editor       string `toml:"editor"`
	Shell        string `toml:"shell"`
	TrashCommand string `toml:"trash_command"`
	LogFile      string `toml:"log_file"`
	LogLevel     string `toml:"log_level"`
}

// DefaultPath returns $XDG_CONFIG_HOME/fm/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot locate config directory: %w", err)
	}
	return filepath.Join(dir, "fm", "config.toml"), nil
}

// Load reads the configuration file at path. A missing file yields an empty
// configuration; unknown keys and malformed files are errors.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the values that have a fixed vocabulary.
func (c *Config) Validate() error {
	if c.Sort != "" {
		if _, err := statepkg.ParseSortOrder(c.Sort); err != nil {
			return err
		}
	}
	if !logging.ValidLevel(c.LogLevel) {
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}

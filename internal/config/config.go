// Package config loads refview's global configuration. Every field is
// optional; command-line flags override whatever is set here.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the persisted configuration, usually at
// ~/.config/refview/config.yml.
type Config struct {
	Mode    string `yaml:"mode,omitempty"`    // color mode: auto, light, or dark
	Color   string `yaml:"color,omitempty"`   // colorize output: auto, always, or never
	Syntax  *bool  `yaml:"syntax,omitempty"`  // syntax highlighting, default on
	Context int    `yaml:"context,omitempty"` // unified diff context lines
	Watch   *bool  `yaml:"watch,omitempty"`   // browse auto-refresh, default on
}

// Path returns the config location, honoring XDG_CONFIG_HOME.
func Path() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("find home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "refview", "config.yml"), nil
}

// Load reads the config at path. A missing file yields the zero config.
func Load(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// SyntaxEnabled applies the default: highlighting is on unless the
// config turns it off.
func (c *Config) SyntaxEnabled() bool {
	return c.Syntax == nil || *c.Syntax
}

// WatchEnabled applies the default: browse auto-refresh is on unless
// the config turns it off.
func (c *Config) WatchEnabled() bool {
	return c.Watch == nil || *c.Watch
}

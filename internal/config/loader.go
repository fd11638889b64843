package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".pixeltally"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File holds the defaults a YAML configuration file can supply. Every field
// is optional; flags given explicitly on the command line always win.
//
// Example:
//
//	threshold: 245
//	extensions: [png, tif, tiff]
//	recursive: true
type File struct {
	// Threshold overrides the default whiteness threshold.
	Threshold *int `yaml:"threshold"`

	// Extensions replaces the default extension filter.
	Extensions []string `yaml:"extensions"`

	// Recursive changes the default directory expansion mode.
	Recursive *bool `yaml:"recursive"`

	// Jobs overrides the default worker count.
	Jobs *int `yaml:"jobs"`
}

// LoadConfigFile loads defaults from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound. Callers should
// handle this error based on whether the path was explicitly specified by
// the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
//  1. If configPath is specified, use it directly
//  2. Look for .pixeltally in the current directory
//  3. Look for .pixeltally in the user's home directory
//  4. Look for config.yaml in the XDG config directory
//
// Returns the path to the configuration file if found, or "" if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	xdgConfig := filepath.Join(XDGConfigDir(), "config.yaml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig
	}

	return ""
}

// Apply merges the file's defaults into cfg. Only fields the flagChanged
// function does not report as explicitly set on the command line are
// overridden, so the precedence is flags > file > built-in defaults.
func (f *File) Apply(cfg *Config, flagChanged func(name string) bool) {
	if f == nil {
		return
	}

	if f.Threshold != nil && !flagChanged("threshold") {
		cfg.Threshold = *f.Threshold
	}
	if len(f.Extensions) > 0 && !flagChanged("ext") {
		cfg.Extensions = f.Extensions
	}
	if f.Recursive != nil && !flagChanged("recursive") {
		cfg.Recursive = *f.Recursive
	}
	if f.Jobs != nil && !flagChanged("jobs") {
		cfg.Jobs = *f.Jobs
	}
}

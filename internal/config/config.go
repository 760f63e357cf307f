// Package config loads quicknote settings from an optional YAML file and the environment.
package config

import (
	"os"
	"path/filepath"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	// EnvConfig overrides the config file location.
	EnvConfig = "QUICKNOTE_CONFIG"
	// EnvFile overrides the store path from the config file.
	EnvFile = "QUICKNOTE_FILE"

	// DefaultStoreName is the store file created in the home directory.
	DefaultStoreName = ".quicknotes.json"
)

// Config holds user settings. Flags on the command line take precedence over it.
type Config struct {
	// Path of the config file that was read, empty when none was found.
	Source string `yaml:"-"`

	// File is the store path. Empty means ~/.quicknotes.json.
	File string `yaml:"file"`
	// ExportFormat is the default for `export --format`.
	ExportFormat string `yaml:"export_format" default:"markdown"`
	// SeedCount is the default for `seed -n`.
	SeedCount int `yaml:"seed_count" default:"5"`
	// ReadOnly opens the store without write access.
	ReadOnly bool `yaml:"read_only"`
}

// DefaultConfigPath returns $QUICKNOTE_CONFIG or <user config dir>/quicknote/config.yaml.
func DefaultConfigPath() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to locate user config directory")
	}
	return filepath.Join(dir, "quicknote", "config.yaml"), nil
}

// DefaultStorePath returns ~/.quicknotes.json.
func DefaultStorePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to locate home directory")
	}
	return filepath.Join(home, DefaultStoreName), nil
}

// Load builds the configuration.
//
// An explicit path must exist. With an empty path the default location is
// tried and a missing file there just yields the defaults. QUICKNOTE_FILE
// then overrides the store path, and a leading ~ in it is expanded.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
		explicit = os.Getenv(EnvConfig) != ""
	}

	c := new(Config)
	if err := defaults.Set(c); err != nil {
		return nil, errors.Wrap(err, "set default config failed")
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, errors.Wrapf(err, "parse config file %s failed", path)
		}
		c.Source = path
		// Fill fields present in the file but left empty.
		if err := defaults.Set(c); err != nil {
			return nil, errors.Wrap(err, "re-set default config failed")
		}
	case os.IsNotExist(err) && !explicit:
	default:
		return nil, errors.Wrapf(err, "read config file %s failed", path)
	}

	if f := os.Getenv(EnvFile); f != "" {
		c.File = f
	}
	if c.File == "" {
		p, err := DefaultStorePath()
		if err != nil {
			return nil, err
		}
		c.File = p
	}

	file, err := expandHome(c.File)
	if err != nil {
		return nil, err
	}
	c.File = file

	if c.SeedCount < 0 {
		return nil, errors.Errorf("seed_count must not be negative, got %d", c.SeedCount)
	}
	return c, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !hasHomePrefix(path) {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to locate home directory")
	}
	return filepath.Join(home, path[1:]), nil
}

func hasHomePrefix(path string) bool {
	return len(path) > 1 && path[0] == '~' && os.IsPathSeparator(path[1])
}

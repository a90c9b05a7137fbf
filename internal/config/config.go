// Package config loads the deck tool configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration file looked up in the working directory.
const DefaultFile = "deck.yaml"

// Config controls how the deck tool reads input files.
type Config struct {
	// Strict makes check fail on the first bad card instead of reporting
	// every bad card.
	Strict bool `yaml:"strict"`

	// SkipUnknown ignores cards whose keyword has no registered family.
	SkipUnknown bool `yaml:"skip_unknown"`

	// CommentPrefixes start a trailing comment on a card line.
	CommentPrefixes []string `yaml:"comment_prefixes"`

	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		CommentPrefixes: []string{"$"},
		LogLevel:        "warn",
	}
}

// Load reads the YAML file at path over the defaults. A missing file is
// only an error when path was named explicitly.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("load config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	for _, p := range c.CommentPrefixes {
		if strings.TrimSpace(p) == "" {
			return errors.New("empty comment prefix")
		}
	}
	return nil
}

// Level returns the slog level named by LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if c.LogLevel == "" {
		return slog.LevelWarn, nil
	}
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	return l, nil
}

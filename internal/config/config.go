package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/goccy/go-yaml"
	"github.com/indaco/csprojchange/internal/core"
	"github.com/indaco/csprojchange/internal/options"
	"github.com/pelletier/go-toml/v2"
)

// Default config file names, looked up in the working directory in this order.
const (
	DefaultYAMLFile = ".csprojchange.yaml"
	DefaultTOMLFile = ".csprojchange.toml"
)

// DefaultInclude selects project files when no include patterns are configured.
var DefaultInclude = []string{"**/*.csproj"}

// Config holds project level defaults for csprojchange.
type Config struct {
	// Mode is used when --mode is not given on the command line.
	Mode string `yaml:"mode,omitempty" toml:"mode,omitempty"`

	// Include lists doublestar patterns, relative to the scanned folder,
	// selecting the files processed during directory enumeration.
	Include []string `yaml:"include,omitempty" toml:"include,omitempty"`

	// Exclude lists doublestar patterns skipped during directory enumeration.
	Exclude []string `yaml:"exclude,omitempty" toml:"exclude,omitempty"`

	// SkipInvalid reports and skips malformed XML files instead of halting the run.
	SkipInvalid bool `yaml:"skip-invalid,omitempty" toml:"skip-invalid,omitempty"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// GetIncludePatterns returns the include patterns, falling back to DefaultInclude.
func (c *Config) GetIncludePatterns() []string {
	if c == nil || len(c.Include) == 0 {
		return DefaultInclude
	}
	return c.Include
}

// GetExcludePatterns returns the configured exclude patterns.
func (c *Config) GetExcludePatterns() []string {
	if c == nil {
		return nil
	}
	return c.Exclude
}

// DefaultMode returns the configured mode, or options.ModeTag.
func (c *Config) DefaultMode() options.Mode {
	if c == nil || c.Mode == "" {
		return options.ModeTag
	}
	return options.Mode(c.Mode)
}

func (c *Config) applyDefaults() {
	if c.Mode == "" {
		c.Mode = options.ModeTag.String()
	}
	if len(c.Include) == 0 {
		c.Include = append([]string(nil), DefaultInclude...)
	}
}

// Validate checks the mode and every glob pattern.
func (c *Config) Validate() error {
	var errs []error
	if _, err := options.ParseMode(c.Mode); err != nil {
		errs = append(errs, err)
	}
	for _, p := range c.Include {
		if !doublestar.ValidatePattern(p) {
			errs = append(errs, fmt.Errorf("invalid include pattern %q", p))
		}
	}
	for _, p := range c.Exclude {
		if !doublestar.ValidatePattern(p) {
			errs = append(errs, fmt.Errorf("invalid exclude pattern %q", p))
		}
	}
	return errors.Join(errs...)
}

// LoadConfigFn is a function variable for loading the configuration.
// Tests can override it to simulate load failures.
var LoadConfigFn = Load

// Load reads the configuration from path, or from the default file names when
// path is empty. A missing default file yields Default(); a missing explicit
// file is an error.
func Load(ctx context.Context, fsys core.FileSystem, path string) (*Config, error) {
	if path != "" {
		data, err := fsys.ReadFile(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
		return parse(data, path)
	}

	for _, name := range []string{DefaultYAMLFile, DefaultTOMLFile} {
		data, err := fsys.ReadFile(ctx, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", name, err)
		}
		return parse(data, name)
	}

	return Default(), nil
}

// parse decodes data as TOML or YAML depending on the file extension.
// Unknown keys are rejected in both formats.
func parse(data []byte, path string) (*Config, error) {
	var cfg Config

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML config %q: %w", path, err)
		}
	} else if len(bytes.TrimSpace(data)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data), yaml.Strict())
		if err := dec.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config %q: %w", path, err)
		}
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}

	return &cfg, nil
}

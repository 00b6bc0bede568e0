// Copyright 2026 The Hex Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"regexp"
	"runtime"
	"slices"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the config file when no --config flag is
// given.
const EnvironmentVariable = "HEX_CONFIG"

// Color modes for hex dumps.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

var colorModes = []string{ColorAuto, ColorAlways, ColorNever}

// Config is the configuration for the hex command.
type Config struct {
	// Language selects the language of interpreter display names, as
	// a BCP 47 tag. Default: en
	Language string `yaml:"language"`

	// LogLevel is one of debug, info, warn or error. Default: info
	LogLevel string `yaml:"log_level"`

	Dump      DumpConfig      `yaml:"dump"`
	Interpret InterpretConfig `yaml:"interpret"`
	Redecode  RedecodeConfig  `yaml:"redecode"`
	Notes     NotesConfig     `yaml:"notes"`
}

// DumpConfig configures hex dump output.
type DumpConfig struct {
	// BytesPerRow is the number of bytes on each row. Default: 16
	BytesPerRow int `yaml:"bytes_per_row"`

	// Color is auto, always or never. auto colors only terminals.
	// Default: auto
	Color string `yaml:"color"`
}

// InterpretConfig configures one-off interpretation.
type InterpretConfig struct {
	// StringBound is the scan limit for terminated strings when no
	// explicit length is given. Default: 256
	StringBound int `yaml:"string_bound"`
}

// RedecodeConfig configures bulk re-interpretation.
type RedecodeConfig struct {
	// Workers is the number of decoding goroutines.
	// Default: runtime.NumCPU()
	Workers int `yaml:"workers"`
}

// NotesConfig configures where notes files live.
type NotesConfig struct {
	// Directory holds notes files for every binary, named after the
	// binary. When empty, a notes file sits beside its binary.
	// ${HOME} and ${VAR:-default} are expanded.
	Directory string `yaml:"directory"`
}

// Default returns the configuration used when no file is given, and
// the base that a loaded file is merged over.
func Default() *Config {
	return &Config{
		Language: "en",
		LogLevel: "info",
		Dump: DumpConfig{
			BytesPerRow: 16,
			Color:       ColorAuto,
		},
		Interpret: InterpretConfig{
			StringBound: 256,
		},
		Redecode: RedecodeConfig{
			Workers: runtime.NumCPU(),
		},
	}
}

// Load loads configuration from the file named by HEX_CONFIG. It fails
// when the variable is unset; there is no search path.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your hex.yaml config file, or use --config flag", EnvironmentVariable)
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from path, merged over [Default].
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.Notes.Directory = expandVars(cfg.Notes.Directory, map[string]string{
		"HOME": os.Getenv("HOME"),
	})
	return cfg, nil
}

// varPattern matches ${VAR} and ${VAR:-default}.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		name := parts[1]
		defaultValue := parts[2]

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors, reporting all of them.
func (c *Config) Validate() error {
	var errs []error

	if _, err := language.Parse(c.Language); err != nil {
		errs = append(errs, fmt.Errorf("language %q: %w", c.Language, err))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if c.Dump.BytesPerRow < 1 || c.Dump.BytesPerRow > 64 {
		errs = append(errs, fmt.Errorf("dump.bytes_per_row must be between 1 and 64, got %d", c.Dump.BytesPerRow))
	}
	if !slices.Contains(colorModes, c.Dump.Color) {
		errs = append(errs, fmt.Errorf("dump.color must be one of: %v", colorModes))
	}
	if c.Interpret.StringBound < 1 || c.Interpret.StringBound > math.MaxInt32 {
		errs = append(errs, fmt.Errorf("interpret.string_bound must be between 1 and %d, got %d",
			math.MaxInt32, c.Interpret.StringBound))
	}
	if c.Redecode.Workers < 1 {
		errs = append(errs, fmt.Errorf("redecode.workers must be at least 1, got %d", c.Redecode.Workers))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Tag returns the display language. An unparseable language yields
// English; Validate reports it.
func (c *Config) Tag() language.Tag {
	tag, err := language.Parse(c.Language)
	if err != nil {
		return language.English
	}
	return tag
}

// Level returns the log level.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// Copyright 2026 The Hex Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/language"

	"github.com/trejkaz/hex-components/lib/testutil"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	return testutil.WriteFile(t, "hex.yaml", []byte(content))
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Language != "en" {
		t.Errorf("Language = %q, want en", cfg.Language)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.Dump.BytesPerRow != 16 {
		t.Errorf("Dump.BytesPerRow = %d, want 16", cfg.Dump.BytesPerRow)
	}
	if cfg.Dump.Color != ColorAuto {
		t.Errorf("Dump.Color = %q, want auto", cfg.Dump.Color)
	}
	if cfg.Interpret.StringBound != 256 {
		t.Errorf("Interpret.StringBound = %d, want 256", cfg.Interpret.StringBound)
	}
	if cfg.Redecode.Workers < 1 {
		t.Errorf("Redecode.Workers = %d, want at least 1", cfg.Redecode.Workers)
	}
	if cfg.Notes.Directory != "" {
		t.Errorf("Notes.Directory = %q, want empty", cfg.Notes.Directory)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate: %v", err)
	}
}

func TestLoad_RequiresHexConfig(t *testing.T) {
	t.Setenv(EnvironmentVariable, "")

	_, err := Load()
	if err == nil {
		t.Fatal("Load succeeded without HEX_CONFIG")
	}
	if !strings.Contains(err.Error(), EnvironmentVariable) {
		t.Errorf("error %q does not name %s", err, EnvironmentVariable)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	path := writeConfig(t, "language: de\n")
	t.Setenv(EnvironmentVariable, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Language != "de" {
		t.Errorf("Language = %q, want de", cfg.Language)
	}
}

func TestLoadFile_MergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
dump:
  bytes_per_row: 32
redecode:
  workers: 3
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.Dump.BytesPerRow != 32 {
		t.Errorf("Dump.BytesPerRow = %d, want 32", cfg.Dump.BytesPerRow)
	}
	if cfg.Dump.Color != ColorAuto {
		t.Errorf("Dump.Color = %q, want default auto", cfg.Dump.Color)
	}
	if cfg.Interpret.StringBound != 256 {
		t.Errorf("Interpret.StringBound = %d, want default 256", cfg.Interpret.StringBound)
	}
	if cfg.Redecode.Workers != 3 {
		t.Errorf("Redecode.Workers = %d, want 3", cfg.Redecode.Workers)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("LoadFile succeeded on a missing file")
	}
}

func TestLoadFile_Malformed(t *testing.T) {
	path := writeConfig(t, "dump: [unclosed\n")
	_, err := LoadFile(path)
	if err == nil {
		t.Fatal("LoadFile succeeded on malformed YAML")
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error %q does not name the file", err)
	}
}

func TestLoadFile_ExpandsNotesDirectory(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	t.Setenv("HEX_TEST_UNSET", "")
	path := writeConfig(t, `
notes:
  directory: ${HOME}/notes/${HEX_TEST_UNSET:-shared}
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Notes.Directory != "/home/tester/notes/shared" {
		t.Errorf("Notes.Directory = %q", cfg.Notes.Directory)
	}
}

func TestExpandVars(t *testing.T) {
	t.Setenv("HEX_TEST_SET", "from-env")

	tests := []struct {
		input string
		vars  map[string]string
		want  string
	}{
		{"plain", nil, "plain"},
		{"${HOME}/x", map[string]string{"HOME": "/h"}, "/h/x"},
		{"${HEX_TEST_SET}", nil, "from-env"},
		{"${HEX_TEST_MISSING:-fallback}", nil, "fallback"},
		{"${HEX_TEST_MISSING}", nil, ""},
		{"${A}-${B}", map[string]string{"A": "1", "B": "2"}, "1-2"},
	}
	for _, test := range tests {
		if got := expandVars(test.input, test.vars); got != test.want {
			t.Errorf("expandVars(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"bad language", func(c *Config) { c.Language = "not a tag!" }, "language"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"zero bytes per row", func(c *Config) { c.Dump.BytesPerRow = 0 }, "bytes_per_row"},
		{"too many bytes per row", func(c *Config) { c.Dump.BytesPerRow = 65 }, "bytes_per_row"},
		{"bad color", func(c *Config) { c.Dump.Color = "sometimes" }, "dump.color"},
		{"zero string bound", func(c *Config) { c.Interpret.StringBound = 0 }, "string_bound"},
		{"zero workers", func(c *Config) { c.Redecode.Workers = 0 }, "workers"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := Default()
			test.modify(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate succeeded")
			}
			if !strings.Contains(err.Error(), test.wantErr) {
				t.Errorf("error %q does not mention %q", err, test.wantErr)
			}
		})
	}
}

func TestValidate_ReportsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Dump.Color = "sometimes"
	cfg.Redecode.Workers = -1

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate succeeded")
	}
	for _, want := range []string{"dump.color", "redecode.workers"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q is missing %q", err, want)
		}
	}
}

func TestTagAndLevel(t *testing.T) {
	cfg := Default()
	cfg.Language = "de-AT"
	cfg.LogLevel = "WARN"

	if base, _ := cfg.Tag().Base(); base.String() != "de" {
		t.Errorf("Tag base = %v, want de", base)
	}
	level, err := cfg.Level()
	if err != nil {
		t.Fatalf("Level: %v", err)
	}
	if level.String() != "WARN" {
		t.Errorf("Level = %v, want WARN", level)
	}

	cfg.Language = "not a tag!"
	if cfg.Tag() != language.English {
		t.Errorf("Tag for a bad language = %v, want en", cfg.Tag())
	}
}

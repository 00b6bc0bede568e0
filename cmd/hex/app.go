// Copyright 2026 The Hex Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/trejkaz/hex-components/cmd/hex/cli"
	"github.com/trejkaz/hex-components/lib/annotation"
	"github.com/trejkaz/hex-components/lib/binary"
	"github.com/trejkaz/hex-components/lib/codec"
	"github.com/trejkaz/hex-components/lib/config"
	"github.com/trejkaz/hex-components/lib/interpreter"
	"github.com/trejkaz/hex-components/lib/version"
)

// notesExtension is appended to a binary's file name to name its notes
// file.
const notesExtension = ".hexnotes"

// app carries what every command shares. config and logger are set
// by setup once flags are parsed.
type app struct {
	stdout     io.Writer
	registry   *interpreter.Registry
	configPath string

	config *config.Config
	logger *slog.Logger
}

func newApp(stdout io.Writer) *app {
	return &app{stdout: stdout, registry: interpreter.Default()}
}

func (a *app) root() *cli.Command {
	return &cli.Command{
		Name:        "hex",
		Summary:     "Decode and annotate binary files",
		Description: "Decode values in binary files, keep notes on byte ranges, and print annotated hex dumps.",
		Subcommands: []*cli.Command{
			a.kindsCommand(),
			a.interpretCommand(),
			a.notesCommand(),
			a.dumpCommand(),
			a.versionCommand(),
		},
	}
}

func (a *app) versionCommand() *cli.Command {
	var short bool

	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Usage:   "hex version [--short]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("version", pflag.ContinueOnError)
			flagSet.BoolVar(&short, "short", false, "print only the version number")
			return flagSet
		},
		Args: cli.ExactArgs(0),
		Run: func(args []string) error {
			if short {
				fmt.Fprintln(a.stdout, version.Short())
				return nil
			}
			fmt.Fprintf(a.stdout, "hex %s\n", version.Full())
			return nil
		},
	}
}

func (a *app) registerConfig(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&a.configPath, "config", "", "path to hex.yaml (default: $"+config.EnvironmentVariable+")")
}

// setup loads the configuration: --config first, then HEX_CONFIG, then
// the defaults.
func (a *app) setup(command string) error {
	var cfg *config.Config
	var err error
	switch {
	case a.configPath != "":
		cfg, err = config.LoadFile(a.configPath)
	case os.Getenv(config.EnvironmentVariable) != "":
		cfg, err = config.Load()
	default:
		cfg = config.Default()
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}

	a.config = cfg
	a.logger = cli.NewCommandLogger(level).With("command", command)
	return nil
}

// source selects how a binary file is read.
type source struct {
	compression string
	size        int
}

func (s *source) register(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&s.compression, "compression", "none", "compression of the file: none, lz4 (block) or zstd")
	flagSet.IntVar(&s.size, "size", 0, "uncompressed size in bytes, required with --compression")
}

// openBinary maps an uncompressed file or decompresses a compressed one
// into memory. The returned func releases the binary.
func (a *app) openBinary(path string, s source) (binary.Binary, func(), error) {
	compression, err := binary.ParseCompression(s.compression)
	if err != nil {
		return nil, nil, err
	}

	if compression == binary.CompressionNone {
		mapped, err := binary.MapFile(path)
		if err != nil {
			return nil, nil, err
		}
		a.logger.Debug("mapped binary", "file", path, "length", mapped.Length())
		release := func() {
			if err := mapped.Close(); err != nil {
				a.logger.Warn("releasing binary", "file", path, "error", err)
			}
		}
		return mapped, release, nil
	}

	if s.size <= 0 {
		return nil, nil, fmt.Errorf("--size is required with --compression %s", compression)
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	b, err := binary.Decompress(payload, compression, s.size)
	if err != nil {
		return nil, nil, fmt.Errorf("decompressing %s: %w", path, err)
	}
	a.logger.Debug("decompressed binary", "file", path, "compression", compression.String(),
		"compressed", len(payload), "length", b.Length())
	return b, func() {}, nil
}

// notesPath returns explicit when set, otherwise the notes file for
// binaryPath: in notes.directory when configured, beside the binary
// when not.
func (a *app) notesPath(binaryPath, explicit string) string {
	if explicit != "" {
		return explicit
	}
	name := filepath.Base(binaryPath) + notesExtension
	if a.config.Notes.Directory != "" {
		return filepath.Join(a.config.Notes.Directory, name)
	}
	return filepath.Join(filepath.Dir(binaryPath), name)
}

// loadNotes restores the collection saved at path over b. A missing
// file yields an empty collection.
func (a *app) loadNotes(b binary.Binary, path string) (*annotation.Collection, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		a.logger.Debug("no notes file yet", "path", path)
		return annotation.New(b, annotation.WithLogger(a.logger)), nil
	}
	if err != nil {
		return nil, err
	}

	var document annotation.Document
	if err := codec.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	collection, err := annotation.Restore(b, a.registry, document, annotation.WithLogger(a.logger))
	if err != nil {
		return nil, fmt.Errorf("restoring %s: %w", path, err)
	}
	return collection, nil
}

// saveNotes writes the collection to path, replacing the previous file
// only once the new content is on disk.
func (a *app) saveNotes(collection *annotation.Collection, path string) error {
	document, err := collection.Document()
	if err != nil {
		return err
	}
	data, err := codec.Marshal(document)
	if err != nil {
		return fmt.Errorf("encoding notes: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating notes directory: %w", err)
	}
	temporaryPath := path + ".tmp"
	file, err := os.OpenFile(temporaryPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("creating temporary notes file: %w", err)
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("writing temporary notes file: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("syncing temporary notes file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("closing temporary notes file: %w", err)
	}
	if err := os.Rename(temporaryPath, path); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("renaming notes file into place: %w", err)
	}

	a.logger.Debug("notes saved", "path", path, "annotations", collection.Count(), "bytes", len(data))
	return nil
}

// report prints every mutation of collection as it happens.
func (a *app) report(collection *annotation.Collection) {
	collection.AddListener(&annotation.ListenerFuncs{
		Added: func(e annotation.Event) {
			fmt.Fprintf(a.stdout, "added %s [%#x, %#x)\n", e.ID, e.Start, e.End())
		},
		Removed: func(e annotation.Event) {
			fmt.Fprintf(a.stdout, "removed %s [%#x, %#x)\n", e.ID, e.Start, e.End())
		},
		Changed: func(e annotation.Event) {
			fmt.Fprintf(a.stdout, "changed %s [%#x, %#x)\n", e.ID, e.Start, e.End())
		},
	})
}

// parseOptions turns key=value pairs into interpreter options. Values
// are read as YAML scalars, so 4 is a number, true a boolean and le a
// string.
func parseOptions(pairs []string) (interpreter.Options, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	options := make(interpreter.Options, len(pairs))
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("option %q: expected key=value", pair)
		}
		var parsed any
		if err := yaml.Unmarshal([]byte(raw), &parsed); err != nil || parsed == nil {
			parsed = raw
		}
		options[key] = parsed
	}
	return options, nil
}

// parsePosition accepts decimal, 0x hexadecimal, 0o octal and 0b
// binary positions.
func parsePosition(text string) (uint64, error) {
	position, err := strconv.ParseUint(text, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("position %q: %w", text, err)
	}
	return position, nil
}

// describe renders an annotation on one line.
func describe(a annotation.Annotation) string {
	var line strings.Builder
	fmt.Fprintf(&line, "[%#x, %#x)", a.Start(), a.End())
	if interp := a.Interpreter(); interp != nil {
		fmt.Fprintf(&line, " %s = %s", interp.Name(), a.Value())
	}
	if note := a.Note(); note != "" {
		fmt.Fprintf(&line, " %q", note)
	}
	return line.String()
}

// Copyright 2026 The Hex Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/trejkaz/hex-components/cmd/hex/cli"
	"github.com/trejkaz/hex-components/lib/annotation"
	"github.com/trejkaz/hex-components/lib/binary"
	"github.com/trejkaz/hex-components/lib/codec"
	"github.com/trejkaz/hex-components/lib/interpreter"
)

// notesParams are the flags shared by every notes subcommand.
type notesParams struct {
	source
	notes string
}

func (a *app) registerNotes(flagSet *pflag.FlagSet, params *notesParams) {
	flagSet.StringVar(&params.notes, "notes", "", "notes file (default: <file>"+notesExtension+", or in notes.directory)")
	params.source.register(flagSet)
	a.registerConfig(flagSet)
}

// session is an opened binary with its notes.
type session struct {
	binary     binary.Binary
	collection *annotation.Collection
	notesPath  string
	release    func()
}

func (a *app) openSession(command, path string, params notesParams) (*session, error) {
	if err := a.setup(command); err != nil {
		return nil, err
	}
	b, release, err := a.openBinary(path, params.source)
	if err != nil {
		return nil, err
	}
	notesPath := a.notesPath(path, params.notes)
	collection, err := a.loadNotes(b, notesPath)
	if err != nil {
		release()
		return nil, err
	}
	a.logger = a.logger.With("notes", notesPath)
	return &session{binary: b, collection: collection, notesPath: notesPath, release: release}, nil
}

func (a *app) notesCommand() *cli.Command {
	return &cli.Command{
		Name:    "notes",
		Summary: "Manage the annotations kept for a binary",
		Description: "Annotations mark byte ranges of a binary with an interpreter kind and a note.\n" +
			"They are stored in a notes file bound to the binary's BLAKE3 digest, so notes\n" +
			"written for one file are refused for different bytes.",
		Subcommands: []*cli.Command{
			a.notesAddCommand(),
			a.notesRemoveCommand(),
			a.notesListCommand(),
			a.notesAtCommand(),
			a.notesImportCommand(),
			a.notesExportCommand(),
			a.notesVerifyCommand(),
		},
	}
}

type addParams struct {
	notesParams
	kind    string
	at      uint64
	length  uint64
	note    string
	options []string
}

func (a *app) notesAddCommand() *cli.Command {
	var params addParams

	return &cli.Command{
		Name:    "add",
		Summary: "Annotate a byte range",
		Description: "Add an annotation. When the range lies inside an existing annotation it\n" +
			"becomes a child of the innermost one; otherwise it is added at the top level.\n" +
			"Overlapping a sibling is an error.\n\n" +
			"--length defaults to the kind's width for fixed-length kinds and to the\n" +
			"decoded length for variable-length ones. Plain notes without --kind need\n" +
			"an explicit --length.",
		Usage: "hex notes add <file> --at <position> [--kind <kind>] [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("add", pflag.ContinueOnError)
			flagSet.StringVarP(&params.kind, "kind", "k", "", "interpreter kind")
			flagSet.Uint64Var(&params.at, "at", 0, "position of the first byte")
			flagSet.Uint64Var(&params.length, "length", 0, "length of the range in bytes")
			flagSet.StringVar(&params.note, "note", "", "free-form note")
			flagSet.StringArrayVarP(&params.options, "option", "o", nil, "interpreter option as key=value (repeatable)")
			a.registerNotes(flagSet, &params.notesParams)
			return flagSet
		},
		Args: cli.ExactArgs(1),
		Examples: []cli.Example{
			{Description: "Mark a header field", Command: "hex notes add image.bin --at 0x10 -k uint32_le --note 'entry count'"},
			{Description: "Mark a region without decoding it", Command: "hex notes add image.bin --at 0x100 --length 0x40 --note 'header'"},
		},
		Run: func(args []string) error {
			s, err := a.openSession("notes/add", args[0], params.notesParams)
			if err != nil {
				return err
			}
			defer s.release()

			node, err := a.buildNode(s.binary, params)
			if err != nil {
				return err
			}
			a.report(s.collection)
			if _, err := addNested(s.collection, node); err != nil {
				return err
			}
			return a.saveNotes(s.collection, s.notesPath)
		},
	}
}

func (a *app) buildNode(b binary.Binary, params addParams) (annotation.Node, error) {
	node := annotation.Node{Start: params.at, Length: params.length, Note: params.note}
	if params.kind == "" {
		if len(params.options) > 0 {
			return node, fmt.Errorf("--option needs --kind")
		}
		if params.length == 0 {
			return node, fmt.Errorf("--length is required without --kind")
		}
		return node, nil
	}

	options, err := parseOptions(params.options)
	if err != nil {
		return node, err
	}
	interp, err := a.registry.Create(params.kind, options)
	if err != nil {
		return node, err
	}
	node.Interpreter = interp

	if node.Length == 0 {
		if fixed, ok := interp.(interpreter.FixedLength); ok {
			node.Length = fixed.ValueLength()
		} else {
			v, err := interpreter.Interpret(interp, b, params.at, a.defaultBound(b, params.at))
			if err != nil {
				return node, err
			}
			node.Length = v.Length()
			node.Value = v
		}
	}
	return node, nil
}

// addNested adds node under the innermost annotation that contains its
// whole range, or at the top level when none does.
func addNested(collection *annotation.Collection, node annotation.Node) (annotation.ID, error) {
	enclosing, ok := collection.AnnotationAt(node.Start)
	for ok && node.End() > enclosing.End() {
		enclosing, ok = collection.Get(enclosing.Parent())
	}
	if !ok {
		return collection.Add(node)
	}
	return collection.AddChild(enclosing.ID(), node)
}

func (a *app) notesRemoveCommand() *cli.Command {
	var params notesParams
	var at uint64

	return &cli.Command{
		Name:        "remove",
		Summary:     "Remove the innermost annotation at a position",
		Description: "Remove the innermost annotation covering --at, together with its children.",
		Usage:       "hex notes remove <file> --at <position> [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("remove", pflag.ContinueOnError)
			flagSet.Uint64Var(&at, "at", 0, "a position inside the annotation")
			a.registerNotes(flagSet, &params)
			return flagSet
		},
		Args: cli.ExactArgs(1),
		Run: func(args []string) error {
			s, err := a.openSession("notes/remove", args[0], params)
			if err != nil {
				return err
			}
			defer s.release()

			found, ok := s.collection.AnnotationAt(at)
			if !ok {
				return fmt.Errorf("no annotation at %#x", at)
			}
			a.report(s.collection)
			if err := s.collection.Remove(found.ID()); err != nil {
				return err
			}
			return a.saveNotes(s.collection, s.notesPath)
		},
	}
}

func (a *app) notesListCommand() *cli.Command {
	var params notesParams

	return &cli.Command{
		Name:    "list",
		Summary: "List all annotations",
		Usage:   "hex notes list <file> [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("list", pflag.ContinueOnError)
			a.registerNotes(flagSet, &params)
			return flagSet
		},
		Args: cli.ExactArgs(1),
		Run: func(args []string) error {
			s, err := a.openSession("notes/list", args[0], params)
			if err != nil {
				return err
			}
			defer s.release()

			depth := make(map[annotation.ID]int)
			s.collection.Walk(func(entry annotation.Annotation) bool {
				level := 0
				if parent := entry.Parent(); !parent.IsZero() {
					level = depth[parent] + 1
				}
				depth[entry.ID()] = level
				fmt.Fprintf(a.stdout, "%s%s\n", strings.Repeat("  ", level), describe(entry))
				return true
			})
			return nil
		},
	}
}

func (a *app) notesAtCommand() *cli.Command {
	var params notesParams

	return &cli.Command{
		Name:        "at",
		Summary:     "Show the annotations covering a position",
		Description: "Print the innermost annotation covering the position, then each enclosing one.\nExits 1 when nothing covers it.",
		Usage:       "hex notes at <file> <position> [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("at", pflag.ContinueOnError)
			a.registerNotes(flagSet, &params)
			return flagSet
		},
		Args: cli.ExactArgs(2),
		Run: func(args []string) error {
			position, err := parsePosition(args[1])
			if err != nil {
				return err
			}
			s, err := a.openSession("notes/at", args[0], params)
			if err != nil {
				return err
			}
			defer s.release()

			found, ok := s.collection.AnnotationAt(position)
			if !ok {
				fmt.Fprintf(a.stdout, "no annotation at %#x\n", position)
				return &cli.ExitError{Code: 1}
			}
			for ok {
				fmt.Fprintln(a.stdout, describe(found))
				if found.Parent().IsZero() {
					break
				}
				found, ok = s.collection.Get(found.Parent())
			}
			return nil
		},
	}
}

func (a *app) notesImportCommand() *cli.Command {
	var params notesParams
	var replace bool

	return &cli.Command{
		Name:    "import",
		Summary: "Import annotations from a JSON document",
		Description: "Read a notes document written as JSON, with // and /* */ comments and trailing\n" +
			"commas allowed, and add its annotations to the binary's notes. A document\n" +
			"without binary_digest applies to any bytes.",
		Usage: "hex notes import <file> <document.jsonc> [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("import", pflag.ContinueOnError)
			flagSet.BoolVar(&replace, "replace", false, "discard existing annotations first")
			a.registerNotes(flagSet, &params)
			return flagSet
		},
		Args: cli.ExactArgs(2),
		Run: func(args []string) error {
			data, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			var document annotation.Document
			if err := codec.UnmarshalJSONC(data, &document); err != nil {
				return fmt.Errorf("reading %s: %w", args[1], err)
			}

			s, err := a.openSession("notes/import", args[0], params)
			if err != nil {
				return err
			}
			defer s.release()

			imported, err := annotation.Restore(s.binary, a.registry, document, annotation.WithLogger(a.logger))
			if err != nil {
				return fmt.Errorf("importing %s: %w", args[1], err)
			}
			if replace {
				for s.collection.Len() > 0 {
					if err := s.collection.RemoveAt(0); err != nil {
						return err
					}
				}
			}
			for _, top := range imported.All() {
				if _, err := s.collection.Add(nodeOf(imported, top)); err != nil {
					return fmt.Errorf("importing [%#x, %#x): %w", top.Start(), top.End(), err)
				}
			}
			fmt.Fprintf(a.stdout, "imported %d annotations\n", imported.Count())
			return a.saveNotes(s.collection, s.notesPath)
		},
	}
}

// nodeOf rebuilds the node for a and its subtree, keeping the
// interpreters and values already decoded.
func nodeOf(collection *annotation.Collection, a annotation.Annotation) annotation.Node {
	node := annotation.Node{
		Start:       a.Start(),
		Length:      a.Length(),
		Interpreter: a.Interpreter(),
		Value:       a.Value(),
		Note:        a.Note(),
	}
	for _, id := range a.Children() {
		if child, ok := collection.Get(id); ok {
			node.Children = append(node.Children, nodeOf(collection, child))
		}
	}
	return node
}

func (a *app) notesExportCommand() *cli.Command {
	var params notesParams
	var diagnose bool

	return &cli.Command{
		Name:    "export",
		Summary: "Print the notes file as JSON",
		Description: "Print the notes document as indented JSON, which 'hex notes import' reads\n" +
			"back. --diagnose prints the stored CBOR in diagnostic notation instead.",
		Usage: "hex notes export <file> [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("export", pflag.ContinueOnError)
			flagSet.BoolVar(&diagnose, "diagnose", false, "print CBOR diagnostic notation of the stored file")
			a.registerNotes(flagSet, &params)
			return flagSet
		},
		Args: cli.ExactArgs(1),
		Run: func(args []string) error {
			if err := a.setup("notes/export"); err != nil {
				return err
			}
			path := a.notesPath(args[0], params.notes)
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			if diagnose {
				notation, err := codec.Diagnose(data)
				if err != nil {
					return fmt.Errorf("diagnosing %s: %w", path, err)
				}
				fmt.Fprintln(a.stdout, notation)
				return nil
			}

			var document annotation.Document
			if err := codec.Unmarshal(data, &document); err != nil {
				return fmt.Errorf("decoding %s: %w", path, err)
			}
			output, err := codec.MarshalJSON(document)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "%s\n", output)
			return nil
		},
	}
}

func (a *app) notesVerifyCommand() *cli.Command {
	var params notesParams

	return &cli.Command{
		Name:    "verify",
		Summary: "Check notes against the binary",
		Description: "Check that the notes file matches the binary's digest and that every\n" +
			"annotation decodes, re-decoding all of them in parallel with\n" +
			"redecode.workers goroutines. Exits 1 when the check fails.",
		Usage: "hex notes verify <file> [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("verify", pflag.ContinueOnError)
			a.registerNotes(flagSet, &params)
			return flagSet
		},
		Args: cli.ExactArgs(1),
		Run: func(args []string) error {
			s, err := a.openSession("notes/verify", args[0], params)
			if errors.Is(err, annotation.ErrDigestMismatch) {
				fmt.Fprintf(a.stdout, "FAIL %v\n", err)
				return &cli.ExitError{Code: 1}
			}
			if err != nil {
				return err
			}
			defer s.release()

			changed := 0
			s.collection.AddListener(&annotation.ListenerFuncs{
				Changed: func(e annotation.Event) {
					changed++
					fmt.Fprintf(a.stdout, "CHANGED %s [%#x, %#x)\n", e.ID, e.Start, e.End())
				},
			})
			if err := s.collection.Redecode(a.config.Redecode.Workers); err != nil {
				fmt.Fprintf(a.stdout, "FAIL %v\n", err)
				return &cli.ExitError{Code: 1}
			}
			if changed > 0 {
				fmt.Fprintf(a.stdout, "FAIL %d of %d annotations decode differently\n", changed, s.collection.Count())
				return &cli.ExitError{Code: 1}
			}
			fmt.Fprintf(a.stdout, "ok %d annotations\n", s.collection.Count())
			return nil
		},
	}
}

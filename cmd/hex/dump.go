// Copyright 2026 The Hex Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"

	"github.com/trejkaz/hex-components/cmd/hex/cli"
	"github.com/trejkaz/hex-components/lib/annotation"
	"github.com/trejkaz/hex-components/lib/binary"
	"github.com/trejkaz/hex-components/lib/config"
)

// palette colors annotations in turn, by their order in the
// collection. ANSI 256 indexes.
var palette = []lipgloss.Color{"24", "94", "29", "90", "58", "31"}

type dumpParams struct {
	notesParams
	offset uint64
	rows   int
	color  string
	width  int
}

func (a *app) dumpCommand() *cli.Command {
	var params dumpParams

	return &cli.Command{
		Name:    "dump",
		Summary: "Print an annotated hex dump",
		Description: "Print rows of hex bytes with their ASCII rendering. Bytes covered by a\n" +
			"top-level annotation are highlighted, and each row lists the annotations\n" +
			"that start on it. Row width and coloring come from the dump config section.",
		Usage: "hex dump <file> [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("dump", pflag.ContinueOnError)
			flagSet.Uint64Var(&params.offset, "offset", 0, "position of the first byte to print")
			flagSet.IntVar(&params.rows, "rows", 0, "rows to print (default: to the end)")
			flagSet.StringVar(&params.color, "color", "", "auto, always or never (default: dump.color)")
			flagSet.IntVar(&params.width, "width", 48, "maximum width of the annotation column")
			a.registerNotes(flagSet, &params.notesParams)
			return flagSet
		},
		Args: cli.ExactArgs(1),
		Examples: []cli.Example{
			{Description: "First 256 bytes with notes", Command: "hex dump image.bin --rows 16"},
			{Description: "Plain text for a pager", Command: "hex dump image.bin --offset 0x400 --color never | less"},
		},
		Run: func(args []string) error {
			if params.rows < 0 || params.width < 1 {
				return fmt.Errorf("--rows must not be negative and --width must be positive")
			}
			s, err := a.openSession("dump", args[0], params.notesParams)
			if err != nil {
				return err
			}
			defer s.release()
			return a.dump(s, params)
		},
	}
}

// dumpStyles holds the styles of one dump, bound to its renderer.
type dumpStyles struct {
	bytes   []lipgloss.Style
	labels  []lipgloss.Style
	offset  lipgloss.Style
	ordinal map[annotation.ID]int
}

func (a *app) newDumpStyles(mode string, collection *annotation.Collection) dumpStyles {
	renderer := lipgloss.NewRenderer(a.stdout)
	switch mode {
	case config.ColorNever:
		renderer.SetColorProfile(termenv.Ascii)
	case config.ColorAlways:
		renderer.SetColorProfile(termenv.ANSI256)
	}

	styles := dumpStyles{
		offset:  renderer.NewStyle().Faint(true),
		ordinal: make(map[annotation.ID]int),
	}
	for _, color := range palette {
		styles.bytes = append(styles.bytes, renderer.NewStyle().Background(color).Foreground(lipgloss.Color("15")))
		styles.labels = append(styles.labels, renderer.NewStyle().Foreground(color).Bold(true))
	}
	for index, top := range collection.All() {
		styles.ordinal[top.ID()] = index % len(palette)
	}
	return styles
}

func (a *app) dump(s *session, params dumpParams) error {
	mode := params.color
	if mode == "" {
		mode = a.config.Dump.Color
	}
	if !slices.Contains([]string{config.ColorAuto, config.ColorAlways, config.ColorNever}, mode) {
		return fmt.Errorf("--color must be auto, always or never, got %q", mode)
	}

	length := s.binary.Length()
	if err := binary.CheckRange(params.offset, 0, length); err != nil {
		return fmt.Errorf("--offset: %w", err)
	}

	styles := a.newDumpStyles(mode, s.collection)
	perRow := uint64(a.config.Dump.BytesPerRow)
	buffer := make([]byte, perRow)

	position := params.offset
	for row := 0; (params.rows == 0 || row < params.rows) && position < length; row++ {
		count := min(perRow, length-position)
		if _, err := s.binary.ReadAt(buffer[:count], position); err != nil {
			return err
		}
		annotations := s.collection.AnnotationsIn(position, position+count)
		line := renderRow(styles, position, buffer[:count], perRow, annotations, row == 0, params.width)
		if _, err := fmt.Fprintln(a.stdout, line); err != nil {
			return err
		}
		position += count
	}
	a.logger.Debug("dumped", "offset", params.offset, "end", position)
	return nil
}

// renderRow formats one dump row. annotations are the top-level
// annotations intersecting the row, in start order.
func renderRow(styles dumpStyles, position uint64, data []byte, perRow uint64, annotations []annotation.Annotation, first bool, width int) string {
	var line strings.Builder
	line.WriteString(styles.offset.Render(fmt.Sprintf("%08x", position)))
	line.WriteString("  ")

	next := 0
	for i := range perRow {
		if i >= uint64(len(data)) {
			line.WriteString("   ")
			continue
		}
		at := position + i
		for next < len(annotations) && annotations[next].End() <= at {
			next++
		}
		cell := fmt.Sprintf("%02x", data[i])
		if next < len(annotations) && annotations[next].Contains(at) {
			cell = styles.bytes[styles.ordinal[annotations[next].ID()]].Render(cell)
		}
		line.WriteString(cell)
		line.WriteByte(' ')
	}

	line.WriteString(" |")
	for _, b := range data {
		if b >= 0x20 && b < 0x7f {
			line.WriteByte(b)
		} else {
			line.WriteByte('.')
		}
	}
	line.WriteString(strings.Repeat(" ", int(perRow)-len(data)))
	line.WriteString("|")

	var labels []string
	for _, entry := range annotations {
		continued := entry.Start() < position
		if continued && !first {
			continue
		}
		text := label(entry)
		if continued {
			text = "…" + text
		}
		labels = append(labels, styles.labels[styles.ordinal[entry.ID()]].Render(text))
	}
	if len(labels) > 0 {
		line.WriteString("  ")
		line.WriteString(ansi.Truncate(strings.Join(labels, "; "), width, "…"))
	}
	return line.String()
}

// label is the short form of an annotation shown beside the bytes.
func label(a annotation.Annotation) string {
	var parts []string
	if interp := a.Interpreter(); interp != nil {
		parts = append(parts, fmt.Sprintf("%s=%s", interp.Name(), a.Value()))
	}
	if note := a.Note(); note != "" {
		parts = append(parts, note)
	}
	if len(parts) == 0 {
		return fmt.Sprintf("%d bytes", a.Length())
	}
	return strings.Join(parts, " ")
}

// Copyright 2026 The Hex Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/trejkaz/hex-components/cmd/hex/cli"
	"github.com/trejkaz/hex-components/lib/binary"
	"github.com/trejkaz/hex-components/lib/interpreter"
)

type interpretParams struct {
	source
	kind    string
	at      uint64
	length  uint64
	options []string
}

func (a *app) interpretCommand() *cli.Command {
	var params interpretParams

	return &cli.Command{
		Name:    "interpret",
		Summary: "Decode one value from a binary",
		Description: "Decode the bytes at a position with an interpreter kind and print the value.\n\n" +
			"Fixed-length kinds read their own width. Variable-length kinds read up to\n" +
			"--length bytes, or up to interpret.string_bound from the config when\n" +
			"--length is omitted.",
		Usage: "hex interpret <file> --kind <kind> --at <position> [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("interpret", pflag.ContinueOnError)
			flagSet.StringVarP(&params.kind, "kind", "k", "", "interpreter kind (see 'hex kinds')")
			flagSet.Uint64Var(&params.at, "at", 0, "position of the first byte")
			flagSet.Uint64Var(&params.length, "length", 0, "bytes available to the interpreter (default: the kind's width, or interpret.string_bound)")
			flagSet.StringArrayVarP(&params.options, "option", "o", nil, "interpreter option as key=value (repeatable)")
			params.source.register(flagSet)
			a.registerConfig(flagSet)
			return flagSet
		},
		Args: cli.ExactArgs(1),
		Examples: []cli.Example{
			{Description: "Decode a little-endian word", Command: "hex interpret image.bin --kind uint32_le --at 0x10"},
			{Description: "Decode a Latin-1 string", Command: "hex interpret image.bin -k string --at 64 --length 12 -o charset=latin1"},
			{Description: "Decode from a zstd payload", Command: "hex interpret dump.zst --compression zstd --size 65536 -k dos_date --at 8"},
		},
		Run: func(args []string) error {
			if err := a.setup("interpret"); err != nil {
				return err
			}
			if params.kind == "" {
				return fmt.Errorf("--kind is required")
			}
			return a.interpret(args[0], params)
		},
	}
}

func (a *app) interpret(path string, params interpretParams) error {
	options, err := parseOptions(params.options)
	if err != nil {
		return err
	}
	interp, err := a.registry.Create(params.kind, options)
	if err != nil {
		return err
	}

	b, release, err := a.openBinary(path, params.source)
	if err != nil {
		return err
	}
	defer release()

	length := params.length
	if length == 0 {
		length = interpreter.Length(interp, a.defaultBound(b, params.at))
	}
	v, err := interpreter.Interpret(interp, b, params.at, length)
	if err != nil {
		return err
	}

	a.logger.Debug("interpreted", "kind", params.kind, "at", params.at, "length", length, "consumed", v.Length())
	fmt.Fprintf(a.stdout, "%s @ %#x: %s (%s, %d bytes)\n", interp.Name(), params.at, v, v.Kind(), v.Length())
	return nil
}

// defaultBound is the scan limit for a variable-length interpreter at
// position when no length was given: interpret.string_bound, cut at
// the end of b.
func (a *app) defaultBound(b binary.Binary, position uint64) uint64 {
	bound := uint64(a.config.Interpret.StringBound)
	if position >= b.Length() {
		return bound
	}
	return min(bound, b.Length()-position)
}

// Copyright 2026 The Hex Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/pflag"
	"golang.org/x/text/language"

	"github.com/trejkaz/hex-components/cmd/hex/cli"
	"github.com/trejkaz/hex-components/lib/interpreter"
)

func (a *app) kindsCommand() *cli.Command {
	var lang string

	return &cli.Command{
		Name:    "kinds",
		Summary: "List the interpreter kinds",
		Description: "List every registered interpreter kind with its display name, the kind of value\n" +
			"it produces and the bytes it reads. Variable-length kinds read up to the\n" +
			"length they are given.",
		Usage: "hex kinds [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("kinds", pflag.ContinueOnError)
			flagSet.StringVar(&lang, "lang", "", "display language as a BCP 47 tag (default: config language)")
			a.registerConfig(flagSet)
			return flagSet
		},
		Args: cli.ExactArgs(0),
		Examples: []cli.Example{
			{Description: "List kinds with German names", Command: "hex kinds --lang de"},
		},
		Run: func(args []string) error {
			if err := a.setup("kinds"); err != nil {
				return err
			}
			tag := a.config.Tag()
			if lang != "" {
				parsed, err := language.Parse(lang)
				if err != nil {
					return fmt.Errorf("--lang %q: %w", lang, err)
				}
				tag = parsed
			}
			return a.listKinds(tag)
		},
	}
}

func (a *app) listKinds(tag language.Tag) error {
	tw := tabwriter.NewWriter(a.stdout, 2, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "KIND\tNAME\tVALUE\tBYTES")
	for _, entry := range a.registry.All() {
		interp, err := entry.Factory(nil)
		if err != nil {
			return fmt.Errorf("creating %s with defaults: %w", entry.Kind, err)
		}
		width := "variable"
		if fixed, ok := interp.(interpreter.FixedLength); ok {
			width = strconv.FormatUint(fixed.ValueLength(), 10)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", entry.Kind, entry.DisplayName(tag), interp.ValueKind(), width)
	}
	return tw.Flush()
}

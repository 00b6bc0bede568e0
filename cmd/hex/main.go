// Copyright 2026 The Hex Authors
// SPDX-License-Identifier: Apache-2.0

// Hex inspects binary files: it decodes values with the built-in
// interpreters, keeps a notes file of annotations per binary, and
// prints annotated hex dumps.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newApp(os.Stdout).root().Execute(os.Args[1:]); err != nil {
		// Commands that already reported their outcome return an
		// ExitError; don't print a redundant "error:" line for those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// Copyright 2026 The Hex Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ExitError makes main exit with Code without printing anything. The
// command has already written its own output; "hex notes verify"
// uses it to report a failed check.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code main should use.
func (e *ExitError) ExitCode() int {
	return e.Code
}

// Copyright 2026 The Hex Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command framework for the hex command.
//
// The central type is [Command], a named node with optional nested
// [Command.Subcommands], a [pflag.FlagSet] factory, positional argument
// validation and a Run function. The tree is assembled in cmd/hex and
// dispatched through [Command.Execute], which parses flags, routes
// subcommands and prints help with examples.
//
// When a user types an unknown subcommand or flag, the framework
// suggests the closest known name by Levenshtein distance (at most 3).
//
// [NewCommandLogger] builds the slog logger commands log through, and
// [ExitError] lets a command choose its exit status after writing its
// own output.
package cli

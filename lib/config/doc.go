// Copyright 2026 The Hex Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the hex
// command.
//
// Configuration is loaded from a single file named either by the
// HEX_CONFIG environment variable (via [Load]) or a --config flag (via
// [LoadFile]). There is no ~/.config discovery and no automatic file
// search. Without either, the command runs on [Default].
//
// Values in the file are merged over the defaults, so a file only
// needs the settings it changes:
//
//	language: de
//	log_level: debug
//	dump:
//	  bytes_per_row: 32
//	  color: never
//	notes:
//	  directory: ${HOME}/.local/share/hex/notes
//
// Only notes.directory undergoes variable expansion: ${HOME} and
// ${VAR:-default} patterns are expanded. No environment variable
// overrides a config value.
package config

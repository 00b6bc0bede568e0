// Copyright 2026 The Hex Authors
// SPDX-License-Identifier: Apache-2.0

// Package interpreter decodes byte ranges of a [binary.Binary] into
// typed [value.Value]s.
//
// An [Interpreter] is stateless: decoding the same bytes always yields
// an equal value, and nothing outside the requested range is read.
// Interpreters come in two capabilities. A [FixedLength] interpreter
// always consumes the same number of bytes (a 32-bit integer, a DOS
// date). A [VariableLength] interpreter consumes at most a caller
// supplied length, and the resulting value's Length reports how much
// it actually used (a null-terminated string stops at the first zero
// byte). [Interpret] dispatches between them.
//
// Interpreters are created by kind name through a [Registry]. Kind
// names are stable and are what persisted annotations record, so
// renaming a kind breaks every saved document that uses it. The
// process-wide [Default] registry holds the built-in kinds:
//
//   - integers: uint8, int8, and uint16/int16/uint32/int32/uint64/int64
//     with a _be or _le suffix
//   - floats: float32 and float64 with a _be or _le suffix
//   - fixed_point, with options "decimal places", "width",
//     "byte order" and "signed"
//   - bool
//   - ctime_be32, ctime_le32, ctime_be64, ctime_le64 (Unix seconds),
//     java_time_be64, java_time_le64 (Unix milliseconds) and
//     filetime_le64 (Windows FILETIME)
//   - dos_date and dos_time (packed MS-DOS fields)
//   - stringz, and the charset-aware string and stringz_charset, which
//     take a "charset" option naming an IANA character set
//
// Each registry entry carries a display key that is translated through
// a golang.org/x/text message catalog, so a kind picker can show
// "Vorzeichenlose 8-Bit-Ganzzahl" to a German user while the document
// still records "uint8".
package interpreter

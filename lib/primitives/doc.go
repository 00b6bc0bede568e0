// Copyright 2026 The Hex Authors
// SPDX-License-Identifier: Apache-2.0

// Package primitives assembles multi-byte integers and floats from a
// [binary.Binary] and extracts packed bit fields from them.
//
// [ByteOrder] composes values byte by byte in big- or little-endian
// order. Every read is bounds-checked against the binary's length
// before any byte is touched; a read that would cross the end fails
// with a bounds error from the binary package. The Put functions are
// the inverse encoders, so a decoded value can be re-encoded and
// compared against the original bytes.
//
// [BitField] describes a run of bits within an unsigned integer.
// Fields are validated when they are built, not when they are
// evaluated, and chain through [BitField.Next] so a packed layout
// reads top to bottom like its documentation:
//
//	day := primitives.MustLowest[uint16](5)
//	month := day.MustNext(4)
//	year := month.MustNext(7)
package primitives

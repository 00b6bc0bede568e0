// Copyright 2026 The Hex Authors
// SPDX-License-Identifier: Apache-2.0

// Package binhash provides BLAKE3 content hashing for binaries.
//
// An annotation document only makes sense against the exact bytes it
// was written for. The document records the digest of its binary, and
// restoring it against a different binary is refused rather than
// producing annotations whose values silently disagree with their
// notes.
//
// The API surface is three functions:
//
//   - [Digest] -- streams a [binary.Binary] through BLAKE3-256 in
//     fixed-size chunks, so a mapped multi-gigabyte file is hashed
//     with constant memory
//   - [FormatDigest] -- converts a [32]byte digest to its canonical
//     hex-encoded string representation, used in notes documents and
//     CLI output
//   - [ParseDigest] -- parses a hex-encoded digest string back to a
//     [32]byte array, validating length and encoding
package binhash

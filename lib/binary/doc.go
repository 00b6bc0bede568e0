// Copyright 2026 The Hex Authors
// SPDX-License-Identifier: Apache-2.0

// Package binary provides the random-access byte source that every
// interpreter and annotation reads from.
//
// A [Binary] has a fixed length, supports single-byte reads, block
// reads, and zero-copy sub-range views via [Binary.Slice]. A Binary
// is never mutated once constructed, so any number of goroutines may
// read from it concurrently without synchronization. This is what
// allows annotation re-decoding to fan out across workers.
//
// Three sources are provided:
//
//   - [FromBytes] wraps memory the caller already holds.
//   - [MapFile] maps a file read-only into the address space.
//   - [Decompress] inflates an LZ4 or zstd payload into resident
//     memory, using the same compression tags as the artifact store
//     container format.
//
// Every out-of-range access returns a [*BoundsError], which matches
// [ErrOutOfBounds] under errors.Is. Reads are never truncated: a
// request either succeeds in full or fails without touching the
// destination.
//
// This package depends on no other hex packages.
package binary

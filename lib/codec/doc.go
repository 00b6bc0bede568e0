// Copyright 2026 The Hex Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the serialization formats for annotation
// documents.
//
// Notes files are CBOR, encoded with Core Deterministic Encoding
// (RFC 8949 §4.2) so the same document always produces the same bytes
// and files diff cleanly under version control:
//
//	data, err := codec.Marshal(document)
//	err = codec.Unmarshal(data, &document)
//
// Hand-written documents for import are JSON with comments and trailing
// commas allowed (JSONC), read with [UnmarshalJSONC]. [MarshalJSON]
// produces the matching indented JSON for display.
//
// # Struct Tags
//
// Persisted types carry `json` tags only. fxamacker/cbor reads `json`
// tags when `cbor` tags are absent, so one tag names a field in both
// formats. Never put both tags on a field.
package codec

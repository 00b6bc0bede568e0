// Copyright 2026 The Hex Authors
// SPDX-License-Identifier: Apache-2.0

package binhash

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/trejkaz/hex-components/lib/binary"
)

// chunkSize bounds the buffer used while streaming a binary through
// the hasher.
const chunkSize = 64 * 1024

// Digest computes the BLAKE3-256 digest of the full contents of b.
func Digest(b binary.Binary) ([32]byte, error) {
	hasher := blake3.New()
	buffer := make([]byte, chunkSize)

	length := b.Length()
	for position := uint64(0); position < length; {
		count := min(uint64(chunkSize), length-position)
		if _, err := b.ReadAt(buffer[:count], position); err != nil {
			return [32]byte{}, fmt.Errorf("hashing binary at %d: %w", position, err)
		}
		hasher.Write(buffer[:count])
		position += count
	}

	var digest [32]byte
	copy(digest[:], hasher.Sum(nil))
	return digest, nil
}

// FormatDigest returns the hex-encoded string representation of a
// digest.
func FormatDigest(digest [32]byte) string {
	return hex.EncodeToString(digest[:])
}

// ParseDigest parses a hex-encoded digest string into a 32-byte
// array. Returns an error if the string is not a valid 64-character
// hex encoding of 32 bytes.
func ParseDigest(hexString string) ([32]byte, error) {
	var digest [32]byte
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return digest, fmt.Errorf("parsing hash digest: %w", err)
	}
	if len(decoded) != 32 {
		return digest, fmt.Errorf("hash digest is %d bytes, want 32", len(decoded))
	}
	copy(digest[:], decoded)
	return digest, nil
}

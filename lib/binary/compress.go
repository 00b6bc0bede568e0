// Copyright 2026 The Hex Authors
// SPDX-License-Identifier: Apache-2.0

package binary

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies how a payload handed to [Decompress] was
// compressed. The numeric values match the artifact store chunk tags.
type Compression uint8

const (
	// CompressionNone marks a payload that is stored as-is.
	CompressionNone Compression = 0

	// CompressionLZ4 marks an LZ4 block (not frame) payload.
	CompressionLZ4 Compression = 1

	// CompressionZstd marks a zstd frame payload.
	CompressionZstd Compression = 2
)

// String returns the name accepted by [ParseCompression].
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// ParseCompression parses a compression name.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "none", "":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZstd, nil
	default:
		return 0, fmt.Errorf("unknown compression: %q", name)
	}
}

// zstd.Decoder is safe for concurrent DecodeAll calls, so one
// instance serves the whole process.
var zstdDecoder *zstd.Decoder

func init() {
	var err error
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("binary: zstd decoder initialization failed: " + err.Error())
	}
}

// Decompress inflates payload into a resident Binary. The result must
// be exactly uncompressedSize bytes long; any other size is an error.
func Decompress(payload []byte, compression Compression, uncompressedSize int) (Binary, error) {
	if uncompressedSize < 0 {
		return nil, fmt.Errorf("decompress: negative size %d", uncompressedSize)
	}

	var data []byte
	switch compression {
	case CompressionNone:
		data = payload

	case CompressionLZ4:
		data = make([]byte, uncompressedSize)
		read, err := lz4.UncompressBlock(payload, data)
		if err != nil {
			return nil, fmt.Errorf("lz4 decompress: %w", err)
		}
		data = data[:read]

	case CompressionZstd:
		var err error
		data, err = zstdDecoder.DecodeAll(payload, make([]byte, 0, uncompressedSize))
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}

	default:
		return nil, fmt.Errorf("unsupported compression: %s", compression)
	}

	if len(data) != uncompressedSize {
		return nil, fmt.Errorf("%s decompress: got %d bytes, expected %d", compression, len(data), uncompressedSize)
	}
	return FromBytes(data), nil
}

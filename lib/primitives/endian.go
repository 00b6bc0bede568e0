// Copyright 2026 The Hex Authors
// SPDX-License-Identifier: Apache-2.0

package primitives

import (
	"fmt"
	"math"
	"strings"

	"github.com/trejkaz/hex-components/lib/binary"
)

// ByteOrder selects how multi-byte values are composed.
type ByteOrder uint8

const (
	// BigEndian places the most significant byte first.
	BigEndian ByteOrder = iota
	// LittleEndian places the least significant byte first.
	LittleEndian
)

// String returns the short name used in interpreter kind names and
// options ("be" or "le").
func (order ByteOrder) String() string {
	switch order {
	case BigEndian:
		return "be"
	case LittleEndian:
		return "le"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(order))
	}
}

// ParseByteOrder accepts "be", "big", "le" and "little" in any case.
func ParseByteOrder(name string) (ByteOrder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "be", "big", "big-endian":
		return BigEndian, nil
	case "le", "little", "little-endian":
		return LittleEndian, nil
	default:
		return 0, fmt.Errorf("unknown byte order: %q", name)
	}
}

// read fetches width bytes at position and folds them into a uint64
// in the receiver's order.
func (order ByteOrder) read(b binary.Binary, position uint64, width int) (uint64, error) {
	var buffer [8]byte
	if _, err := b.ReadAt(buffer[:width], position); err != nil {
		return 0, err
	}
	var result uint64
	switch order {
	case BigEndian:
		for i := 0; i < width; i++ {
			result = result<<8 | uint64(buffer[i])
		}
	case LittleEndian:
		for i := width - 1; i >= 0; i-- {
			result = result<<8 | uint64(buffer[i])
		}
	default:
		return 0, fmt.Errorf("unknown byte order %d", uint8(order))
	}
	return result, nil
}

// Uint8 reads one byte. Byte order is irrelevant; the method exists so
// that every width can be read through the same ByteOrder value.
func (order ByteOrder) Uint8(b binary.Binary, position uint64) (uint8, error) {
	return b.Read(position)
}

// Int8 reads one byte as a two's complement value.
func (order ByteOrder) Int8(b binary.Binary, position uint64) (int8, error) {
	value, err := b.Read(position)
	return int8(value), err
}

// Uint16 reads two bytes.
func (order ByteOrder) Uint16(b binary.Binary, position uint64) (uint16, error) {
	value, err := order.read(b, position, 2)
	return uint16(value), err
}

// Int16 reads two bytes as a two's complement value.
func (order ByteOrder) Int16(b binary.Binary, position uint64) (int16, error) {
	value, err := order.read(b, position, 2)
	return int16(value), err
}

// Uint32 reads four bytes.
func (order ByteOrder) Uint32(b binary.Binary, position uint64) (uint32, error) {
	value, err := order.read(b, position, 4)
	return uint32(value), err
}

// Int32 reads four bytes as a two's complement value.
func (order ByteOrder) Int32(b binary.Binary, position uint64) (int32, error) {
	value, err := order.read(b, position, 4)
	return int32(value), err
}

// Uint64 reads eight bytes.
func (order ByteOrder) Uint64(b binary.Binary, position uint64) (uint64, error) {
	return order.read(b, position, 8)
}

// Int64 reads eight bytes as a two's complement value.
func (order ByteOrder) Int64(b binary.Binary, position uint64) (int64, error) {
	value, err := order.read(b, position, 8)
	return int64(value), err
}

// Float32 reads an IEEE 754 single-precision value.
func (order ByteOrder) Float32(b binary.Binary, position uint64) (float32, error) {
	value, err := order.read(b, position, 4)
	return math.Float32frombits(uint32(value)), err
}

// Float64 reads an IEEE 754 double-precision value.
func (order ByteOrder) Float64(b binary.Binary, position uint64) (float64, error) {
	value, err := order.read(b, position, 8)
	return math.Float64frombits(value), err
}

// Unsigned reads a width-byte unsigned value, width being 1, 2, 4 or 8.
func (order ByteOrder) Unsigned(b binary.Binary, position uint64, width int) (uint64, error) {
	switch width {
	case 1, 2, 4, 8:
		return order.read(b, position, width)
	default:
		return 0, fmt.Errorf("unsupported integer width %d", width)
	}
}

// Signed reads a width-byte two's complement value, width being 1, 2,
// 4 or 8. The result is sign-extended to 64 bits.
func (order ByteOrder) Signed(b binary.Binary, position uint64, width int) (int64, error) {
	value, err := order.Unsigned(b, position, width)
	if err != nil {
		return 0, err
	}
	shift := uint(64 - 8*width)
	return int64(value<<shift) >> shift, nil
}

// put writes the low width bytes of value into dst in the receiver's
// order. dst must hold at least width bytes.
func (order ByteOrder) put(dst []byte, value uint64, width int) {
	_ = dst[width-1]
	for i := 0; i < width; i++ {
		shift := uint(8 * i)
		if order == BigEndian {
			dst[width-1-i] = byte(value >> shift)
		} else {
			dst[i] = byte(value >> shift)
		}
	}
}

// PutUint16 encodes value into the first two bytes of dst.
func (order ByteOrder) PutUint16(dst []byte, value uint16) {
	order.put(dst, uint64(value), 2)
}

// PutUint32 encodes value into the first four bytes of dst.
func (order ByteOrder) PutUint32(dst []byte, value uint32) {
	order.put(dst, uint64(value), 4)
}

// PutUint64 encodes value into the first eight bytes of dst.
func (order ByteOrder) PutUint64(dst []byte, value uint64) {
	order.put(dst, value, 8)
}

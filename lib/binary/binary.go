// Copyright 2026 The Hex Authors
// SPDX-License-Identifier: Apache-2.0

package binary

import (
	"bytes"
	"errors"
	"fmt"
)

// ErrOutOfBounds is matched by every [*BoundsError].
var ErrOutOfBounds = errors.New("binary: out of bounds")

// BoundsError reports an access of Width bytes at Position against a
// source holding Length bytes.
type BoundsError struct {
	Position uint64
	Width    uint64
	Length   uint64
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("binary: %d bytes at position %d exceed length %d", e.Width, e.Position, e.Length)
}

func (e *BoundsError) Unwrap() error {
	return ErrOutOfBounds
}

// CheckRange returns a [*BoundsError] unless [position, position+width)
// lies within a source of the given length. The comparison is written
// so that position+width never overflows.
func CheckRange(position, width, length uint64) error {
	if width > length || position > length-width {
		return &BoundsError{Position: position, Width: width, Length: length}
	}
	return nil
}

// Binary is an immutable random-access byte source.
type Binary interface {
	// Length returns the number of bytes in the source.
	Length() uint64

	// Read returns the byte at position.
	Read(position uint64) (byte, error)

	// ReadAt fills p with the bytes starting at position. Either all
	// of p is filled or an error is returned and p is left untouched.
	ReadAt(p []byte, position uint64) (int, error)

	// Slice returns a view of length bytes starting at position. The
	// view shares backing memory with the receiver.
	Slice(position, length uint64) (Binary, error)
}

// FromBytes returns a Binary over data. The slice is not copied; the
// caller must not modify it afterwards.
func FromBytes(data []byte) Binary {
	return memory{data: data}
}

// memory is a Binary over resident bytes. It backs every source in
// this package: mapped files and decompressed payloads both end up as
// a byte slice.
type memory struct {
	data []byte
}

func (m memory) Length() uint64 {
	return uint64(len(m.data))
}

func (m memory) Read(position uint64) (byte, error) {
	if err := CheckRange(position, 1, m.Length()); err != nil {
		return 0, err
	}
	return m.data[position], nil
}

func (m memory) ReadAt(p []byte, position uint64) (int, error) {
	if err := CheckRange(position, uint64(len(p)), m.Length()); err != nil {
		return 0, err
	}
	return copy(p, m.data[position:]), nil
}

func (m memory) Slice(position, length uint64) (Binary, error) {
	if err := CheckRange(position, length, m.Length()); err != nil {
		return nil, err
	}
	end := position + length
	return memory{data: m.data[position:end:end]}, nil
}

// ReadAll copies the entire contents of b into a new slice.
func ReadAll(b Binary) ([]byte, error) {
	buffer := make([]byte, b.Length())
	if _, err := b.ReadAt(buffer, 0); err != nil {
		return nil, err
	}
	return buffer, nil
}

// Equal reports whether a and b hold the same bytes. A read failure on
// either side makes them unequal.
func Equal(a, b Binary) bool {
	if a.Length() != b.Length() {
		return false
	}
	left, err := ReadAll(a)
	if err != nil {
		return false
	}
	right, err := ReadAll(b)
	if err != nil {
		return false
	}
	return bytes.Equal(left, right)
}

// Copyright 2026 The Hex Authors
// SPDX-License-Identifier: Apache-2.0

package primitives

import (
	"errors"
	"fmt"
	"math/bits"
)

// ErrBitRange is returned when a bit field does not fit in its backing
// integer type or has zero width.
var ErrBitRange = errors.New("primitives: bit field out of range")

// Unsigned is the set of integer types a [BitField] can be evaluated
// against.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// BitField is a run of width bits starting offset bits above the
// least significant bit of a T. The zero value is not a valid field;
// build one with [NewBitField], [Lowest] or [BitField.Next].
type BitField[T Unsigned] struct {
	offset uint
	width  uint
}

// bitsOf returns the width of T in bits.
func bitsOf[T Unsigned]() uint {
	return uint(bits.OnesCount64(uint64(^T(0))))
}

// NewBitField returns the field covering bits [offset, offset+width)
// of a T.
func NewBitField[T Unsigned](offset, width uint) (BitField[T], error) {
	size := bitsOf[T]()
	if width == 0 || width > size || offset > size-width {
		return BitField[T]{}, fmt.Errorf("%w: offset %d width %d in a %d-bit value", ErrBitRange, offset, width, size)
	}
	return BitField[T]{offset: offset, width: width}, nil
}

// Lowest returns the field covering the width least significant bits.
func Lowest[T Unsigned](width uint) (BitField[T], error) {
	return NewBitField[T](0, width)
}

// MustLowest is [Lowest] for static layouts; it panics on an invalid
// width.
func MustLowest[T Unsigned](width uint) BitField[T] {
	field, err := Lowest[T](width)
	if err != nil {
		panic(err)
	}
	return field
}

// Next returns the field of the given width that starts immediately
// above f.
func (f BitField[T]) Next(width uint) (BitField[T], error) {
	return NewBitField[T](f.offset+f.width, width)
}

// MustNext is [BitField.Next] for static layouts; it panics when the
// field would not fit.
func (f BitField[T]) MustNext(width uint) BitField[T] {
	field, err := f.Next(width)
	if err != nil {
		panic(err)
	}
	return field
}

// Offset returns the position of the field's least significant bit.
func (f BitField[T]) Offset() uint { return f.offset }

// Width returns the number of bits in the field.
func (f BitField[T]) Width() uint { return f.width }

// End returns the offset of the first bit above the field.
func (f BitField[T]) End() uint { return f.offset + f.width }

// Mask returns the unshifted mask, (1 << width) - 1.
func (f BitField[T]) Mask() T {
	if f.width >= bitsOf[T]() {
		return ^T(0)
	}
	return T(1)<<f.width - 1
}

// Evaluate extracts the field from value.
func (f BitField[T]) Evaluate(value T) T {
	return (value >> f.offset) & f.Mask()
}

// Copyright 2026 The Hex Authors
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"math"
	"strconv"
	"strings"
)

// Integer is a two's complement integer, sign-extended to 64 bits.
type Integer struct {
	Number int64
	Size   uint64
}

func (v Integer) Kind() Kind     { return KindInteger }
func (v Integer) Length() uint64 { return v.Size }
func (v Integer) String() string { return strconv.FormatInt(v.Number, 10) }

func (v Integer) Equal(o Value) bool {
	other, ok := o.(Integer)
	return ok && other == v
}

// Unsigned is an unsigned integer.
type Unsigned struct {
	Number uint64
	Size   uint64
}

func (v Unsigned) Kind() Kind     { return KindUnsigned }
func (v Unsigned) Length() uint64 { return v.Size }
func (v Unsigned) String() string { return strconv.FormatUint(v.Number, 10) }

func (v Unsigned) Equal(o Value) bool {
	other, ok := o.(Unsigned)
	return ok && other == v
}

// Real is an IEEE 754 floating point number. Equality is bitwise, so
// a NaN equals the identical NaN and 0 differs from -0.
type Real struct {
	Number float64
	Size   uint64
}

func (v Real) Kind() Kind     { return KindReal }
func (v Real) Length() uint64 { return v.Size }

func (v Real) String() string {
	return strconv.FormatFloat(v.Number, 'g', -1, 64)
}

func (v Real) Equal(o Value) bool {
	other, ok := o.(Real)
	return ok && other.Size == v.Size && math.Float64bits(other.Number) == math.Float64bits(v.Number)
}

// FixedPoint is an integer scaled down by 10^Places. Raw holds the
// stored integer; when Unsigned is set it is reinterpreted as uint64.
type FixedPoint struct {
	Raw      int64
	Unsigned bool
	Places   int
	Size     uint64
}

func (v FixedPoint) Kind() Kind     { return KindFixedPoint }
func (v FixedPoint) Length() uint64 { return v.Size }

// String renders the exact decimal, without going through a float.
func (v FixedPoint) String() string {
	var digits string
	negative := false
	switch {
	case v.Unsigned:
		digits = strconv.FormatUint(uint64(v.Raw), 10)
	case v.Raw < 0:
		negative = true
		digits = strconv.FormatUint(uint64(-(v.Raw+1))+1, 10)
	default:
		digits = strconv.FormatInt(v.Raw, 10)
	}

	if v.Places > 0 {
		if len(digits) <= v.Places {
			digits = strings.Repeat("0", v.Places-len(digits)+1) + digits
		}
		split := len(digits) - v.Places
		digits = digits[:split] + "." + digits[split:]
	}
	if negative {
		return "-" + digits
	}
	return digits
}

// Float returns an approximation of the value.
func (v FixedPoint) Float() float64 {
	raw := float64(v.Raw)
	if v.Unsigned {
		raw = float64(uint64(v.Raw))
	}
	return raw / math.Pow10(v.Places)
}

func (v FixedPoint) Equal(o Value) bool {
	other, ok := o.(FixedPoint)
	return ok && other == v
}

// Boolean is a truth value.
type Boolean struct {
	Bool bool
	Size uint64
}

func (v Boolean) Kind() Kind     { return KindBoolean }
func (v Boolean) Length() uint64 { return v.Size }
func (v Boolean) String() string { return strconv.FormatBool(v.Bool) }

func (v Boolean) Equal(o Value) bool {
	other, ok := o.(Boolean)
	return ok && other == v
}

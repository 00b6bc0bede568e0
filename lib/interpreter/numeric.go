// Copyright 2026 The Hex Authors
// SPDX-License-Identifier: Apache-2.0

package interpreter

import (
	"fmt"

	"github.com/trejkaz/hex-components/lib/binary"
	"github.com/trejkaz/hex-components/lib/primitives"
	"github.com/trejkaz/hex-components/lib/value"
)

// integer decodes a 1, 2, 4 or 8 byte integer.
type integer struct {
	name   string
	width  int
	order  primitives.ByteOrder
	signed bool
}

func (i integer) Name() string        { return i.name }
func (i integer) Options() Options    { return nil }
func (i integer) ValueLength() uint64 { return uint64(i.width) }

func (i integer) ValueKind() value.Kind {
	if i.signed {
		return value.KindInteger
	}
	return value.KindUnsigned
}

func (i integer) Interpret(b binary.Binary, position uint64) (value.Value, error) {
	if i.signed {
		number, err := i.order.Signed(b, position, i.width)
		if err != nil {
			return nil, err
		}
		return value.Integer{Number: number, Size: uint64(i.width)}, nil
	}
	number, err := i.order.Unsigned(b, position, i.width)
	if err != nil {
		return nil, err
	}
	return value.Unsigned{Number: number, Size: uint64(i.width)}, nil
}

// float decodes an IEEE 754 single or double.
type float struct {
	name  string
	width int
	order primitives.ByteOrder
}

func (f float) Name() string          { return f.name }
func (f float) Options() Options      { return nil }
func (f float) ValueLength() uint64   { return uint64(f.width) }
func (f float) ValueKind() value.Kind { return value.KindReal }

func (f float) Interpret(b binary.Binary, position uint64) (value.Value, error) {
	if f.width == 4 {
		single, err := f.order.Float32(b, position)
		if err != nil {
			return nil, err
		}
		return value.Real{Number: float64(single), Size: 4}, nil
	}
	double, err := f.order.Float64(b, position)
	if err != nil {
		return nil, err
	}
	return value.Real{Number: double, Size: 8}, nil
}

// Option names understood by fixed_point.
const (
	OptionDecimalPlaces = "decimal places"
	OptionWidth         = "width"
	OptionByteOrder     = "byte order"
	OptionSigned        = "signed"
)

// maxDecimalPlaces is the most places a uint64 can carry.
const maxDecimalPlaces = 19

type fixedPoint struct {
	places int
	width  int
	order  primitives.ByteOrder
	signed bool
}

func newFixedPoint(options Options) (Interpreter, error) {
	places, err := options.Int(OptionDecimalPlaces, 2)
	if err != nil {
		return nil, err
	}
	if places < 0 || places > maxDecimalPlaces {
		return nil, fmt.Errorf("%w: decimal places %d outside [0, %d]", ErrArgument, places, maxDecimalPlaces)
	}
	width, err := options.Int(OptionWidth, 4)
	if err != nil {
		return nil, err
	}
	switch width {
	case 1, 2, 4, 8:
	default:
		return nil, fmt.Errorf("%w: fixed point width %d is not 1, 2, 4 or 8", ErrArgument, width)
	}
	orderName, err := options.String(OptionByteOrder, primitives.LittleEndian.String())
	if err != nil {
		return nil, err
	}
	order, err := primitives.ParseByteOrder(orderName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArgument, err)
	}
	signed, err := options.Bool(OptionSigned, true)
	if err != nil {
		return nil, err
	}
	return fixedPoint{places: places, width: width, order: order, signed: signed}, nil
}

func (f fixedPoint) Name() string          { return "fixed_point" }
func (f fixedPoint) ValueLength() uint64   { return uint64(f.width) }
func (f fixedPoint) ValueKind() value.Kind { return value.KindFixedPoint }

func (f fixedPoint) Options() Options {
	return Options{
		OptionDecimalPlaces: f.places,
		OptionWidth:         f.width,
		OptionByteOrder:     f.order.String(),
		OptionSigned:        f.signed,
	}
}

func (f fixedPoint) Interpret(b binary.Binary, position uint64) (value.Value, error) {
	result := value.FixedPoint{Places: f.places, Size: uint64(f.width), Unsigned: !f.signed}
	if f.signed {
		raw, err := f.order.Signed(b, position, f.width)
		if err != nil {
			return nil, err
		}
		result.Raw = raw
		return result, nil
	}
	raw, err := f.order.Unsigned(b, position, f.width)
	if err != nil {
		return nil, err
	}
	result.Raw = int64(raw)
	return result, nil
}

// boolean decodes one byte, any non-zero value being true.
type boolean struct{}

func (boolean) Name() string          { return "bool" }
func (boolean) Options() Options      { return nil }
func (boolean) ValueLength() uint64   { return 1 }
func (boolean) ValueKind() value.Kind { return value.KindBoolean }

func (boolean) Interpret(b binary.Binary, position uint64) (value.Value, error) {
	raw, err := b.Read(position)
	if err != nil {
		return nil, err
	}
	return value.Boolean{Bool: raw != 0, Size: 1}, nil
}

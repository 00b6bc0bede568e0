// Copyright 2026 The Hex Authors
// SPDX-License-Identifier: Apache-2.0

// Package value defines the typed results that interpreters produce.
//
// The set of kinds is closed: every [Value] is one of the concrete
// types in this package, identified by [Kind]. Consumers dispatch with
// a type switch. Each value remembers how many bytes it was decoded
// from, because variable-length values such as terminated strings only
// learn their length while decoding.
package value

import "fmt"

// Kind identifies a concrete Value type.
type Kind uint8

const (
	KindInteger Kind = iota + 1
	KindUnsigned
	KindReal
	KindFixedPoint
	KindBoolean
	KindDate
	KindTime
	KindDateTime
	KindBinaryString
	KindText
)

var kindNames = map[Kind]string{
	KindInteger:      "integer",
	KindUnsigned:     "unsigned",
	KindReal:         "real",
	KindFixedPoint:   "fixed_point",
	KindBoolean:      "boolean",
	KindDate:         "date",
	KindTime:         "time",
	KindDateTime:     "date_time",
	KindBinaryString: "binary_string",
	KindText:         "text",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", uint8(k))
}

// Value is a decoded interpretation of a byte range.
type Value interface {
	// Kind identifies the concrete type.
	Kind() Kind

	// Length is the number of bytes the value was decoded from.
	Length() uint64

	// String renders the value for display.
	String() string

	// Equal reports whether other is the same kind with the same
	// payload and length.
	Equal(other Value) bool
}

// Equal compares two possibly-nil values.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

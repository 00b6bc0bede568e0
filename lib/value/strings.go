// Copyright 2026 The Hex Authors
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"strconv"

	"github.com/trejkaz/hex-components/lib/binary"
)

// BinaryString is an uninterpreted run of bytes, typically the body of
// a terminated string. Bytes is a view into the source binary, not a
// copy.
type BinaryString struct {
	Bytes binary.Binary
}

func (v BinaryString) Kind() Kind { return KindBinaryString }

func (v BinaryString) Length() uint64 {
	if v.Bytes == nil {
		return 0
	}
	return v.Bytes.Length()
}

// String quotes the bytes, escaping anything that is not printable.
func (v BinaryString) String() string {
	if v.Bytes == nil {
		return `""`
	}
	data, err := binary.ReadAll(v.Bytes)
	if err != nil {
		return "<" + err.Error() + ">"
	}
	return strconv.Quote(string(data))
}

func (v BinaryString) Equal(o Value) bool {
	other, ok := o.(BinaryString)
	if !ok {
		return false
	}
	if v.Bytes == nil || other.Bytes == nil {
		return v.Length() == 0 && other.Length() == 0
	}
	return binary.Equal(v.Bytes, other.Bytes)
}

// Text is a string decoded from a named character set. Size counts
// the encoded bytes, which differs from len(Text) for most charsets.
type Text struct {
	Text    string
	Charset string
	Size    uint64
}

func (v Text) Kind() Kind     { return KindText }
func (v Text) Length() uint64 { return v.Size }
func (v Text) String() string { return v.Text }

func (v Text) Equal(o Value) bool {
	other, ok := o.(Text)
	return ok && other == v
}
